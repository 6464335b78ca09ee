package repository

import (
	"context"
	"fmt"

	"darts-tournament/internal/domain"
)

// Seeding returns the ranked list a finalized shootout produced, best first.
func (r *ShootoutRepository) Seeding(ctx context.Context, tournamentID string) ([]domain.RankedPlayer, error) {
	rows, err := r.queries.ListSeedings(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seedings: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: seeding for tournament %s", domain.ErrNotFound, tournamentID)
	}

	ranked := make([]domain.RankedPlayer, len(rows))
	for i, row := range rows {
		ranked[i] = domain.RankedPlayer{
			Rank:     int(row.Rank),
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Score:    int(row.Score),
		}
	}
	return ranked, nil
}
