package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"darts-tournament/internal/db"
	"darts-tournament/internal/domain"

	"github.com/rs/zerolog"
)

type ShootoutRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewShootoutRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ShootoutRepository {
	return &ShootoutRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Create opens a shootout with its eligible players. Opening one that already
// exists is an ordering error.
func (r *ShootoutRepository) Create(ctx context.Context, slot domain.ShootoutSlot, entries []domain.ShootoutEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	_, err = qtx.GetShootout(ctx, slot.TournamentID)
	if err == nil {
		return fmt.Errorf("%w: shootout for tournament %s already open", domain.ErrStateOrdering, slot.TournamentID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to get shootout: %w", err)
	}

	now := time.Now().UTC()
	err = qtx.CreateShootout(ctx, db.CreateShootoutParams{
		TournamentID: slot.TournamentID,
		Status:       string(slot.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to create shootout %s: %w", slot.TournamentID, err)
	}

	for _, e := range entries {
		err := qtx.InsertShootoutPlayer(ctx, db.InsertShootoutPlayerParams{
			TournamentID:    slot.TournamentID,
			PlayerID:        e.PlayerID,
			Name:            e.Name,
			RegistrationSeq: int64(e.RegistrationSeq),
		})
		if err != nil {
			return fmt.Errorf("failed to insert shootout player %s: %w", e.PlayerID, err)
		}
	}

	return tx.Commit()
}

// Load returns the slot and the entries in registration order.
func (r *ShootoutRepository) Load(ctx context.Context, tournamentID string) (domain.ShootoutSlot, []domain.ShootoutEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ShootoutSlot{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	row, err := qtx.GetShootout(ctx, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShootoutSlot{}, nil, fmt.Errorf("%w: shootout for tournament %s", domain.ErrNotFound, tournamentID)
	}
	if err != nil {
		return domain.ShootoutSlot{}, nil, fmt.Errorf("failed to get shootout: %w", err)
	}

	players, err := qtx.ListShootoutPlayers(ctx, tournamentID)
	if err != nil {
		return domain.ShootoutSlot{}, nil, fmt.Errorf("failed to list shootout players: %w", err)
	}

	slot := domain.ShootoutSlot{
		TournamentID:   row.TournamentID,
		Status:         domain.SlotStatus(row.Status),
		ActivePlayerID: deref(row.ActivePlayerID),
		LockedBoardID:  deref(row.LockedBoardID),
		Version:        row.Version,
		UpdatedAt:      row.UpdatedAt,
	}

	entries := make([]domain.ShootoutEntry, len(players))
	for i, p := range players {
		darts, err := decodeDarts(p.Darts)
		if err != nil {
			return domain.ShootoutSlot{}, nil, fmt.Errorf("shootout player %s: %w", p.PlayerID, err)
		}
		entries[i] = domain.ShootoutEntry{
			PlayerID:        p.PlayerID,
			Name:            p.Name,
			RegistrationSeq: int(p.RegistrationSeq),
			Throws:          darts,
		}
		if p.Score != nil {
			score := int(*p.Score)
			entries[i].Score = &score
		}
	}

	return slot, entries, tx.Commit()
}

// Save writes the slot and every entry's result if the stored version still
// equals expectedVersion. Returns the new version.
func (r *ShootoutRepository) Save(ctx context.Context, slot domain.ShootoutSlot, entries []domain.ShootoutEntry, expectedVersion int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := r.updateSlot(ctx, qtx, slot, expectedVersion); err != nil {
		return 0, err
	}

	for _, e := range entries {
		darts, err := encodeDarts(e.Throws)
		if err != nil {
			return 0, err
		}
		var score *int64
		if e.Score != nil {
			s := int64(*e.Score)
			score = &s
		}
		err = qtx.UpdateShootoutPlayerResult(ctx, db.UpdateShootoutPlayerResultParams{
			Score:        score,
			Darts:        darts,
			TournamentID: slot.TournamentID,
			PlayerID:     e.PlayerID,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to update shootout player %s: %w", e.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit shootout: %w", err)
	}
	return expectedVersion + 1, nil
}

// Finalize consumes the shootout: the ranked list is stored as the
// tournament seeding and the slot with its entries is deleted.
func (r *ShootoutRepository) Finalize(ctx context.Context, slot domain.ShootoutSlot, ranked []domain.RankedPlayer, expectedVersion int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := r.updateSlot(ctx, qtx, slot, expectedVersion); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, p := range ranked {
		err := qtx.InsertSeeding(ctx, db.InsertSeedingParams{
			TournamentID: slot.TournamentID,
			Rank:         int64(p.Rank),
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			Score:        int64(p.Score),
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert seeding rank %d: %w", p.Rank, err)
		}
	}

	if err := qtx.DeleteShootout(ctx, slot.TournamentID); err != nil {
		return fmt.Errorf("failed to delete shootout %s: %w", slot.TournamentID, err)
	}

	return tx.Commit()
}

func (r *ShootoutRepository) updateSlot(ctx context.Context, qtx *db.Queries, slot domain.ShootoutSlot, expectedVersion int64) error {
	n, err := qtx.UpdateShootoutSlot(ctx, db.UpdateShootoutSlotParams{
		Status:         string(slot.Status),
		ActivePlayerID: ref(slot.ActivePlayerID),
		LockedBoardID:  ref(slot.LockedBoardID),
		UpdatedAt:      time.Now().UTC(),
		TournamentID:   slot.TournamentID,
		Version:        expectedVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to update shootout %s: %w", slot.TournamentID, err)
	}
	if n == 0 {
		r.logger.Warn().
			Str("tournament_id", slot.TournamentID).
			Int64("expected_version", expectedVersion).
			Msg("shootout version moved, transition lost")
		return fmt.Errorf("%w: shootout %s changed since version %d", domain.ErrConcurrencyLoss, slot.TournamentID, expectedVersion)
	}
	return nil
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
