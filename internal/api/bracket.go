package api

import (
	"context"
	"time"

	"darts-tournament/internal/config"
	"darts-tournament/internal/domain"

	"github.com/valyala/fasthttp"
)

// BracketClient hands the finalized shootout seeding to the bracket system.
type BracketClient struct {
	url    string
	client *fasthttp.Client
}

func NewBracketClient(cfg *config.Config) *BracketClient {
	return &BracketClient{
		url:    cfg.BracketWebhookURL,
		client: newFastHTTPClient(),
	}
}

// Enabled reports whether a webhook is configured.
func (c *BracketClient) Enabled() bool {
	return c.url != ""
}

type SeedingExport struct {
	TournamentID string      `json:"tournamentId"`
	Seeding      []SeedEntry `json:"seeding"`
	FinalizedAt  time.Time   `json:"finalizedAt"`
}

type SeedEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

type ExportAck struct {
	Accepted  bool   `json:"accepted"`
	BracketID string `json:"bracketId,omitempty"`
}

func (c *BracketClient) ExportSeeding(ctx context.Context, tournamentID string, ranked []domain.RankedPlayer) (*ExportAck, error) {
	export := SeedingExport{
		TournamentID: tournamentID,
		Seeding:      make([]SeedEntry, len(ranked)),
		FinalizedAt:  time.Now().UTC(),
	}
	for i, p := range ranked {
		export.Seeding[i] = SeedEntry{Rank: p.Rank, PlayerID: p.PlayerID, Name: p.Name, Score: p.Score}
	}
	return doRequest[ExportAck](ctx, c.client, c.url, nil, export)
}
