package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"darts-tournament/internal/db"
	"darts-tournament/internal/domain"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Create stores a new match header. A board holds at most one active match.
func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	m.Version = 0

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	active, err := qtx.CountActiveMatchesByBoard(ctx, m.BoardID)
	if err != nil {
		return fmt.Errorf("failed to count active matches: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("%w: board %s already has an active match", domain.ErrStateOrdering, m.BoardID)
	}

	err = qtx.CreateMatch(ctx, db.CreateMatchParams{
		ID:            m.ID,
		BoardID:       m.BoardID,
		P1Name:        m.Players[0].Name,
		P2Name:        m.Players[1].Name,
		StartingScore: int64(m.Rules.StartingScore),
		LegsToWin:     int64(m.Rules.LegsToWin),
		CheckoutMode:  string(m.Rules.CheckoutMode),
		P1Score:       int64(m.Players[0].Score),
		P2Score:       int64(m.Players[1].Score),
		Status:        string(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create match %s: %w", m.ID, err)
	}

	return tx.Commit()
}

// Get loads the match header and its throw log in one read transaction.
// Derived fields come from storage as last written; callers re-fold.
func (r *MatchRepository) Get(ctx context.Context, id string) (domain.Match, error) {
	return r.load(ctx, func(q *db.Queries) (db.Match, error) {
		return q.GetMatch(ctx, id)
	})
}

// GetLatestByBoard returns the most recently assigned match on a board.
func (r *MatchRepository) GetLatestByBoard(ctx context.Context, boardID string) (domain.Match, error) {
	return r.load(ctx, func(q *db.Queries) (db.Match, error) {
		return q.GetLatestMatchByBoard(ctx, boardID)
	})
}

func (r *MatchRepository) load(ctx context.Context, header func(*db.Queries) (db.Match, error)) (domain.Match, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	row, err := header(qtx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Match{}, fmt.Errorf("%w: match", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to get match: %w", err)
	}

	rows, err := qtx.ListThrowsByMatch(ctx, row.ID)
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to list throws for match %s: %w", row.ID, err)
	}

	m := matchFromRow(row)
	m.Throws = make([]domain.ThrowRecord, len(rows))
	for i, t := range rows {
		rec, err := throwFromRow(t)
		if err != nil {
			return domain.Match{}, err
		}
		m.Throws[i] = rec
	}

	return m, tx.Commit()
}

// AppendThrow inserts the last record of m's log and writes m's derived
// state in one transaction, provided the stored version still equals
// expectedVersion. rec.ID is assigned when empty. Returns the new version.
func (r *MatchRepository) AppendThrow(ctx context.Context, m domain.Match, rec *domain.ThrowRecord, expectedVersion int64) (int64, error) {
	if rec.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return 0, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		rec.ID = id
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := r.updateState(ctx, qtx, m, expectedVersion); err != nil {
		return 0, err
	}
	if err := insertThrow(ctx, qtx, m.ID, int64(len(m.Throws)-1), *rec); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit throw: %w", err)
	}
	return expectedVersion + 1, nil
}

// ReplaceThrows rewrites the whole throw log of m after an undo, edit or
// reset, under the same version check as AppendThrow.
func (r *MatchRepository) ReplaceThrows(ctx context.Context, m domain.Match, expectedVersion int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := r.updateState(ctx, qtx, m, expectedVersion); err != nil {
		return 0, err
	}
	if err := qtx.DeleteThrowsByMatch(ctx, m.ID); err != nil {
		return 0, fmt.Errorf("failed to clear throws for match %s: %w", m.ID, err)
	}
	for i, rec := range m.Throws {
		if rec.ID == "" {
			return 0, fmt.Errorf("throw %d of match %s has no id", i, m.ID)
		}
		if err := insertThrow(ctx, qtx, m.ID, int64(i), rec); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit throw log: %w", err)
	}
	r.logger.Debug().Str("match_id", m.ID).Int("throws", len(m.Throws)).Msg("throw log replaced")
	return expectedVersion + 1, nil
}

func (r *MatchRepository) updateState(ctx context.Context, qtx *db.Queries, m domain.Match, expectedVersion int64) error {
	n, err := qtx.UpdateMatchState(ctx, db.UpdateMatchStateParams{
		P1Score:       int64(m.Players[0].Score),
		P2Score:       int64(m.Players[1].Score),
		P1Legs:        int64(m.Players[0].Legs),
		P2Legs:        int64(m.Players[1].Legs),
		CurrentPlayer: int64(m.CurrentPlayer),
		CurrentLeg:    int64(m.CurrentLeg),
		Status:        string(m.Status),
		Winner:        int64(m.Winner),
		UpdatedAt:     time.Now().UTC(),
		ID:            m.ID,
		Version:       expectedVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", m.ID, err)
	}
	if n == 0 {
		r.logger.Warn().Str("match_id", m.ID).Int64("expected_version", expectedVersion).Msg("match version moved, write lost")
		return fmt.Errorf("%w: match %s changed since version %d", domain.ErrConcurrencyLoss, m.ID, expectedVersion)
	}
	return nil
}

func insertThrow(ctx context.Context, qtx *db.Queries, matchID string, seq int64, rec domain.ThrowRecord) error {
	darts, err := encodeDarts(rec.Darts)
	if err != nil {
		return err
	}
	err = qtx.InsertThrow(ctx, db.InsertThrowParams{
		ID:        rec.ID,
		MatchID:   matchID,
		Seq:       seq,
		Player:    int64(rec.Player),
		Darts:     darts,
		Total:     int64(rec.Total),
		Remaining: int64(rec.Remaining),
		Leg:       int64(rec.Leg),
		Bust:      rec.Bust,
		Checkout:  rec.Checkout,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert throw %d for match %s: %w", seq, matchID, err)
	}
	return nil
}

func matchFromRow(row db.Match) domain.Match {
	return domain.Match{
		ID:      row.ID,
		BoardID: row.BoardID,
		Players: [2]domain.PlayerSlot{
			{Name: row.P1Name, Score: int(row.P1Score), Legs: int(row.P1Legs)},
			{Name: row.P2Name, Score: int(row.P2Score), Legs: int(row.P2Legs)},
		},
		CurrentPlayer: int(row.CurrentPlayer),
		CurrentLeg:    int(row.CurrentLeg),
		Rules: domain.MatchRules{
			StartingScore: int(row.StartingScore),
			LegsToWin:     int(row.LegsToWin),
			CheckoutMode:  domain.CheckoutMode(row.CheckoutMode),
		},
		Status:    domain.MatchStatus(row.Status),
		Winner:    int(row.Winner),
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func throwFromRow(t db.Throw) (domain.ThrowRecord, error) {
	darts, err := decodeDarts(t.Darts)
	if err != nil {
		return domain.ThrowRecord{}, fmt.Errorf("throw %s: %w", t.ID, err)
	}
	return domain.ThrowRecord{
		ID:        t.ID,
		Player:    int(t.Player),
		Darts:     darts,
		Total:     int(t.Total),
		Remaining: int(t.Remaining),
		Leg:       int(t.Leg),
		Bust:      t.Bust,
		Checkout:  t.Checkout,
		CreatedAt: t.CreatedAt,
	}, nil
}
