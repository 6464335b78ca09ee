package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"darts-tournament/internal/database"
	"darts-tournament/internal/db"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/match"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "darts.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB, db.New(sqlDB)
}

func s(n int) domain.Dart { return domain.Dart{Segment: n, Multiplier: 1} }

func newMatch(board string) domain.Match {
	m, _ := match.Fold(domain.Match{
		BoardID: board,
		Players: [2]domain.PlayerSlot{{Name: "Anna"}, {Name: "Ben"}},
		Rules:   domain.MatchRules{StartingScore: 501, LegsToWin: 2, CheckoutMode: domain.DoubleOut},
	}, nil)
	return m
}

func TestMatchCreateAndGet(t *testing.T) {
	sqlDB, q := openDB(t)
	repo := NewMatchRepository(sqlDB, q, zerolog.Nop())
	ctx := context.Background()

	m := newMatch("board-1")
	require.NoError(t, repo.Create(ctx, &m))
	require.NotEmpty(t, m.ID)

	got, err := repo.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "board-1", got.BoardID)
	assert.Equal(t, [2]string{"Anna", "Ben"}, [2]string{got.Players[0].Name, got.Players[1].Name})
	assert.Equal(t, 501, got.Players[1].Score)
	assert.Equal(t, m.Rules, got.Rules)
	assert.Equal(t, domain.MatchActive, got.Status)
	assert.Empty(t, got.Throws)
	assert.Equal(t, int64(0), got.Version)

	latest, err := repo.GetLatestByBoard(ctx, "board-1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, latest.ID)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetLatestByBoard(ctx, "board-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatchCreateRejectsBusyBoard(t *testing.T) {
	sqlDB, q := openDB(t)
	repo := NewMatchRepository(sqlDB, q, zerolog.Nop())
	ctx := context.Background()

	first := newMatch("board-1")
	require.NoError(t, repo.Create(ctx, &first))

	second := newMatch("board-1")
	assert.ErrorIs(t, repo.Create(ctx, &second), domain.ErrStateOrdering)

	other := newMatch("board-2")
	assert.NoError(t, repo.Create(ctx, &other))
}

func TestAppendThrowAndReplace(t *testing.T) {
	sqlDB, q := openDB(t)
	repo := NewMatchRepository(sqlDB, q, zerolog.Nop())
	ctx := context.Background()

	m := newMatch("board-1")
	require.NoError(t, repo.Create(ctx, &m))

	e, err := match.New(m)
	require.NoError(t, err)
	rec, _, err := e.SubmitThrow([]domain.Dart{s(20), s(20), s(20)})
	require.NoError(t, err)

	version, err := repo.AppendThrow(ctx, e.Snapshot(), &rec, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.NotEmpty(t, rec.ID)

	got, err := repo.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Throws, 1)
	assert.Equal(t, rec.ID, got.Throws[0].ID)
	assert.Equal(t, []domain.Dart{s(20), s(20), s(20)}, got.Throws[0].Darts)
	assert.Equal(t, 441, got.Throws[0].Remaining)
	assert.Equal(t, 441, got.Players[0].Score)
	assert.Equal(t, 2, got.CurrentPlayer)
	assert.Equal(t, int64(1), got.Version)

	// A writer still holding version 0 loses.
	stale := rec
	stale.ID = ""
	_, err = repo.AppendThrow(ctx, e.Snapshot(), &stale, 0)
	assert.ErrorIs(t, err, domain.ErrConcurrencyLoss)

	// Undo through a full log rewrite.
	e2, err := match.New(got)
	require.NoError(t, err)
	_, err = e2.UndoLast()
	require.NoError(t, err)
	version, err = repo.ReplaceThrows(ctx, e2.Snapshot(), got.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	got, err = repo.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Throws)
	assert.Equal(t, 501, got.Players[0].Score)
	assert.Equal(t, 1, got.CurrentPlayer)

	_, err = repo.ReplaceThrows(ctx, e2.Snapshot(), 1)
	assert.ErrorIs(t, err, domain.ErrConcurrencyLoss)
}

func TestShootoutLifecycle(t *testing.T) {
	sqlDB, q := openDB(t)
	repo := NewShootoutRepository(sqlDB, q, zerolog.Nop())
	ctx := context.Background()

	slot := domain.ShootoutSlot{TournamentID: "t1", Status: domain.SlotWaitingForSelection}
	entries := []domain.ShootoutEntry{
		{PlayerID: "p1", Name: "Anna", RegistrationSeq: 0},
		{PlayerID: "p2", Name: "Ben", RegistrationSeq: 1},
	}
	require.NoError(t, repo.Create(ctx, slot, entries))
	assert.ErrorIs(t, repo.Create(ctx, slot, entries), domain.ErrStateOrdering)

	gotSlot, gotEntries, err := repo.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotWaitingForSelection, gotSlot.Status)
	assert.Empty(t, gotSlot.ActivePlayerID)
	require.Len(t, gotEntries, 2)
	assert.Nil(t, gotEntries[0].Score)
	assert.Empty(t, gotEntries[0].Throws)

	score := 26
	gotSlot.Status = domain.SlotWaitingForAdminConfirm
	gotSlot.ActivePlayerID = "p1"
	gotSlot.LockedBoardID = "board-1"
	gotEntries[0].Score = &score
	gotEntries[0].Throws = []domain.Dart{s(20), s(5), s(1)}

	version, err := repo.Save(ctx, gotSlot, gotEntries, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = repo.Save(ctx, gotSlot, gotEntries, 0)
	assert.ErrorIs(t, err, domain.ErrConcurrencyLoss)

	reloaded, reEntries, err := repo.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "p1", reloaded.ActivePlayerID)
	assert.Equal(t, "board-1", reloaded.LockedBoardID)
	assert.Equal(t, int64(1), reloaded.Version)
	require.NotNil(t, reEntries[0].Score)
	assert.Equal(t, 26, *reEntries[0].Score)
	assert.Equal(t, []domain.Dart{s(20), s(5), s(1)}, reEntries[0].Throws)
	assert.WithinDuration(t, time.Now(), reloaded.UpdatedAt, time.Minute)

	ranked := []domain.RankedPlayer{
		{Rank: 1, PlayerID: "p1", Name: "Anna", Score: 26},
		{Rank: 2, PlayerID: "p2", Name: "Ben", Score: 12},
	}
	reloaded.Status = domain.SlotCompleted
	reloaded.ActivePlayerID = ""
	reloaded.LockedBoardID = ""
	require.NoError(t, repo.Finalize(ctx, reloaded, ranked, 1))

	_, _, err = repo.Load(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	seeding, err := repo.Seeding(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, ranked, seeding)

	_, err = repo.Seeding(ctx, "t2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
