package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"darts-tournament/internal/api"
	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/config"
	"darts-tournament/internal/database"
	"darts-tournament/internal/db"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/repository"
	"darts-tournament/internal/shootout"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []broadcast.Message
}

func (r *recorder) Publish(msg broadcast.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) last(t *testing.T) broadcast.Message {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.msgs)
	return r.msgs[len(r.msgs)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

type fakeExporter struct {
	mu     sync.Mutex
	ranked []domain.RankedPlayer
	err    error
}

func (f *fakeExporter) Enabled() bool { return true }

func (f *fakeExporter) ExportSeeding(_ context.Context, _ string, ranked []domain.RankedPlayer) (*api.ExportAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.ranked = ranked
	return &api.ExportAck{Accepted: true, BracketID: "br-1"}, nil
}

func single(n int) domain.Dart { return domain.Dart{Segment: n, Multiplier: 1} }
func double(n int) domain.Dart { return domain.Dart{Segment: n, Multiplier: 2} }
func treble(n int) domain.Dart { return domain.Dart{Segment: n, Multiplier: 3} }

type fixture struct {
	matches   *MatchService
	shootouts *ShootoutService
	hub       *recorder
	exporter  *fakeExporter
}

func setup(t *testing.T) fixture {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "darts.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	hub := &recorder{}
	exporter := &fakeExporter{}
	cfg := &config.Config{DefaultRules: domain.MatchRules{StartingScore: 101, LegsToWin: 2, CheckoutMode: domain.DoubleOut}}

	return fixture{
		matches:   NewMatchService(repository.NewMatchRepository(sqlDB, q, zerolog.Nop()), hub, cfg, zerolog.Nop()),
		shootouts: NewShootoutService(repository.NewShootoutRepository(sqlDB, q, zerolog.Nop()), exporter, hub, zerolog.Nop()),
		hub:       hub,
		exporter:  exporter,
	}
}

func TestAssignMatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.matches.AssignMatch(ctx, "board-1", "Anna", "Ben", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 101, m.Players[0].Score)
	assert.Equal(t, 1, m.CurrentPlayer)

	msg := f.hub.last(t)
	assert.Equal(t, broadcast.TypeGameAssigned, msg.Type)
	assert.Equal(t, "board-1", msg.BoardID)
	assert.Equal(t, "Anna", msg.GameData.P1Name)

	_, err = f.matches.AssignMatch(ctx, "board-1", "Cara", "Dan", nil)
	assert.ErrorIs(t, err, domain.ErrStateOrdering, "board already has an active match")

	m2, err := f.matches.AssignMatch(ctx, "board-2", "Cara", "Dan", &RulesOverride{StartingScore: 301, CheckoutMode: domain.SingleOut})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchRules{StartingScore: 301, LegsToWin: 2, CheckoutMode: domain.SingleOut}, m2.Rules)

	_, err = f.matches.AssignMatch(ctx, "board-3", "Cara", "", nil)
	assert.ErrorIs(t, err, domain.ErrRuleViolation)
	_, err = f.matches.AssignMatch(ctx, "board-3", "Cara", "Dan", &RulesOverride{CheckoutMode: "triple_out"})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)
}

func TestMatchFlowThroughStorage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.matches.AssignMatch(ctx, "board-1", "Anna", "Ben", nil)
	require.NoError(t, err)

	res, err := f.matches.SubmitThrow(ctx, m.ID, []domain.Dart{single(20), single(20), single(20)})
	require.NoError(t, err)
	assert.Equal(t, 41, res.Throw.Remaining)
	assert.NotEmpty(t, res.Throw.ID)
	assert.Equal(t, res.Throw.ID, res.Match.Throws[0].ID)
	assert.Equal(t, int64(1), res.Match.Version)

	msg := f.hub.last(t)
	assert.Equal(t, broadcast.TypeThrowUpdate, msg.Type)
	require.NotNil(t, msg.Throw)
	assert.Equal(t, 41, msg.Throw.NewScore)

	// Bust by player 2: 101 - 120 < 0.
	res, err = f.matches.SubmitThrow(ctx, m.ID, []domain.Dart{treble(20), treble(20)})
	require.NoError(t, err)
	assert.True(t, res.Throw.Bust)
	assert.Equal(t, 101, res.Match.Players[1].Score)

	// Checkout 41 with single 1, double 20.
	res, err = f.matches.SubmitThrow(ctx, m.ID, []domain.Dart{single(1), double(20)})
	require.NoError(t, err)
	assert.True(t, res.LegWon)
	assert.False(t, res.MatchFinished)
	assert.Equal(t, 2, res.Match.CurrentLeg)
	assert.Equal(t, [2]int{101, 101}, [2]int{res.Match.Players[0].Score, res.Match.Players[1].Score})

	got, err := f.matches.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Match.Players, got.Players)
	assert.Len(t, got.Throws, 3)

	board, err := f.matches.GetBoardMatch(ctx, "board-1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, board.ID)

	_, err = f.matches.SubmitThrow(ctx, m.ID, []domain.Dart{single(20)})
	assert.ErrorIs(t, err, domain.ErrTurnIncomplete)
	_, err = f.matches.SubmitThrow(ctx, "nope", []domain.Dart{single(20), single(20), single(20)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUndoEditResetForceSubscribersToRefetch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.matches.AssignMatch(ctx, "board-1", "Anna", "Ben", nil)
	require.NoError(t, err)
	for _, darts := range [][]domain.Dart{
		{single(20), single(20), single(20)},
		{single(5), single(5), single(5)},
		{single(10), single(10), single(10)},
	} {
		_, err := f.matches.SubmitThrow(ctx, m.ID, darts)
		require.NoError(t, err)
	}

	edited, err := f.matches.EditThrow(ctx, m.ID, 0, []domain.Dart{single(19), single(19), single(19)})
	require.NoError(t, err)
	assert.Equal(t, 101-57-30, edited.Players[0].Score, "later throw of the same player re-folds")
	assert.Equal(t, 86, edited.Players[1].Score)
	msg := f.hub.last(t)
	assert.True(t, msg.ForceSync)

	again, err := f.matches.EditThrow(ctx, m.ID, 0, []domain.Dart{single(19), single(19), single(19)})
	require.NoError(t, err)
	assert.Equal(t, edited.Players, again.Players)

	undone, err := f.matches.UndoThrow(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, undone.Throws, 2)
	assert.Equal(t, 44, undone.Players[0].Score)
	assert.Equal(t, 1, undone.CurrentPlayer)
	assert.True(t, f.hub.last(t).ForceSync)

	reset, err := f.matches.ResetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, reset.Throws)
	assert.Equal(t, broadcast.TypeGameReset, f.hub.last(t).Type)

	_, err = f.matches.UndoThrow(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)

	stored, err := f.matches.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Throws)
	assert.Equal(t, 101, stored.Players[0].Score)
}

func TestConcurrentSubmitsAreSerialized(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.matches.AssignMatch(ctx, "board-1", "Anna", "Ben", &RulesOverride{StartingScore: 501})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.matches.SubmitThrow(ctx, m.ID, []domain.Dart{single(1), single(1), single(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.matches.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Throws, 8)
	assert.Equal(t, 501-12, got.Players[0].Score)
	assert.Equal(t, 501-12, got.Players[1].Score)
}

func players(ids ...string) []shootout.Player {
	out := make([]shootout.Player, len(ids))
	for i, id := range ids {
		out[i] = shootout.Player{ID: id, Name: "Player " + id}
	}
	return out
}

func TestShootoutScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.shootouts.Start(ctx, "t1", players("p1", "p2"))
	require.NoError(t, err)
	assert.Equal(t, domain.SlotWaitingForSelection, view.Status)
	assert.Equal(t, 2, view.Total)

	_, err = f.shootouts.Start(ctx, "t1", players("p1"))
	assert.ErrorIs(t, err, domain.ErrStateOrdering)

	_, err = f.shootouts.StartThrowing(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrStateOrdering)

	view, err = f.shootouts.SelectPlayer(ctx, "t1", "p1", "board-4")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotPlayerSelected, view.Status)
	assert.Equal(t, "board-4", view.LockedBoardID)
	assert.Equal(t, "Player p1", view.ActivePlayerName)
	assert.Equal(t, int64(1), view.Version)

	msg := f.hub.last(t)
	assert.Equal(t, broadcast.TypeShootoutUpdate, msg.Type)
	assert.Equal(t, "board-4", msg.BoardID)

	_, err = f.shootouts.StartThrowing(ctx, "t1")
	require.NoError(t, err)
	view, err = f.shootouts.RecordThrows(ctx, "t1", []domain.Dart{single(20), single(5), single(1)})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotWaitingForAdminConfirm, view.Status)

	view, err = f.shootouts.ConfirmFinish(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotWaitingForSelection, view.Status, "p2 has not thrown yet")
	assert.Empty(t, view.ActivePlayerID)
	assert.Equal(t, "board-4", view.LockedBoardID)

	status, err := f.shootouts.Status(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.True(t, status.Changed)
	require.NotNil(t, status.Entries[0].Score)
	assert.Equal(t, 26, *status.Entries[0].Score)

	_, err = f.shootouts.SelectPlayer(ctx, "t1", "p2", "board-5")
	assert.ErrorIs(t, err, domain.ErrRuleViolation, "board lock holds")

	_, err = f.shootouts.SelectPlayer(ctx, "t1", "p2", "")
	require.NoError(t, err)
	_, err = f.shootouts.StartThrowing(ctx, "t1")
	require.NoError(t, err)
	_, err = f.shootouts.RecordThrows(ctx, "t1", []domain.Dart{treble(20), treble(20), double(10)})
	require.NoError(t, err)
	view, err = f.shootouts.ConfirmFinish(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotCompleted, view.Status)

	before := f.hub.count()
	res, err := f.shootouts.Finalize(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, res.Exported)
	require.Len(t, res.Seeding, 2)
	assert.Equal(t, "p2", res.Seeding[0].PlayerID)
	assert.Equal(t, 140, res.Seeding[0].Score)
	assert.Equal(t, res.Seeding, f.exporter.ranked)
	assert.Equal(t, before+1, f.hub.count())
	assert.True(t, f.hub.last(t).ForceSync)

	seeding, err := f.shootouts.Seeding(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, []string{seeding[0].PlayerID, seeding[1].PlayerID})

	_, err = f.shootouts.Finalize(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "finalize consumes the shootout")
}

func TestFinalizeKeepsSeedingWhenExportFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.exporter.err = errors.New("bracket service down")

	_, err := f.shootouts.Start(ctx, "t1", players("p1"))
	require.NoError(t, err)
	_, err = f.shootouts.SelectPlayer(ctx, "t1", "p1", "board-1")
	require.NoError(t, err)
	_, err = f.shootouts.StartThrowing(ctx, "t1")
	require.NoError(t, err)
	_, err = f.shootouts.RecordThrows(ctx, "t1", []domain.Dart{single(1)})
	require.NoError(t, err)
	_, err = f.shootouts.ConfirmFinish(ctx, "t1")
	require.NoError(t, err)

	res, err := f.shootouts.Finalize(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, res.Exported)

	_, err = f.shootouts.Seeding(ctx, "t1")
	assert.NoError(t, err)
}

func TestConcurrentSelectOneWinsOthersLoseDistinctly(t *testing.T) {
	tests := []struct {
		name  string
		picks []string
	}{
		{"different players", []string{"p1", "p2", "p3", "p4", "p5", "p6"}},
		{"same player", []string{"p1", "p1", "p1", "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			ctx := context.Background()

			_, err := f.shootouts.Start(ctx, "t1", players("p1", "p2", "p3", "p4", "p5", "p6"))
			require.NoError(t, err)

			var (
				wg     sync.WaitGroup
				mu     sync.Mutex
				wins   int
				losses int
			)
			for _, id := range tt.picks {
				wg.Add(1)
				go func(id string) {
					defer wg.Done()
					_, err := f.shootouts.SelectPlayer(ctx, "t1", id, "board-1")
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						wins++
					case errors.Is(err, domain.ErrConcurrencyLoss):
						assert.ErrorIs(t, err, domain.ErrStateOrdering)
						losses++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(id)
			}
			wg.Wait()

			assert.Equal(t, 1, wins)
			assert.Equal(t, len(tt.picks)-1, losses)

			status, err := f.shootouts.Status(ctx, "t1", "")
			require.NoError(t, err)
			assert.Equal(t, domain.SlotPlayerSelected, status.View.Status)
			assert.Equal(t, int64(1), status.View.Version)
		})
	}
}

func TestShootoutResetPlayerAllowsRetry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.shootouts.Start(ctx, "t1", players("p1", "p2"))
	require.NoError(t, err)
	_, err = f.shootouts.SelectPlayer(ctx, "t1", "p1", "board-1")
	require.NoError(t, err)
	_, err = f.shootouts.StartThrowing(ctx, "t1")
	require.NoError(t, err)
	_, err = f.shootouts.RecordThrows(ctx, "t1", []domain.Dart{single(1), single(1), single(1)})
	require.NoError(t, err)
	_, err = f.shootouts.ConfirmFinish(ctx, "t1")
	require.NoError(t, err)

	_, err = f.shootouts.SelectPlayer(ctx, "t1", "p1", "")
	assert.ErrorIs(t, err, domain.ErrStateOrdering, "scored player needs a reset first")

	view, err := f.shootouts.ResetPlayer(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Scored)

	_, err = f.shootouts.SelectPlayer(ctx, "t1", "p1", "")
	require.NoError(t, err)
	view, err = f.shootouts.CancelSelection(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotWaitingForSelection, view.Status)
	assert.Equal(t, "board-1", view.LockedBoardID)
}
