package match

import (
	"math/rand"
	"testing"
	"time"

	"darts-tournament/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(n int) domain.Dart  { return domain.Dart{Segment: n, Multiplier: 1} }
func d(n int) domain.Dart  { return domain.Dart{Segment: n, Multiplier: 2} }
func t3(n int) domain.Dart { return domain.Dart{Segment: n, Multiplier: 3} }

var miss = domain.Dart{Segment: 0, Multiplier: 1}

func newEngine(t *testing.T, start, legs int, mode domain.CheckoutMode) *Engine {
	t.Helper()
	e, err := New(domain.Match{
		ID:      "m1",
		BoardID: "board-1",
		Players: [2]domain.PlayerSlot{{Name: "Anna"}, {Name: "Ben"}},
		Rules:   domain.MatchRules{StartingScore: start, LegsToWin: legs, CheckoutMode: mode},
	})
	require.NoError(t, err)
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }
	return e
}

func submit(t *testing.T, e *Engine, darts ...domain.Dart) domain.ThrowRecord {
	t.Helper()
	rec, _, err := e.SubmitThrow(darts)
	require.NoError(t, err)
	return rec
}

func TestNewRejectsBadRules(t *testing.T) {
	_, err := New(domain.Match{Rules: domain.MatchRules{StartingScore: 501, LegsToWin: 0, CheckoutMode: domain.DoubleOut}})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)

	_, err = New(domain.Match{Rules: domain.MatchRules{StartingScore: 501, LegsToWin: 1, CheckoutMode: "triple_out"}})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)
}

func TestSubmitThrowNormal(t *testing.T) {
	e := newEngine(t, 501, 3, domain.DoubleOut)

	rec := submit(t, e, s(20), s(20), s(20))
	assert.Equal(t, 1, rec.Player)
	assert.Equal(t, 60, rec.Total)
	assert.Equal(t, 441, rec.Remaining)
	assert.False(t, rec.Bust)

	m := e.Snapshot()
	assert.Equal(t, 441, m.Players[0].Score)
	assert.Equal(t, 501, m.Players[1].Score)
	assert.Equal(t, 2, m.CurrentPlayer)
	assert.Equal(t, 3, m.Players[0].DartsThrown)
	assert.Equal(t, domain.MatchActive, m.Status)
}

func TestSubmitThrowBust(t *testing.T) {
	e := newEngine(t, 40, 3, domain.DoubleOut)

	rec := submit(t, e, s(20), s(20), miss)
	assert.True(t, rec.Bust)
	assert.Equal(t, 40, rec.Remaining)
	assert.Equal(t, 0, rec.Scored())

	m := e.Snapshot()
	assert.Equal(t, 40, m.Players[0].Score, "bust leaves the score unchanged")
	assert.Equal(t, 3, m.Players[0].DartsThrown, "bust still counts darts")
	assert.Equal(t, 2, m.CurrentPlayer, "bust consumes the turn")
}

func TestSubmitThrowCheckoutStartsNextLeg(t *testing.T) {
	e := newEngine(t, 32, 2, domain.DoubleOut)

	rec, events, err := e.SubmitThrow([]domain.Dart{d(16)})
	require.NoError(t, err)
	assert.True(t, rec.Checkout)
	assert.True(t, Has(events, EventLegWon))
	assert.False(t, Has(events, EventMatchFinished))

	m := e.Snapshot()
	assert.Equal(t, 1, m.Players[0].Legs)
	assert.Equal(t, 2, m.CurrentLeg)
	assert.Equal(t, 32, m.Players[0].Score)
	assert.Equal(t, 32, m.Players[1].Score)
	assert.Equal(t, 2, m.CurrentPlayer)
}

func TestFinishedMatchRejectsMutators(t *testing.T) {
	e := newEngine(t, 32, 1, domain.DoubleOut)

	_, events, err := e.SubmitThrow([]domain.Dart{d(16)})
	require.NoError(t, err)
	require.True(t, Has(events, EventMatchFinished))

	m := e.Snapshot()
	assert.Equal(t, domain.MatchFinished, m.Status)
	assert.Equal(t, 1, m.Winner)
	assert.Equal(t, 1, m.CurrentPlayer, "turn does not pass when the match finishes")

	_, _, err = e.SubmitThrow([]domain.Dart{s(1), s(1), s(1)})
	assert.ErrorIs(t, err, domain.ErrStateOrdering)
	_, err = e.UndoLast()
	assert.ErrorIs(t, err, domain.ErrStateOrdering)
	_, err = e.EditThrow(0, []domain.Dart{d(16)})
	assert.ErrorIs(t, err, domain.ErrStateOrdering)
	_, err = e.Reset()
	assert.ErrorIs(t, err, domain.ErrStateOrdering)

	assert.Equal(t, m, e.Snapshot())
}

func TestSubmitThrowRuleViolationHasNoSideEffect(t *testing.T) {
	e := newEngine(t, 501, 3, domain.DoubleOut)
	before := e.Snapshot()

	_, _, err := e.SubmitThrow([]domain.Dart{s(20)})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)
	_, _, err = e.SubmitThrow([]domain.Dart{s(20), s(20), s(20), s(20)})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)

	assert.Equal(t, before, e.Snapshot())
}

func TestReplayReproducesLiveScore(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := newEngine(t, 101, 2, domain.DoubleOut)

	for i := 0; i < 2000 && e.Snapshot().Status == domain.MatchActive; i++ {
		darts := make([]domain.Dart, 3)
		for j := range darts {
			darts[j] = randomDart(rng)
		}
		// Shorten turns that ended early so they remain legal.
		for n := 1; n <= 3; n++ {
			if _, _, err := e.SubmitThrow(darts[:n]); err == nil {
				break
			}
		}

		m := e.Snapshot()
		for p := 1; p <= 2; p++ {
			scored := 0
			for _, rec := range m.Throws {
				if rec.Player == p && rec.Leg == m.CurrentLeg {
					scored += rec.Scored()
				}
			}
			if m.Status == domain.MatchActive {
				require.Equal(t, m.Rules.StartingScore-m.Player(p).Score, scored, "player %d after %d throws", p, len(m.Throws))
			}
		}

		replayed, err := Fold(m, m.Throws)
		require.NoError(t, err)
		require.Equal(t, m, replayed)
	}
}

func randomDart(rng *rand.Rand) domain.Dart {
	switch r := rng.Intn(22); {
	case r == 0:
		return miss
	case r == 21:
		return domain.Dart{Segment: 25, Multiplier: 1 + rng.Intn(2)}
	default:
		return domain.Dart{Segment: r, Multiplier: 1 + rng.Intn(3)}
	}
}

func TestUndoLast(t *testing.T) {
	e := newEngine(t, 101, 2, domain.DoubleOut)

	_, err := e.UndoLast()
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)

	submit(t, e, s(20), s(20), s(20))
	afterFirst := e.Snapshot()
	submit(t, e, t3(20), t3(20)) // player 2 busts from 101

	events, err := e.UndoLast()
	require.NoError(t, err)
	require.Len(t, events, 1)
	removed := events[0].Payload.(ThrowUndonePayload).Record
	assert.True(t, removed.Bust)
	assert.Equal(t, afterFirst, e.Snapshot())
}

func TestUndoAcrossLegBoundary(t *testing.T) {
	e := newEngine(t, 40, 2, domain.DoubleOut)
	submit(t, e, d(20))
	require.Equal(t, 2, e.Snapshot().CurrentLeg)

	_, err := e.UndoLast()
	require.NoError(t, err)

	m := e.Snapshot()
	assert.Equal(t, 1, m.CurrentLeg)
	assert.Equal(t, 0, m.Players[0].Legs)
	assert.Equal(t, 40, m.Players[0].Score)
	assert.Equal(t, 1, m.CurrentPlayer)
}

func TestEditThrowCascadesWithinPlayerAndLeg(t *testing.T) {
	e := newEngine(t, 101, 2, domain.DoubleOut)
	submit(t, e, s(20), s(20), s(20)) // p1 41
	submit(t, e, s(1), s(1), s(1))    // p2 98
	submit(t, e, s(20), s(20), miss)  // p1 busts, would leave 1
	submit(t, e, s(1), s(1), s(1))    // p2 95

	before := e.Snapshot()
	require.True(t, before.Throws[2].Bust)

	events, err := e.EditThrow(0, []domain.Dart{s(20), s(20), s(1)})
	require.NoError(t, err)
	require.Equal(t, EventThrowEdited, events[0].Kind)

	m := e.Snapshot()
	assert.Equal(t, 41, m.Throws[0].Total)
	assert.Equal(t, 60, m.Throws[0].Remaining)
	assert.False(t, m.Throws[2].Bust, "later record of the same player re-folds")
	assert.Equal(t, 20, m.Throws[2].Remaining)
	assert.Equal(t, 20, m.Players[0].Score)

	assert.Equal(t, before.Throws[1], m.Throws[1], "other player's records untouched")
	assert.Equal(t, before.Throws[3], m.Throws[3], "other player's records untouched")
	assert.Equal(t, before.Players[1], m.Players[1])
}

func TestEditThrowIsIdempotent(t *testing.T) {
	e := newEngine(t, 501, 3, domain.DoubleOut)
	submit(t, e, s(20), s(20), s(20))
	submit(t, e, t3(20), t3(20), t3(20))
	submit(t, e, s(5), s(5), s(5))

	_, err := e.EditThrow(1, []domain.Dart{t3(19), t3(19), s(19)})
	require.NoError(t, err)
	once := e.Snapshot()

	_, err = e.EditThrow(1, []domain.Dart{t3(19), t3(19), s(19)})
	require.NoError(t, err)
	assert.Equal(t, once, e.Snapshot())
}

func TestEditThrowRejectsLegOutcomeChange(t *testing.T) {
	e := newEngine(t, 40, 2, domain.DoubleOut)
	submit(t, e, d(20))
	submit(t, e, s(1), s(1), s(1))
	before := e.Snapshot()

	_, err := e.EditThrow(0, []domain.Dart{s(20), s(10), s(5)})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)

	_, err = e.EditThrow(5, []domain.Dart{s(1), s(1), s(1)})
	assert.ErrorIs(t, err, domain.ErrRuleViolation)

	assert.Equal(t, before, e.Snapshot())
}

func TestResetThenReplayRoundTrip(t *testing.T) {
	e := newEngine(t, 101, 3, domain.DoubleOut)
	turns := [][]domain.Dart{
		{t3(20), s(1), s(1)},
		{s(20), s(20), s(20)},
		{s(19), d(10)},
		{s(5), s(5), s(5)},
		{s(1), s(1), s(1)},
	}
	for _, darts := range turns {
		submit(t, e, darts...)
	}
	original := e.Snapshot()

	events, err := e.Reset()
	require.NoError(t, err)
	assert.True(t, Has(events, EventMatchReset))

	fresh := e.Snapshot()
	assert.Empty(t, fresh.Throws)
	assert.Equal(t, 1, fresh.CurrentLeg)
	assert.Equal(t, 1, fresh.CurrentPlayer)
	assert.Equal(t, [2]int{101, 101}, [2]int{fresh.Players[0].Score, fresh.Players[1].Score})

	for _, darts := range turns {
		submit(t, e, darts...)
	}
	assert.Equal(t, original, e.Snapshot())
}

func TestAverageCountsBustDarts(t *testing.T) {
	e := newEngine(t, 501, 3, domain.DoubleOut)
	submit(t, e, t3(20), t3(20), t3(20))
	assert.Equal(t, 180.0, e.Snapshot().Players[0].Average)

	submit(t, e, s(1), s(1), s(1))
	submit(t, e, t3(20), t3(20), t3(20)) // 321 -> 141
	submit(t, e, s(1), s(1), s(1))
	submit(t, e, t3(20), t3(20), t3(20)) // bust from 141

	m := e.Snapshot()
	assert.True(t, m.Throws[4].Bust)
	assert.Equal(t, 9, m.Players[0].DartsThrown)
	assert.Equal(t, 120.0, m.Players[0].Average)
}
