// Package match implements the turn-based state machine for a single
// two-player match. The engine keeps the ordered throw log as its only
// source of truth and re-derives every score with Fold after each mutation.
package match

import (
	"fmt"
	"slices"
	"time"

	"darts-tournament/internal/domain"
)

type Engine struct {
	state domain.Match
	now   func() time.Time
}

// New restores an engine from a match header and its persisted throw log.
// Derived fields on m are ignored and recomputed.
func New(m domain.Match) (*Engine, error) {
	if err := ValidateRules(m.Rules); err != nil {
		return nil, err
	}
	state, err := Fold(m, m.Throws)
	if err != nil {
		return nil, err
	}
	return &Engine{state: state, now: time.Now}, nil
}

func ValidateRules(r domain.MatchRules) error {
	if r.StartingScore < 2 {
		return fmt.Errorf("%w: starting score %d", domain.ErrRuleViolation, r.StartingScore)
	}
	if r.LegsToWin < 1 {
		return fmt.Errorf("%w: legs to win %d", domain.ErrRuleViolation, r.LegsToWin)
	}
	if !r.CheckoutMode.Valid() {
		return fmt.Errorf("%w: checkout mode %q", domain.ErrRuleViolation, r.CheckoutMode)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() domain.Match {
	m := e.state
	m.Throws = make([]domain.ThrowRecord, len(e.state.Throws))
	for i, t := range e.state.Throws {
		t.Darts = slices.Clone(t.Darts)
		m.Throws[i] = t
	}
	return m
}

// SubmitThrow applies one complete turn for the player on throw.
func (e *Engine) SubmitThrow(darts []domain.Dart) (domain.ThrowRecord, []Event, error) {
	if e.state.Status == domain.MatchFinished {
		return domain.ThrowRecord{}, nil, domain.ErrMatchFinished
	}

	log := append(slices.Clone(e.state.Throws), domain.ThrowRecord{
		Darts:     slices.Clone(darts),
		CreatedAt: e.now(),
	})
	next, err := Fold(e.state, log)
	if err != nil {
		return domain.ThrowRecord{}, nil, err
	}

	prev := e.state
	e.state = next
	rec := next.Throws[len(next.Throws)-1]

	events := []Event{{Kind: EventThrowRecorded, Payload: ThrowRecordedPayload{Record: rec}}}
	if rec.Checkout {
		events = append(events, Event{Kind: EventLegWon, Payload: LegWonPayload{Player: rec.Player, Leg: rec.Leg}})
	}
	if prev.Status != domain.MatchFinished && next.Status == domain.MatchFinished {
		events = append(events, Event{Kind: EventMatchFinished, Payload: MatchFinishedPayload{Winner: next.Winner}})
	}
	return rec, events, nil
}

// UndoLast drops the most recent throw and re-derives the state from the
// remaining log. Whether the dropped throw was a bust is never guessed.
func (e *Engine) UndoLast() ([]Event, error) {
	if e.state.Status == domain.MatchFinished {
		return nil, domain.ErrMatchFinished
	}
	if len(e.state.Throws) == 0 {
		return nil, domain.ErrNothingToUndo
	}

	removed := e.state.Throws[len(e.state.Throws)-1]
	next, err := Fold(e.state, e.state.Throws[:len(e.state.Throws)-1])
	if err != nil {
		return nil, err
	}
	e.state = next
	return []Event{{Kind: EventThrowUndone, Payload: ThrowUndonePayload{Record: removed}}}, nil
}

// EditThrow replaces the darts of the record at index. Later records of the
// same player in the same leg re-fold from it; the other player's records and
// the leg structure must not change, otherwise the edit is rejected.
func (e *Engine) EditThrow(index int, darts []domain.Dart) ([]Event, error) {
	if e.state.Status == domain.MatchFinished {
		return nil, domain.ErrMatchFinished
	}
	if index < 0 || index >= len(e.state.Throws) {
		return nil, fmt.Errorf("%w: throw index %d out of range [0,%d)", domain.ErrRuleViolation, index, len(e.state.Throws))
	}

	log := slices.Clone(e.state.Throws)
	log[index].Darts = slices.Clone(darts)
	next, err := Fold(e.state, log)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(checkoutIndexes(e.state.Throws), checkoutIndexes(next.Throws)) {
		return nil, fmt.Errorf("%w: edit of throw %d changes which throw won a leg", domain.ErrRuleViolation, index)
	}

	e.state = next
	return []Event{{Kind: EventThrowEdited, Payload: ThrowEditedPayload{Index: index, Record: next.Throws[index]}}}, nil
}

// Reset returns the match to its starting position with an empty log.
func (e *Engine) Reset() ([]Event, error) {
	if e.state.Status == domain.MatchFinished {
		return nil, domain.ErrMatchFinished
	}
	next, err := Fold(e.state, nil)
	if err != nil {
		return nil, err
	}
	e.state = next
	return []Event{{Kind: EventMatchReset, Payload: MatchResetPayload{}}}, nil
}
