// Package rules classifies a turn of darts against the remaining score.
// Everything here is a pure function of its arguments.
package rules

import (
	"fmt"

	"darts-tournament/internal/domain"
)

const MaxDartsPerTurn = 3

type Outcome string

const (
	Normal     Outcome = "normal"
	Bust       Outcome = "bust"
	Checkout   Outcome = "checkout"
	Incomplete Outcome = "incomplete"
)

// Ended reports whether the outcome ends the turn before the third dart.
func (o Outcome) Ended() bool {
	return o == Bust || o == Checkout
}

// Turn is the evaluated result of one submitted turn.
type Turn struct {
	Outcome        Outcome
	Total          int
	RemainingAfter int // unchanged from remainingBefore on a bust
}

// Classify decides the outcome of darts thrown from remainingBefore.
func Classify(remainingBefore int, darts []domain.Dart, mode domain.CheckoutMode) Outcome {
	if len(darts) == 0 {
		return Incomplete
	}

	after := remainingBefore - domain.Sum(darts)
	switch {
	case after < 0:
		return Bust
	case after == 0:
		if Finishes(darts[len(darts)-1], mode) {
			return Checkout
		}
		return Bust
	case after == 1 && mode != domain.SingleOut:
		return Bust
	case len(darts) < MaxDartsPerTurn:
		return Incomplete
	}
	return Normal
}

// Finishes reports whether d is a legal finishing dart under mode.
func Finishes(d domain.Dart, mode domain.CheckoutMode) bool {
	switch mode {
	case domain.SingleOut:
		return true
	case domain.MasterOut:
		return d.Multiplier == 2 || d.Multiplier == 3 || d.Bullseye()
	default:
		return d.Multiplier == 2 || d.Bullseye()
	}
}

// Evaluate validates the shape of a complete turn and classifies it.
// A turn is 1-3 legal darts and must not be Incomplete. Nothing may follow
// a checkout dart; after a bust only misses may be entered.
func Evaluate(remainingBefore int, darts []domain.Dart, mode domain.CheckoutMode) (Turn, error) {
	if err := ValidateShape(darts); err != nil {
		return Turn{}, err
	}

	for i := 1; i < len(darts); i++ {
		switch Classify(remainingBefore, darts[:i], mode) {
		case Checkout:
			return Turn{}, fmt.Errorf("%w: dart %d thrown after checkout", domain.ErrRuleViolation, i+1)
		case Bust:
			for j, d := range darts[i:] {
				if d.Score() != 0 {
					return Turn{}, fmt.Errorf("%w: dart %d scored after bust", domain.ErrRuleViolation, i+j+1)
				}
			}
		}
	}

	outcome := Classify(remainingBefore, darts, mode)
	if outcome == Incomplete {
		return Turn{}, domain.ErrTurnIncomplete
	}

	turn := Turn{
		Outcome:        outcome,
		Total:          domain.Sum(darts),
		RemainingAfter: remainingBefore,
	}
	if outcome != Bust {
		turn.RemainingAfter = remainingBefore - turn.Total
	}
	return turn, nil
}

// ValidateShape checks dart count and that every dart exists on a board.
func ValidateShape(darts []domain.Dart) error {
	if len(darts) == 0 || len(darts) > MaxDartsPerTurn {
		return fmt.Errorf("%w: %d darts, want 1-%d", domain.ErrRuleViolation, len(darts), MaxDartsPerTurn)
	}
	for i, d := range darts {
		if !d.Valid() {
			return fmt.Errorf("%w: dart %d (segment %d x%d) is not on the board", domain.ErrRuleViolation, i+1, d.Segment, d.Multiplier)
		}
	}
	return nil
}
