package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRuleViolation covers illegal throw shapes; nothing is mutated.
	ErrRuleViolation = errors.New("rule violation")
	// ErrStateOrdering is returned when an operation is invoked from the wrong state.
	ErrStateOrdering = errors.New("state ordering error")
	// ErrConcurrencyLoss means another writer committed a transition first.
	ErrConcurrencyLoss = errors.New("concurrency loss")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrMatchFinished  = fmt.Errorf("%w: match already finished", ErrStateOrdering)
	ErrNothingToUndo  = fmt.Errorf("%w: no throws to undo", ErrStateOrdering)
	ErrTurnIncomplete = fmt.Errorf("%w: turn incomplete, three darts required unless checkout or bust", ErrRuleViolation)
)
