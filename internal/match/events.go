package match

import "darts-tournament/internal/domain"

// EventKind identifies what a successful engine operation did.
type EventKind string

const (
	EventThrowRecorded EventKind = "throw_recorded"
	EventLegWon        EventKind = "leg_won"
	EventMatchFinished EventKind = "match_finished"
	EventThrowUndone   EventKind = "throw_undone"
	EventThrowEdited   EventKind = "throw_edited"
	EventMatchReset    EventKind = "match_reset"
)

type Event struct {
	Kind    EventKind
	Payload any
}

type ThrowRecordedPayload struct {
	Record domain.ThrowRecord
}

type LegWonPayload struct {
	Player int
	Leg    int
}

type MatchFinishedPayload struct {
	Winner int
}

type ThrowUndonePayload struct {
	Record domain.ThrowRecord
}

type ThrowEditedPayload struct {
	Index  int
	Record domain.ThrowRecord
}

type MatchResetPayload struct{}

// Has reports whether events contains kind.
func Has(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
