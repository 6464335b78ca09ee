package shootout

import (
	"fmt"

	"darts-tournament/internal/domain"
)

type Action string

const (
	ActionSelectPlayer    Action = "select_player"
	ActionStartThrowing   Action = "start_throwing"
	ActionRecordThrows    Action = "record_throws"
	ActionConfirmFinish   Action = "confirm_finish"
	ActionCancelSelection Action = "cancel_selection"
	ActionResetPlayer     Action = "reset_player"
	ActionFinalize        Action = "finalize"
)

// Next is the slot transition table. ConfirmFinish always lands on
// WAITING_FOR_SELECTION here; the orchestrator promotes it to COMPLETED
// once every eligible player has a score.
func Next(from domain.SlotStatus, action Action) (domain.SlotStatus, error) {
	switch from {
	case domain.SlotWaitingForSelection:
		switch action {
		case ActionSelectPlayer:
			return domain.SlotPlayerSelected, nil
		case ActionResetPlayer:
			return domain.SlotWaitingForSelection, nil
		}
	case domain.SlotPlayerSelected:
		switch action {
		case ActionStartThrowing:
			return domain.SlotThrowing, nil
		case ActionCancelSelection:
			return domain.SlotWaitingForSelection, nil
		}
	case domain.SlotThrowing:
		if action == ActionRecordThrows {
			return domain.SlotWaitingForAdminConfirm, nil
		}
	case domain.SlotWaitingForAdminConfirm:
		if action == ActionConfirmFinish {
			return domain.SlotWaitingForSelection, nil
		}
	case domain.SlotCompleted:
		switch action {
		case ActionResetPlayer:
			return domain.SlotWaitingForSelection, nil
		case ActionFinalize:
			return domain.SlotCompleted, nil
		}
	}
	return from, fmt.Errorf("%w: cannot %s while slot is %s", domain.ErrStateOrdering, action, from)
}
