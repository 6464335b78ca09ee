package domain

import "time"

type SlotStatus string

const (
	SlotWaitingForSelection    SlotStatus = "waiting_for_selection"
	SlotPlayerSelected         SlotStatus = "player_selected"
	SlotThrowing               SlotStatus = "throwing"
	SlotWaitingForAdminConfirm SlotStatus = "waiting_for_admin_confirm"
	SlotCompleted              SlotStatus = "completed"
)

// Occupied reports whether a player holds the slot in this status.
func (s SlotStatus) Occupied() bool {
	switch s {
	case SlotPlayerSelected, SlotThrowing, SlotWaitingForAdminConfirm:
		return true
	}
	return false
}

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotWaitingForSelection, SlotPlayerSelected, SlotThrowing, SlotWaitingForAdminConfirm, SlotCompleted:
		return true
	}
	return false
}

type ShootoutSlot struct {
	TournamentID   string
	Status         SlotStatus
	ActivePlayerID string // empty unless Status.Occupied()
	LockedBoardID  string // set on first selection, cleared by finalize
	Version        int64
	UpdatedAt      time.Time
}

// ShootoutEntry is one eligible player's shootout record.
type ShootoutEntry struct {
	PlayerID        string
	Name            string
	RegistrationSeq int
	Score           *int
	Throws          []Dart
}

func (e ShootoutEntry) Scored() bool {
	return e.Score != nil
}

type RankedPlayer struct {
	Rank            int
	PlayerID        string
	Name            string
	Score           int
	RegistrationSeq int
}
