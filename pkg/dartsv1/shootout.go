package dartsv1

type ShootoutPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Slot struct {
	TournamentID     string `json:"tournamentId"`
	Status           string `json:"status"`
	ActivePlayerID   string `json:"activePlayerId,omitempty"`
	ActivePlayerName string `json:"activePlayerName,omitempty"`
	LockedBoardID    string `json:"lockedBoardId,omitempty"`
	Scored           int    `json:"scored"`
	Total            int    `json:"total"`
	Version          int64  `json:"version"`
}

type Entry struct {
	PlayerID        string `json:"playerId"`
	Name            string `json:"name"`
	RegistrationSeq int    `json:"registrationSeq"`
	Score           *int   `json:"score"`
	Darts           []Dart `json:"darts"`
}

type Seed struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

type StartShootoutRequest struct {
	TournamentID string           `json:"tournamentId"`
	Players      []ShootoutPlayer `json:"players"`
}

type SelectPlayerRequest struct {
	TournamentID string `json:"tournamentId"`
	PlayerID     string `json:"playerId"`
	BoardID      string `json:"boardId"`
}

// SlotRequest addresses the slot for StartThrowing, ConfirmFinish and CancelSelection.
type SlotRequest struct {
	TournamentID string `json:"tournamentId"`
}

type RecordThrowsRequest struct {
	TournamentID string `json:"tournamentId"`
	Darts        []Dart `json:"darts"`
}

type ResetPlayerRequest struct {
	TournamentID string `json:"tournamentId"`
	PlayerID     string `json:"playerId"`
}

type SlotResponse struct {
	Slot Slot `json:"slot"`
}

type FinalizeRequest struct {
	TournamentID string `json:"tournamentId"`
}

type FinalizeResponse struct {
	Seeding  []Seed `json:"seeding"`
	Exported bool   `json:"exported"`
}

type GetStatusRequest struct {
	TournamentID           string `json:"tournamentId"`
	BelievedActivePlayerID string `json:"believedActivePlayerId,omitempty"`
}

type GetStatusResponse struct {
	Slot    Slot    `json:"slot"`
	Changed bool    `json:"changed"`
	Entries []Entry `json:"entries"`
}

type GetSeedingRequest struct {
	TournamentID string `json:"tournamentId"`
}

type GetSeedingResponse struct {
	Seeding []Seed `json:"seeding"`
}
