package broadcast

import "darts-tournament/internal/domain"

// Server -> board subscribers. Delivery is best effort and unordered; the
// receiving side reconciles rather than trusting arrival order.
//
// throw-update:    gameData + throw (throw omitted when forceSync is set)
// game-reset:      gameData at the starting position, always forceSync
// game-assigned:   gameData for a newly assigned match
// shootout-update: shootout slot state on the locked board

type MessageType string

const (
	TypeThrowUpdate    MessageType = "throw-update"
	TypeGameReset      MessageType = "game-reset"
	TypeGameAssigned   MessageType = "game-assigned"
	TypeShootoutUpdate MessageType = "shootout-update"
)

type Message struct {
	Type      MessageType   `json:"type"`
	BoardID   string        `json:"boardId"`
	GameData  *GameData     `json:"gameData,omitempty"`
	Throw     *ThrowDelta   `json:"throw,omitempty"`
	Shootout  *ShootoutData `json:"shootout,omitempty"`
	ForceSync bool          `json:"forceSync,omitempty"`
}

type GameData struct {
	MatchID       string `json:"matchId,omitempty"`
	P1Name        string `json:"p1Name,omitempty"`
	P2Name        string `json:"p2Name,omitempty"`
	P1Score       int    `json:"p1Score"`
	P2Score       int    `json:"p2Score"`
	P1Legs        int    `json:"p1Legs"`
	P2Legs        int    `json:"p2Legs"`
	CurrentPlayer int    `json:"currentPlayer"`
	CurrentLeg    int    `json:"currentLeg"`
	ThrowCount    int    `json:"throwCount"`
	StartingScore int    `json:"startingScore"`
	Status        string `json:"status"`
	Winner        int    `json:"winner,omitempty"`
}

type ThrowDelta struct {
	Player   int           `json:"player"`
	Darts    []domain.Dart `json:"darts"`
	Total    int           `json:"total"`
	NewScore int           `json:"newScore"`
	IsBust   bool          `json:"isBust"`
}

type ShootoutData struct {
	TournamentID     string `json:"tournamentId"`
	Status           string `json:"status"`
	ActivePlayerID   string `json:"activePlayerId,omitempty"`
	ActivePlayerName string `json:"activePlayerName,omitempty"`
	LockedBoardID    string `json:"lockedBoardId,omitempty"`
	Scored           int    `json:"scored"`
	Total            int    `json:"total"`
	Version          int64  `json:"version"`
}
