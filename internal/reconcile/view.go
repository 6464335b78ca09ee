package reconcile

import (
	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/shootout"
)

// MatchView is what a display or input client holds locally for one board.
type MatchView struct {
	MatchID       string
	BoardID       string
	Names         [2]string
	Scores        [2]int
	Legs          [2]int
	CurrentPlayer int
	CurrentLeg    int
	ThrowCount    int
	StartingScore int
	Status        domain.MatchStatus
	Winner        int
}

func ViewOf(m domain.Match) MatchView {
	return MatchView{
		MatchID:       m.ID,
		BoardID:       m.BoardID,
		Names:         [2]string{m.Players[0].Name, m.Players[1].Name},
		Scores:        [2]int{m.Players[0].Score, m.Players[1].Score},
		Legs:          [2]int{m.Players[0].Legs, m.Players[1].Legs},
		CurrentPlayer: m.CurrentPlayer,
		CurrentLeg:    m.CurrentLeg,
		ThrowCount:    len(m.Throws),
		StartingScore: m.Rules.StartingScore,
		Status:        m.Status,
		Winner:        m.Winner,
	}
}

func ViewFromGameData(boardID string, g broadcast.GameData) MatchView {
	return MatchView{
		MatchID:       g.MatchID,
		BoardID:       boardID,
		Names:         [2]string{g.P1Name, g.P2Name},
		Scores:        [2]int{g.P1Score, g.P2Score},
		Legs:          [2]int{g.P1Legs, g.P2Legs},
		CurrentPlayer: g.CurrentPlayer,
		CurrentLeg:    g.CurrentLeg,
		ThrowCount:    g.ThrowCount,
		StartingScore: g.StartingScore,
		Status:        domain.MatchStatus(g.Status),
		Winner:        g.Winner,
	}
}

func (v MatchView) GameData() broadcast.GameData {
	return broadcast.GameData{
		MatchID:       v.MatchID,
		P1Name:        v.Names[0],
		P2Name:        v.Names[1],
		P1Score:       v.Scores[0],
		P2Score:       v.Scores[1],
		P1Legs:        v.Legs[0],
		P2Legs:        v.Legs[1],
		CurrentPlayer: v.CurrentPlayer,
		CurrentLeg:    v.CurrentLeg,
		ThrowCount:    v.ThrowCount,
		StartingScore: v.StartingScore,
		Status:        string(v.Status),
		Winner:        v.Winner,
	}
}

// Fresh reports the canonical starting position: full scores, no legs, no throws.
func (v MatchView) Fresh() bool {
	return v.ThrowCount == 0 &&
		v.Legs == [2]int{} &&
		v.Scores == [2]int{v.StartingScore, v.StartingScore}
}

func (v MatchView) progressed() bool {
	return v.ThrowCount > 0 || v.Legs != [2]int{}
}

// sameGame compares match ids when both sides have one, player names otherwise.
func (v MatchView) sameGame(o MatchView) bool {
	if v.MatchID != "" && o.MatchID != "" {
		return v.MatchID == o.MatchID
	}
	return v.Names == o.Names
}

// ShootoutView is the locally held copy of the shootout slot.
type ShootoutView struct {
	TournamentID     string
	Status           domain.SlotStatus
	ActivePlayerID   string
	ActivePlayerName string
	LockedBoardID    string
	Scored           int
	Total            int
	Version          int64
}

func ShootoutViewOf(slot domain.ShootoutSlot, poll shootout.PollResult) ShootoutView {
	return ShootoutView{
		TournamentID:     slot.TournamentID,
		Status:           slot.Status,
		ActivePlayerID:   slot.ActivePlayerID,
		ActivePlayerName: poll.ActivePlayerName,
		LockedBoardID:    slot.LockedBoardID,
		Scored:           poll.Scored,
		Total:            poll.Total,
		Version:          slot.Version,
	}
}

func ShootoutViewFromData(d broadcast.ShootoutData) ShootoutView {
	return ShootoutView{
		TournamentID:     d.TournamentID,
		Status:           domain.SlotStatus(d.Status),
		ActivePlayerID:   d.ActivePlayerID,
		ActivePlayerName: d.ActivePlayerName,
		LockedBoardID:    d.LockedBoardID,
		Scored:           d.Scored,
		Total:            d.Total,
		Version:          d.Version,
	}
}

func (v ShootoutView) Data() broadcast.ShootoutData {
	return broadcast.ShootoutData{
		TournamentID:     v.TournamentID,
		Status:           string(v.Status),
		ActivePlayerID:   v.ActivePlayerID,
		ActivePlayerName: v.ActivePlayerName,
		LockedBoardID:    v.LockedBoardID,
		Scored:           v.Scored,
		Total:            v.Total,
		Version:          v.Version,
	}
}
