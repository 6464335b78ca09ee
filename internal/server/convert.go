package server

import (
	"darts-tournament/internal/domain"
	"darts-tournament/internal/reconcile"
	"darts-tournament/internal/shootout"
	dartsv1 "darts-tournament/pkg/dartsv1"
)

func toDomainDarts(in []dartsv1.Dart) []domain.Dart {
	out := make([]domain.Dart, len(in))
	for i, d := range in {
		out[i] = domain.Dart{Segment: d.Segment, Multiplier: d.Multiplier}
	}
	return out
}

func toProtoDarts(in []domain.Dart) []dartsv1.Dart {
	out := make([]dartsv1.Dart, len(in))
	for i, d := range in {
		out[i] = dartsv1.Dart{Segment: d.Segment, Multiplier: d.Multiplier}
	}
	return out
}

func toProtoThrow(t domain.ThrowRecord) dartsv1.Throw {
	return dartsv1.Throw{
		ID:        t.ID,
		Player:    t.Player,
		Darts:     toProtoDarts(t.Darts),
		Total:     t.Total,
		Remaining: t.Remaining,
		Leg:       t.Leg,
		Bust:      t.Bust,
		Checkout:  t.Checkout,
	}
}

func toProtoMatch(m domain.Match) dartsv1.Match {
	players := make([]dartsv1.Player, len(m.Players))
	for i, p := range m.Players {
		players[i] = dartsv1.Player{
			Name:        p.Name,
			Score:       p.Score,
			Legs:        p.Legs,
			DartsThrown: p.DartsThrown,
			Average:     p.Average,
		}
	}
	throws := make([]dartsv1.Throw, len(m.Throws))
	for i, t := range m.Throws {
		throws[i] = toProtoThrow(t)
	}
	return dartsv1.Match{
		ID:            m.ID,
		BoardID:       m.BoardID,
		Players:       players,
		CurrentPlayer: m.CurrentPlayer,
		CurrentLeg:    m.CurrentLeg,
		Rules: dartsv1.Rules{
			StartingScore: m.Rules.StartingScore,
			LegsToWin:     m.Rules.LegsToWin,
			CheckoutMode:  string(m.Rules.CheckoutMode),
		},
		Throws:  throws,
		Status:  string(m.Status),
		Winner:  m.Winner,
		Version: m.Version,
	}
}

func toProtoSlot(v reconcile.ShootoutView) dartsv1.Slot {
	return dartsv1.Slot{
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

func toProtoEntries(entries []domain.ShootoutEntry) []dartsv1.Entry {
	out := make([]dartsv1.Entry, len(entries))
	for i, e := range entries {
		out[i] = dartsv1.Entry{
			PlayerID:        e.PlayerID,
			Name:            e.Name,
			RegistrationSeq: e.RegistrationSeq,
			Score:           e.Score,
			Darts:           toProtoDarts(e.Throws),
		}
	}
	return out
}

func toProtoSeeding(ranked []domain.RankedPlayer) []dartsv1.Seed {
	out := make([]dartsv1.Seed, len(ranked))
	for i, r := range ranked {
		out[i] = dartsv1.Seed{Rank: r.Rank, PlayerID: r.PlayerID, Name: r.Name, Score: r.Score}
	}
	return out
}

func toShootoutPlayers(in []dartsv1.ShootoutPlayer) []shootout.Player {
	out := make([]shootout.Player, len(in))
	for i, p := range in {
		out[i] = shootout.Player{ID: p.ID, Name: p.Name}
	}
	return out
}
