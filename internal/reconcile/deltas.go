package reconcile

import (
	"slices"

	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/match"
)

// Deltas turns the events of one engine operation into broadcast messages
// carrying the post-operation state m. Leg and match completion ride along
// in gameData and do not get their own message.
func Deltas(m domain.Match, events []match.Event) []broadcast.Message {
	game := ViewOf(m).GameData()

	var out []broadcast.Message
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case match.ThrowRecordedPayload:
			g := game
			out = append(out, broadcast.Message{
				Type:     broadcast.TypeThrowUpdate,
				BoardID:  m.BoardID,
				GameData: &g,
				Throw: &broadcast.ThrowDelta{
					Player:   p.Record.Player,
					Darts:    slices.Clone(p.Record.Darts),
					Total:    p.Record.Total,
					NewScore: p.Record.Remaining,
					IsBust:   p.Record.Bust,
				},
			})

		case match.ThrowUndonePayload, match.ThrowEditedPayload:
			g := game
			out = append(out, broadcast.Message{
				Type:      broadcast.TypeThrowUpdate,
				BoardID:   m.BoardID,
				GameData:  &g,
				ForceSync: true,
			})

		case match.MatchResetPayload:
			g := game
			out = append(out, broadcast.Message{
				Type:      broadcast.TypeGameReset,
				BoardID:   m.BoardID,
				GameData:  &g,
				ForceSync: true,
			})
		}
	}
	return out
}

func PackageAssigned(m domain.Match) broadcast.Message {
	g := ViewOf(m).GameData()
	return broadcast.Message{
		Type:     broadcast.TypeGameAssigned,
		BoardID:  m.BoardID,
		GameData: &g,
	}
}

// PackageShootout addresses the slot state to boardID, normally the locked board.
func PackageShootout(boardID string, v ShootoutView, force bool) broadcast.Message {
	d := v.Data()
	return broadcast.Message{
		Type:      broadcast.TypeShootoutUpdate,
		BoardID:   boardID,
		Shootout:  &d,
		ForceSync: force,
	}
}
