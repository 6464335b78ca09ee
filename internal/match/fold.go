package match

import (
	"fmt"
	"math"
	"slices"

	"darts-tournament/internal/domain"
	"darts-tournament/internal/rules"
)

// Fold derives the full match state from the header (identity, names, rules)
// and the ordered throw log. Player, leg, remaining, bust and checkout of each
// record are recomputed; only ID, Darts and CreatedAt are read from the log.
func Fold(header domain.Match, log []domain.ThrowRecord) (domain.Match, error) {
	m := header
	m.Throws = make([]domain.ThrowRecord, 0, len(log))
	m.Status = domain.MatchActive
	m.Winner = 0
	m.CurrentPlayer = 1
	m.CurrentLeg = 1
	for i := range m.Players {
		m.Players[i] = domain.PlayerSlot{Name: header.Players[i].Name, Score: header.Rules.StartingScore}
	}

	var points [2]int
	for i, entry := range log {
		if m.Status == domain.MatchFinished {
			return domain.Match{}, fmt.Errorf("%w: throw %d recorded after the match finished", domain.ErrRuleViolation, i)
		}

		player := m.CurrentPlayer
		slot := m.Player(player)
		turn, err := rules.Evaluate(slot.Score, entry.Darts, header.Rules.CheckoutMode)
		if err != nil {
			return domain.Match{}, fmt.Errorf("throw %d: %w", i, err)
		}

		m.Throws = append(m.Throws, domain.ThrowRecord{
			ID:        entry.ID,
			Player:    player,
			Darts:     slices.Clone(entry.Darts),
			Total:     turn.Total,
			Remaining: turn.RemainingAfter,
			Leg:       m.CurrentLeg,
			Bust:      turn.Outcome == rules.Bust,
			Checkout:  turn.Outcome == rules.Checkout,
			CreatedAt: entry.CreatedAt,
		})

		slot.DartsThrown += len(entry.Darts)
		if turn.Outcome != rules.Bust {
			points[player-1] += turn.Total
		}
		slot.Score = turn.RemainingAfter

		if turn.Outcome == rules.Checkout {
			slot.Legs++
			if slot.Legs >= header.Rules.LegsToWin {
				m.Status = domain.MatchFinished
				m.Winner = player
				continue
			}
			for j := range m.Players {
				m.Players[j].Score = header.Rules.StartingScore
			}
			m.CurrentLeg++
		}
		m.CurrentPlayer = 3 - player
	}

	for i := range m.Players {
		m.Players[i].Average = average(points[i], m.Players[i].DartsThrown)
	}
	return m, nil
}

func average(points, darts int) float64 {
	if darts == 0 {
		return 0
	}
	return math.Round(float64(points)*3/float64(darts)*100) / 100
}

func checkoutIndexes(throws []domain.ThrowRecord) []int {
	var idx []int
	for i, t := range throws {
		if t.Checkout {
			idx = append(idx, i)
		}
	}
	return idx
}
