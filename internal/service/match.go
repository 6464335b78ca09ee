package service

import (
	"context"
	"fmt"
	"strings"

	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/config"
	"darts-tournament/internal/constants"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/match"
	"darts-tournament/internal/reconcile"
	"darts-tournament/internal/repository"

	"github.com/rs/zerolog"
)

// Publisher fans broadcast messages out to board subscribers.
type Publisher interface {
	Publish(msg broadcast.Message)
}

type MatchService struct {
	repo     *repository.MatchRepository
	hub      Publisher
	defaults domain.MatchRules
	locks    *keyedMutex
	logger   zerolog.Logger
}

func NewMatchService(repo *repository.MatchRepository, hub Publisher, cfg *config.Config, logger zerolog.Logger) *MatchService {
	return &MatchService{
		repo:     repo,
		hub:      hub,
		defaults: cfg.DefaultRules,
		locks:    newKeyedMutex(),
		logger:   logger.With().Str("service", "match").Logger(),
	}
}

// RulesOverride replaces individual default rules when non-zero.
type RulesOverride struct {
	StartingScore int
	LegsToWin     int
	CheckoutMode  domain.CheckoutMode
}

// AssignMatch creates a match between two players on a board and announces
// it to the board's subscribers.
func (s *MatchService) AssignMatch(ctx context.Context, boardID, player1, player2 string, override *RulesOverride) (domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	boardID = strings.TrimSpace(boardID)
	player1, player2 = strings.TrimSpace(player1), strings.TrimSpace(player2)
	if boardID == "" || player1 == "" || player2 == "" {
		return domain.Match{}, fmt.Errorf("%w: board and both player names are required", domain.ErrRuleViolation)
	}

	rules := s.defaults
	if override != nil {
		if override.StartingScore != 0 {
			rules.StartingScore = override.StartingScore
		}
		if override.LegsToWin != 0 {
			rules.LegsToWin = override.LegsToWin
		}
		if override.CheckoutMode != "" {
			rules.CheckoutMode = override.CheckoutMode
		}
	}
	if err := match.ValidateRules(rules); err != nil {
		return domain.Match{}, err
	}

	m, err := match.Fold(domain.Match{
		BoardID: boardID,
		Players: [2]domain.PlayerSlot{{Name: player1}, {Name: player2}},
		Rules:   rules,
	}, nil)
	if err != nil {
		return domain.Match{}, err
	}

	unlock := s.locks.Lock("board:" + boardID)
	defer unlock()

	if err := s.repo.Create(ctx, &m); err != nil {
		s.logger.Warn().Err(err).Str("board_id", boardID).Msg("failed to assign match")
		return domain.Match{}, err
	}

	s.logger.Info().
		Str("match_id", m.ID).
		Str("board_id", boardID).
		Str("player1", player1).
		Str("player2", player2).
		Int("starting_score", rules.StartingScore).
		Int("legs_to_win", rules.LegsToWin).
		Str("checkout_mode", string(rules.CheckoutMode)).
		Msg("match assigned")

	s.hub.Publish(reconcile.PackageAssigned(m))
	return m, nil
}

type SubmitResult struct {
	Match         domain.Match
	Throw         domain.ThrowRecord
	LegWon        bool
	MatchFinished bool
}

// SubmitThrow applies one complete turn for the player on throw. The turn is
// persisted together with the derived scores before anything is broadcast.
func (s *MatchService) SubmitThrow(ctx context.Context, matchID string, darts []domain.Dart) (SubmitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, e, err := s.load(ctx, matchID)
	if err != nil {
		return SubmitResult{}, err
	}

	rec, events, err := e.SubmitThrow(darts)
	if err != nil {
		s.logger.Debug().Err(err).Str("match_id", matchID).Msg("throw rejected")
		return SubmitResult{}, err
	}

	next := e.Snapshot()
	version, err := s.repo.AppendThrow(ctx, next, &rec, m.Version)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to persist throw")
		return SubmitResult{}, err
	}
	next.Throws[len(next.Throws)-1].ID = rec.ID
	next.Version = version

	s.logger.Info().
		Str("match_id", matchID).
		Str("throw_id", rec.ID).
		Int("player", rec.Player).
		Int("total", rec.Total).
		Int("remaining", rec.Remaining).
		Bool("bust", rec.Bust).
		Bool("checkout", rec.Checkout).
		Msg("throw recorded")

	s.publish(next, events)
	return SubmitResult{
		Match:         next,
		Throw:         rec,
		LegWon:        match.Has(events, match.EventLegWon),
		MatchFinished: match.Has(events, match.EventMatchFinished),
	}, nil
}

// UndoThrow removes the most recent throw. Subscribers are told to refetch
// rather than patch, since a popped bust cannot be told apart locally.
func (s *MatchService) UndoThrow(ctx context.Context, matchID string) (domain.Match, error) {
	return s.rewrite(ctx, matchID, "throw undone", func(e *match.Engine) ([]match.Event, error) {
		return e.UndoLast()
	})
}

func (s *MatchService) EditThrow(ctx context.Context, matchID string, index int, darts []domain.Dart) (domain.Match, error) {
	return s.rewrite(ctx, matchID, "throw edited", func(e *match.Engine) ([]match.Event, error) {
		return e.EditThrow(index, darts)
	})
}

func (s *MatchService) ResetMatch(ctx context.Context, matchID string) (domain.Match, error) {
	return s.rewrite(ctx, matchID, "match reset", func(e *match.Engine) ([]match.Event, error) {
		return e.Reset()
	})
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, e, err := s.load(ctx, matchID)
	if err != nil {
		return domain.Match{}, err
	}
	return e.Snapshot(), nil
}

// GetBoardMatch returns the latest match assigned to a board, finished or not.
func (s *MatchService) GetBoardMatch(ctx context.Context, boardID string) (domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	m, err := s.repo.GetLatestByBoard(ctx, boardID)
	if err != nil {
		return domain.Match{}, err
	}
	e, err := match.New(m)
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to replay match %s: %w", m.ID, err)
	}
	return e.Snapshot(), nil
}

func (s *MatchService) rewrite(ctx context.Context, matchID, what string, apply func(*match.Engine) ([]match.Event, error)) (domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, e, err := s.load(ctx, matchID)
	if err != nil {
		return domain.Match{}, err
	}

	events, err := apply(e)
	if err != nil {
		s.logger.Debug().Err(err).Str("match_id", matchID).Msg("rewrite rejected")
		return domain.Match{}, err
	}

	next := e.Snapshot()
	version, err := s.repo.ReplaceThrows(ctx, next, m.Version)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to persist throw log")
		return domain.Match{}, err
	}
	next.Version = version

	s.logger.Info().Str("match_id", matchID).Int("throws", len(next.Throws)).Msg(what)
	s.publish(next, events)
	return next, nil
}

// load reads the match and replays its log into a fresh engine.
func (s *MatchService) load(ctx context.Context, matchID string) (domain.Match, *match.Engine, error) {
	m, err := s.repo.Get(ctx, matchID)
	if err != nil {
		return domain.Match{}, nil, err
	}
	e, err := match.New(m)
	if err != nil {
		return domain.Match{}, nil, fmt.Errorf("failed to replay match %s: %w", matchID, err)
	}
	return m, e, nil
}

func (s *MatchService) publish(m domain.Match, events []match.Event) {
	for _, msg := range reconcile.Deltas(m, events) {
		s.hub.Publish(msg)
	}
}
