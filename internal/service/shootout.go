package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"darts-tournament/internal/api"
	"darts-tournament/internal/constants"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/reconcile"
	"darts-tournament/internal/repository"
	"darts-tournament/internal/shootout"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SeedingExporter receives the ranked list of a finalized shootout.
type SeedingExporter interface {
	Enabled() bool
	ExportSeeding(ctx context.Context, tournamentID string, ranked []domain.RankedPlayer) (*api.ExportAck, error)
}

type ShootoutService struct {
	repo     *repository.ShootoutRepository
	exporter SeedingExporter
	hub      Publisher
	locks    *keyedMutex
	logger   zerolog.Logger
}

func NewShootoutService(repo *repository.ShootoutRepository, exporter SeedingExporter, hub Publisher, logger zerolog.Logger) *ShootoutService {
	return &ShootoutService{
		repo:     repo,
		exporter: exporter,
		hub:      hub,
		locks:    newKeyedMutex(),
		logger:   logger.With().Str("service", "shootout").Logger(),
	}
}

// Start opens the shootout for a tournament with players in registration order.
func (s *ShootoutService) Start(ctx context.Context, tournamentID string, players []shootout.Player) (reconcile.ShootoutView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return reconcile.ShootoutView{}, fmt.Errorf("%w: tournament id required", domain.ErrRuleViolation)
	}
	o, err := shootout.New(tournamentID, players)
	if err != nil {
		return reconcile.ShootoutView{}, err
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	if err := s.repo.Create(ctx, o.Slot(), o.Entries()); err != nil {
		s.logger.Warn().Err(err).Str("tournament_id", tournamentID).Msg("failed to open shootout")
		return reconcile.ShootoutView{}, err
	}

	s.logger.Info().Str("tournament_id", tournamentID).Int("players", len(players)).Msg("shootout opened")
	return reconcile.ShootoutViewOf(o.Slot(), o.Poll("")), nil
}

// SelectPlayer puts a player into the slot. Any refusal against an occupied
// slot, including a second pick of the same player, is reported as
// ErrConcurrencyLoss, which also matches ErrStateOrdering.
func (s *ShootoutService) SelectPlayer(ctx context.Context, tournamentID, playerID, boardID string) (reconcile.ShootoutView, error) {
	return s.transition(ctx, tournamentID, "player selected", func(o *shootout.Orchestrator) error {
		before := o.Slot()
		_, err := o.SelectPlayer(playerID, strings.TrimSpace(boardID))
		if errors.Is(err, domain.ErrStateOrdering) && before.Status.Occupied() {
			return fmt.Errorf("%w: %w", domain.ErrConcurrencyLoss, err)
		}
		return err
	})
}

func (s *ShootoutService) StartThrowing(ctx context.Context, tournamentID string) (reconcile.ShootoutView, error) {
	return s.transition(ctx, tournamentID, "throwing started", func(o *shootout.Orchestrator) error {
		_, err := o.StartThrowing()
		return err
	})
}

func (s *ShootoutService) RecordThrows(ctx context.Context, tournamentID string, darts []domain.Dart) (reconcile.ShootoutView, error) {
	return s.transition(ctx, tournamentID, "throws recorded", func(o *shootout.Orchestrator) error {
		_, err := o.RecordThrows(darts)
		return err
	})
}

func (s *ShootoutService) ConfirmFinish(ctx context.Context, tournamentID string) (reconcile.ShootoutView, error) {
	return s.transition(ctx, tournamentID, "finish confirmed", func(o *shootout.Orchestrator) error {
		_, err := o.ConfirmFinish()
		return err
	})
}

func (s *ShootoutService) CancelSelection(ctx context.Context, tournamentID string) (reconcile.ShootoutView, error) {
	return s.transition(ctx, tournamentID, "selection cancelled", func(o *shootout.Orchestrator) error {
		_, err := o.CancelSelection()
		return err
	})
}

// ResetPlayer clears one player's result so they can throw again.
func (s *ShootoutService) ResetPlayer(ctx context.Context, tournamentID, playerID string) (reconcile.ShootoutView, error) {
	return s.transition(ctx, tournamentID, "player reset", func(o *shootout.Orchestrator) error {
		_, err := o.ResetPlayer(playerID)
		return err
	})
}

type FinalizeResult struct {
	Seeding  []domain.RankedPlayer
	Exported bool
}

// Finalize ranks the completed shootout, stores the seeding, releases the
// board and hands the seeding to the bracket webhook. A failed export is
// logged; the seeding stays stored either way.
func (s *ShootoutService) Finalize(ctx context.Context, tournamentID string) (FinalizeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	slot, entries, err := s.repo.Load(ctx, tournamentID)
	if err != nil {
		return FinalizeResult{}, err
	}
	o, err := shootout.Restore(slot, entries)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("failed to restore shootout %s: %w", tournamentID, err)
	}

	ranked, err := o.Finalize()
	if err != nil {
		return FinalizeResult{}, err
	}
	final := o.Slot()
	if err := s.repo.Finalize(ctx, final, ranked, slot.Version); err != nil {
		s.logger.Error().Err(err).Str("tournament_id", tournamentID).Msg("failed to persist seeding")
		return FinalizeResult{}, err
	}
	final.Version = slot.Version + 1

	s.logger.Info().Str("tournament_id", tournamentID).Int("players", len(ranked)).Msg("shootout finalized")

	result := FinalizeResult{Seeding: ranked}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view := reconcile.ShootoutViewOf(final, o.Poll(""))
		s.hub.Publish(reconcile.PackageShootout(slot.LockedBoardID, view, true))
		return nil
	})
	if s.exporter != nil && s.exporter.Enabled() {
		g.Go(func() error {
			exportCtx, exportCancel := context.WithTimeout(gctx, constants.ExternalAPITimeout)
			defer exportCancel()

			ack, err := s.exporter.ExportSeeding(exportCtx, tournamentID, ranked)
			if err != nil {
				s.logger.Error().Err(err).Str("tournament_id", tournamentID).Msg("failed to export seeding")
				return nil
			}
			result.Exported = ack.Accepted
			s.logger.Info().Str("tournament_id", tournamentID).Bool("accepted", ack.Accepted).Str("bracket_id", ack.BracketID).Msg("seeding exported")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FinalizeResult{}, err
	}

	return result, nil
}

type StatusResult struct {
	View    reconcile.ShootoutView
	Changed bool
	Entries []domain.ShootoutEntry
}

// Status answers the poll endpoint: the slot state, and whether the active
// player differs from the one the caller believes is active.
func (s *ShootoutService) Status(ctx context.Context, tournamentID, believedActive string) (StatusResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	slot, entries, err := s.repo.Load(ctx, tournamentID)
	if err != nil {
		return StatusResult{}, err
	}
	o, err := shootout.Restore(slot, entries)
	if err != nil {
		return StatusResult{}, fmt.Errorf("failed to restore shootout %s: %w", tournamentID, err)
	}

	poll := o.Poll(believedActive)
	return StatusResult{
		View:    reconcile.ShootoutViewOf(o.Slot(), poll),
		Changed: poll.Changed,
		Entries: o.Entries(),
	}, nil
}

func (s *ShootoutService) Seeding(ctx context.Context, tournamentID string) ([]domain.RankedPlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Seeding(ctx, tournamentID)
}

// transition loads the slot, applies one orchestrator action, saves it
// under the version it was loaded at and pushes the new state to the
// locked board.
func (s *ShootoutService) transition(ctx context.Context, tournamentID, what string, apply func(*shootout.Orchestrator) error) (reconcile.ShootoutView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	slot, entries, err := s.repo.Load(ctx, tournamentID)
	if err != nil {
		return reconcile.ShootoutView{}, err
	}
	o, err := shootout.Restore(slot, entries)
	if err != nil {
		return reconcile.ShootoutView{}, fmt.Errorf("failed to restore shootout %s: %w", tournamentID, err)
	}

	if err := apply(o); err != nil {
		s.logger.Debug().Err(err).Str("tournament_id", tournamentID).Str("status", string(slot.Status)).Msg("transition rejected")
		return reconcile.ShootoutView{}, err
	}

	next := o.Slot()
	version, err := s.repo.Save(ctx, next, o.Entries(), slot.Version)
	if err != nil {
		s.logger.Error().Err(err).Str("tournament_id", tournamentID).Msg("failed to persist shootout")
		return reconcile.ShootoutView{}, err
	}
	next.Version = version

	view := reconcile.ShootoutViewOf(next, o.Poll(""))
	s.logger.Info().
		Str("tournament_id", tournamentID).
		Str("status", string(next.Status)).
		Str("active_player", next.ActivePlayerID).
		Str("board_id", next.LockedBoardID).
		Int64("version", version).
		Msg(what)

	if next.LockedBoardID != "" {
		s.hub.Publish(reconcile.PackageShootout(next.LockedBoardID, view, false))
	}
	return view, nil
}
