package main

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"darts-tournament/internal/api"
	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/config"
	"darts-tournament/internal/constants"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/reconcile"
	dartsv1 "darts-tournament/pkg/dartsv1"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// scoreboard mirrors one board: pushes from the websocket feed are applied
// as they arrive and a periodic poll repairs anything a push got wrong.
type scoreboard struct {
	cfg    *config.ScoreboardConfig
	board  *api.BoardClient
	client *reconcile.Client
	logger zerolog.Logger
}

func newScoreboard(cfg *config.ScoreboardConfig, logger zerolog.Logger) *scoreboard {
	logger = logger.With().Str("board_id", cfg.BoardID).Logger()
	return &scoreboard{
		cfg:    cfg,
		board:  api.NewBoardClient(cfg.ServerURL),
		client: reconcile.NewClient(cfg.BoardID, logger),
		logger: logger,
	}
}

func (s *scoreboard) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.stream(ctx) })
	g.Go(func() error { return s.poll(ctx) })
	return g.Wait()
}

func (s *scoreboard) feedURL() string {
	base := s.cfg.ServerURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws/boards/" + url.PathEscape(s.cfg.BoardID)
}

func (s *scoreboard) stream(ctx context.Context) error {
	for {
		err := s.streamOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Dur("retry_in", constants.ScoreboardRedialDelay).Msg("board feed lost")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.ScoreboardRedialDelay):
		}
	}
}

func (s *scoreboard) streamOnce(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, s.feedURL(), nil)
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	s.logger.Info().Msg("board feed connected")
	// Pushes sent while disconnected are gone; resync before trusting the feed.
	s.refresh(ctx, true)

	for {
		var msg broadcast.Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		switch d := s.client.OnPush(msg); {
		case d == reconcile.DecisionRefetch:
			s.refresh(ctx, true)
		case d.Overwrites():
			s.render(d)
		}
	}
}

func (s *scoreboard) poll(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx, false)
		}
	}
}

// refresh fetches the board's match and, when a shootout is on this board,
// its slot state.
func (s *scoreboard) refresh(ctx context.Context, force bool) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	m, err := s.board.GetBoardMatch(ctx, s.cfg.BoardID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Debug().Msg("no match assigned yet")
	case err != nil:
		s.logger.Warn().Err(err).Msg("board poll failed")
	default:
		apply := s.client.OnPoll
		if force {
			apply = s.client.ForceSync
		}
		d := apply(matchView(m))
		if d.Overwrites() {
			s.render(d)
		}
	}

	local := s.client.Shootout()
	if local.TournamentID == "" {
		return
	}
	status, err := s.board.GetShootoutStatus(ctx, local.TournamentID, local.ActivePlayerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn().Err(err).Str("tournament_id", local.TournamentID).Msg("shootout poll failed")
		}
		return
	}
	if d := s.client.OnShootoutPoll(shootoutView(status.Slot)); d.Overwrites() || status.Changed {
		s.render(d)
	}
}

func (s *scoreboard) render(d reconcile.Decision) {
	m := s.client.Match()
	s.logger.Info().
		Str("decision", string(d)).
		Str("match_id", m.MatchID).
		Str("p1", m.Names[0]).
		Int("p1_score", m.Scores[0]).
		Int("p1_legs", m.Legs[0]).
		Str("p2", m.Names[1]).
		Int("p2_score", m.Scores[1]).
		Int("p2_legs", m.Legs[1]).
		Int("to_throw", m.CurrentPlayer).
		Str("status", string(m.Status)).
		Msg("scoreboard")

	if so := s.client.Shootout(); so.TournamentID != "" {
		s.logger.Info().
			Str("tournament_id", so.TournamentID).
			Str("slot", string(so.Status)).
			Str("active_player", so.ActivePlayerName).
			Int("scored", so.Scored).
			Int("total", so.Total).
			Msg("shootout")
	}
}

func matchView(m *dartsv1.Match) reconcile.MatchView {
	v := reconcile.MatchView{
		MatchID:       m.ID,
		BoardID:       m.BoardID,
		CurrentPlayer: m.CurrentPlayer,
		CurrentLeg:    m.CurrentLeg,
		ThrowCount:    len(m.Throws),
		StartingScore: m.Rules.StartingScore,
		Status:        domain.MatchStatus(m.Status),
		Winner:        m.Winner,
	}
	for i := 0; i < len(m.Players) && i < 2; i++ {
		v.Names[i] = m.Players[i].Name
		v.Scores[i] = m.Players[i].Score
		v.Legs[i] = m.Players[i].Legs
	}
	return v
}

func shootoutView(s dartsv1.Slot) reconcile.ShootoutView {
	return reconcile.ShootoutView{
		TournamentID:     s.TournamentID,
		Status:           domain.SlotStatus(s.Status),
		ActivePlayerID:   s.ActivePlayerID,
		ActivePlayerName: s.ActivePlayerName,
		LockedBoardID:    s.LockedBoardID,
		Scored:           s.Scored,
		Total:            s.Total,
		Version:          s.Version,
	}
}
