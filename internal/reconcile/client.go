package reconcile

import (
	"sync"

	"darts-tournament/internal/broadcast"

	"github.com/rs/zerolog"
)

// Client holds one board's local snapshot and applies pushes, polls and
// optimistic local updates to it under the reconcile rules.
type Client struct {
	mu       sync.Mutex
	boardID  string
	match    MatchView
	shootout ShootoutView
	logger   zerolog.Logger
}

func NewClient(boardID string, logger zerolog.Logger) *Client {
	return &Client{
		boardID: boardID,
		logger:  logger.With().Str("component", "reconcile").Str("board_id", boardID).Logger(),
	}
}

func (c *Client) Match() MatchView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.match
}

func (c *Client) Shootout() ShootoutView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shootout
}

// ApplyLocal installs an optimistic update ahead of the server round trip.
// The returned rollback restores the previous view if the write failed and
// nothing newer has landed since.
func (c *Client) ApplyLocal(next MatchView) (rollback func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.match
	c.match = next
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.match == next {
			c.match = prev
			c.logger.Debug().Int("throw_count", prev.ThrowCount).Msg("optimistic update rolled back")
		}
	}
}

// OnPush handles one broadcast message. Messages for other boards are ignored
// and reported as suppressed.
//
// A forced match message is never applied from its payload, since a
// redelivered undo would roll back newer throws. It yields DecisionRefetch
// and the caller resyncs through ForceSync. Shootout messages are ordered
// by slot version alone.
func (c *Client) OnPush(msg broadcast.Message) Decision {
	if msg.BoardID != c.boardID {
		return DecisionSuppressed
	}

	switch msg.Type {
	case broadcast.TypeShootoutUpdate:
		if msg.Shootout == nil {
			return DecisionSuppressed
		}
		return c.reconcileShootout(ShootoutViewFromData(*msg.Shootout), Options{})
	default:
		if msg.GameData == nil {
			return DecisionSuppressed
		}
		if msg.ForceSync {
			c.logger.Debug().
				Str("type", string(msg.Type)).
				Int("remote_throws", msg.GameData.ThrowCount).
				Msg("forced push, refetch required")
			return DecisionRefetch
		}
		return c.reconcileMatch(ViewFromGameData(c.boardID, *msg.GameData), Options{})
	}
}

func (c *Client) OnPoll(remote MatchView) Decision {
	return c.reconcileMatch(remote, Options{})
}

// ForceSync installs an authoritative refetch, for reconnects and undo.
func (c *Client) ForceSync(remote MatchView) Decision {
	return c.reconcileMatch(remote, Options{Force: true})
}

func (c *Client) OnShootoutPoll(remote ShootoutView) Decision {
	return c.reconcileShootout(remote, Options{})
}

func (c *Client) reconcileMatch(remote MatchView, opts Options) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, decision := Match(c.match, remote, opts)
	if decision == DecisionSuppressed {
		c.logger.Debug().
			Int("local_throws", c.match.ThrowCount).
			Int("remote_throws", remote.ThrowCount).
			Msg("sync suppressed, local ahead")
		return decision
	}
	c.match = next
	return decision
}

func (c *Client) reconcileShootout(remote ShootoutView, opts Options) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, decision := Shootout(c.shootout, remote, opts)
	if decision == DecisionSuppressed {
		c.logger.Debug().
			Int64("local_version", c.shootout.Version).
			Int64("remote_version", remote.Version).
			Msg("shootout sync suppressed, local ahead")
		return decision
	}
	c.shootout = next
	return decision
}
