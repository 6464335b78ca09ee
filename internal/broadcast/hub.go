package broadcast

import (
	"context"
	"errors"
	"fmt"

	"darts-tournament/internal/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrHubClosed = errors.New("broadcast hub closed")

type hubMsg interface{ isHubMsg() }

type subscribe struct {
	BoardID string
	ID      string
	Outbox  chan Message
}

type unsubscribe struct {
	BoardID string
	ID      string
}

type publish struct {
	Msg Message
}

type countSubscribers struct {
	BoardID string
	Reply   chan int
}

func (subscribe) isHubMsg()        {}
func (unsubscribe) isHubMsg()      {}
func (publish) isHubMsg()          {}
func (countSubscribers) isHubMsg() {}

// Hub fans messages out to the subscribers of each board. A single goroutine
// owns the subscriber table; everything else talks to it through the inbox.
type Hub struct {
	inbox  chan hubMsg
	boards map[string]map[string]chan Message
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		inbox:  make(chan hubMsg, constants.HubInboxSize),
		boards: make(map[string]map[string]chan Message),
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With().Str("component", "broadcast").Logger(),
	}
	go h.loop()
	return h
}

type Subscription struct {
	ID      string
	BoardID string
	C       <-chan Message
	hub     *Hub
}

// Close unsubscribes. Safe to call after the hub dropped the subscriber.
func (s *Subscription) Close() {
	s.hub.send(unsubscribe{BoardID: s.BoardID, ID: s.ID})
}

func (h *Hub) Subscribe(boardID string) (*Subscription, error) {
	if boardID == "" {
		return nil, fmt.Errorf("subscribe: board id required")
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscriber id: %w", err)
	}

	out := make(chan Message, constants.SubscriberBuffer)
	if !h.send(subscribe{BoardID: boardID, ID: id, Outbox: out}) {
		return nil, ErrHubClosed
	}
	return &Subscription{ID: id, BoardID: boardID, C: out, hub: h}, nil
}

func (h *Hub) Publish(msg Message) {
	if !h.send(publish{Msg: msg}) {
		h.logger.Warn().Str("board_id", msg.BoardID).Str("type", string(msg.Type)).Msg("publish after hub shutdown dropped")
	}
}

// Subscribers returns the number of live subscribers for boardID.
func (h *Hub) Subscribers(boardID string) int {
	reply := make(chan int, 1)
	if !h.send(countSubscribers{BoardID: boardID, Reply: reply}) {
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-h.ctx.Done():
		return 0
	}
}

// Shutdown closes every subscriber channel and stops the loop.
func (h *Hub) Shutdown() {
	h.cancel()
}

func (h *Hub) send(m hubMsg) bool {
	select {
	case <-h.ctx.Done():
		return false
	default:
	}
	select {
	case h.inbox <- m:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case subscribe:
				subs := h.boards[msg.BoardID]
				if subs == nil {
					subs = make(map[string]chan Message)
					h.boards[msg.BoardID] = subs
				}
				subs[msg.ID] = msg.Outbox
				h.logger.Debug().Str("board_id", msg.BoardID).Str("subscriber", msg.ID).Int("subscribers", len(subs)).Msg("subscriber joined")

			case unsubscribe:
				h.drop(msg.BoardID, msg.ID)

			case publish:
				h.broadcast(msg.Msg)

			case countSubscribers:
				msg.Reply <- len(h.boards[msg.BoardID])
			}
		}
	}
}

func (h *Hub) broadcast(msg Message) {
	for id, ch := range h.boards[msg.BoardID] {
		select {
		case ch <- msg:
		default:
			h.logger.Warn().Str("board_id", msg.BoardID).Str("subscriber", id).Msg("slow subscriber dropped")
			h.drop(msg.BoardID, id)
		}
	}
}

func (h *Hub) drop(boardID, id string) {
	subs := h.boards[boardID]
	ch, ok := subs[id]
	if !ok {
		return
	}
	close(ch)
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.boards, boardID)
	}
}

func (h *Hub) shutdown() {
	for boardID, subs := range h.boards {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(h.boards, boardID)
	}
	h.logger.Info().Msg("broadcast hub stopped")
}
