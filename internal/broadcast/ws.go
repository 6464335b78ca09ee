package broadcast

import (
	"context"
	"net/http"

	"darts-tournament/internal/constants"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler streams every message published for the board in the URL
// ({boardID}) to one websocket client. Clients never send anything back;
// writes go through the API.
func Handler(h *Hub, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		boardID := chi.URLParam(r, "boardID")
		if boardID == "" {
			http.Error(w, "missing board id", http.StatusBadRequest)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
		if err != nil {
			logger.Warn().Err(err).Str("board_id", boardID).Msg("websocket accept failed")
			return
		}
		defer conn.CloseNow()

		sub, err := h.Subscribe(boardID)
		if err != nil {
			conn.Close(websocket.StatusTryAgainLater, "hub unavailable")
			return
		}
		defer sub.Close()

		ctx := conn.CloseRead(r.Context())
		logger.Info().Str("board_id", boardID).Str("subscriber", sub.ID).Msg("board subscriber connected")

		for {
			select {
			case <-ctx.Done():
				logger.Info().Str("board_id", boardID).Str("subscriber", sub.ID).Msg("board subscriber disconnected")
				return

			case msg, ok := <-sub.C:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "subscription closed")
					return
				}
				writeCtx, cancel := context.WithTimeout(ctx, constants.WebsocketWriteTimeout)
				err := wsjson.Write(writeCtx, conn, msg)
				cancel()
				if err != nil {
					logger.Warn().Err(err).Str("board_id", boardID).Msg("websocket write failed")
					return
				}
			}
		}
	}
}
