package broadcast

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"darts-tournament/internal/constants"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, sub *Subscription) Message {
	t.Helper()
	select {
	case msg, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestHubFansOutPerBoard(t *testing.T) {
	h := NewHub(zerolog.Nop())
	defer h.Shutdown()

	a1, err := h.Subscribe("board-a")
	require.NoError(t, err)
	a2, err := h.Subscribe("board-a")
	require.NoError(t, err)
	b, err := h.Subscribe("board-b")
	require.NoError(t, err)

	h.Publish(Message{Type: TypeThrowUpdate, BoardID: "board-a", GameData: &GameData{P1Score: 441}})

	assert.Equal(t, 441, recv(t, a1).GameData.P1Score)
	assert.Equal(t, 441, recv(t, a2).GameData.P1Score)

	select {
	case msg := <-b.C:
		t.Fatalf("board-b received %+v", msg)
	default:
	}
	assert.Equal(t, 2, h.Subscribers("board-a"))
	assert.Equal(t, 1, h.Subscribers("board-b"))
}

func TestHubCloseUnsubscribes(t *testing.T) {
	h := NewHub(zerolog.Nop())
	defer h.Shutdown()

	sub, err := h.Subscribe("board-a")
	require.NoError(t, err)
	sub.Close()
	sub.Close()

	require.Eventually(t, func() bool { return h.Subscribers("board-a") == 0 }, time.Second, 10*time.Millisecond)
	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	h := NewHub(zerolog.Nop())
	defer h.Shutdown()

	slow, err := h.Subscribe("board-a")
	require.NoError(t, err)

	for i := 0; i <= constants.SubscriberBuffer; i++ {
		h.Publish(Message{Type: TypeThrowUpdate, BoardID: "board-a"})
	}
	require.Eventually(t, func() bool { return h.Subscribers("board-a") == 0 }, time.Second, 10*time.Millisecond)

	n := 0
	for range slow.C {
		n++
	}
	assert.Equal(t, constants.SubscriberBuffer, n, "buffered messages are still delivered before close")
}

func TestHubShutdown(t *testing.T) {
	h := NewHub(zerolog.Nop())
	sub, err := h.Subscribe("board-a")
	require.NoError(t, err)
	require.Equal(t, 1, h.Subscribers("board-a"))

	h.Shutdown()

	select {
	case _, ok := <-sub.C:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed on shutdown")
	}

	_, err = h.Subscribe("board-a")
	assert.ErrorIs(t, err, ErrHubClosed)
	h.Publish(Message{BoardID: "board-a"})
}

func TestWebsocketHandlerStreamsBoardMessages(t *testing.T) {
	h := NewHub(zerolog.Nop())
	defer h.Shutdown()

	r := chi.NewRouter()
	r.Get("/ws/boards/{boardID}", Handler(h, nil))
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/boards/board-7"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.Eventually(t, func() bool { return h.Subscribers("board-7") == 1 }, time.Second, 10*time.Millisecond)

	h.Publish(Message{
		Type:     TypeThrowUpdate,
		BoardID:  "board-7",
		GameData: &GameData{P1Score: 441, P2Score: 501, CurrentPlayer: 2, CurrentLeg: 1, ThrowCount: 1},
		Throw:    &ThrowDelta{Player: 1, Total: 60, NewScore: 441},
	})

	var got Message
	require.NoError(t, wsjson.Read(ctx, conn, &got))
	assert.Equal(t, TypeThrowUpdate, got.Type)
	assert.Equal(t, "board-7", got.BoardID)
	require.NotNil(t, got.Throw)
	assert.Equal(t, 441, got.Throw.NewScore)
	assert.Equal(t, 2, got.GameData.CurrentPlayer)

	conn.Close(websocket.StatusNormalClosure, "bye")
	require.Eventually(t, func() bool { return h.Subscribers("board-7") == 0 }, 2*time.Second, 10*time.Millisecond)
}
