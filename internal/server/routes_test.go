package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"darts-tournament/internal/api"
	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/config"
	"darts-tournament/internal/database"
	"darts-tournament/internal/db"
	"darts-tournament/internal/domain"
	"darts-tournament/internal/repository"
	"darts-tournament/internal/service"
	dartsv1 "darts-tournament/pkg/dartsv1"
	"darts-tournament/pkg/dartsv1/dartsv1connect"

	"connectrpc.com/connect"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	logger := zerolog.Nop()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "darts.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{DefaultRules: domain.MatchRules{StartingScore: 301, LegsToWin: 1, CheckoutMode: domain.SingleOut}}
	q := db.New(sqlDB)
	hub := broadcast.NewHub(logger)
	t.Cleanup(hub.Shutdown)

	matchSvc := service.NewMatchService(repository.NewMatchRepository(sqlDB, q, logger), hub, cfg, logger)
	shootoutSvc := service.NewShootoutService(repository.NewShootoutRepository(sqlDB, q, logger), api.NewBracketClient(cfg), hub, logger)

	srv := httptest.NewServer(SetupRoutes(NewMatchServer(matchSvc), NewShootoutServer(shootoutSvc), hub, []string{"*"}, logger))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+srv.URL[len("http"):]+"/ws/boards/board-7", nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	require.Eventually(t, func() bool { return hub.Subscribers("board-7") == 1 }, 2*time.Second, 10*time.Millisecond)

	client := dartsv1connect.NewMatchServiceClient(srv.Client(), srv.URL)
	assigned, err := client.AssignMatch(ctx, connect.NewRequest(&dartsv1.AssignMatchRequest{
		BoardID: "board-7", Player1: "Anna", Player2: "Ben",
	}))
	require.NoError(t, err)
	assert.Equal(t, "single_out", assigned.Msg.Match.Rules.CheckoutMode)

	var msg broadcast.Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, broadcast.TypeGameAssigned, msg.Type)
	require.NotNil(t, msg.GameData)
	assert.Equal(t, assigned.Msg.Match.ID, msg.GameData.MatchID)
	assert.Equal(t, 301, msg.GameData.P1Score)
}
