package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"darts-tournament/internal/domain"
	dartsv1 "darts-tournament/pkg/dartsv1"
	"darts-tournament/pkg/dartsv1/dartsv1connect"

	"github.com/valyala/fasthttp"
)

// BoardClient polls the server for the state of one board. It speaks the
// connect unary JSON protocol directly so displays need no connect runtime.
type BoardClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewBoardClient(baseURL string) *BoardClient {
	return &BoardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newFastHTTPClient(),
	}
}

var connectHeaders = map[string]string{"Connect-Protocol-Version": "1"}

// GetBoardMatch returns the latest match on boardID, or domain.ErrNotFound
// when nothing was ever assigned to it.
func (c *BoardClient) GetBoardMatch(ctx context.Context, boardID string) (*dartsv1.Match, error) {
	resp, err := doRequest[dartsv1.MatchResponse](ctx, c.client,
		c.baseURL+dartsv1connect.MatchServiceGetBoardMatchProcedure,
		connectHeaders,
		dartsv1.GetBoardMatchRequest{BoardID: boardID})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Match, nil
}

// GetShootoutStatus is the poll endpoint for clients that cannot rely on
// pushes: it reports the slot status and whether the active player differs
// from believedActive.
func (c *BoardClient) GetShootoutStatus(ctx context.Context, tournamentID, believedActive string) (*dartsv1.GetStatusResponse, error) {
	resp, err := doRequest[dartsv1.GetStatusResponse](ctx, c.client,
		c.baseURL+dartsv1connect.ShootoutServiceGetStatusProcedure,
		connectHeaders,
		dartsv1.GetStatusRequest{TournamentID: tournamentID, BelievedActivePlayerID: believedActive})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp, nil
}

func (c *BoardClient) mapError(err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == fasthttp.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, statusErr.Body)
	}
	return err
}
