// Package dartsv1connect wires the darts.v1 services onto connect handlers
// and clients using the JSON codec from dartsv1.
package dartsv1connect

import (
	"context"
	"net/http"
	"strings"

	dartsv1 "darts-tournament/pkg/dartsv1"

	"connectrpc.com/connect"
)

const (
	MatchServiceName    = "darts.v1.MatchService"
	ShootoutServiceName = "darts.v1.ShootoutService"
)

const (
	MatchServiceAssignMatchProcedure   = "/darts.v1.MatchService/AssignMatch"
	MatchServiceSubmitThrowProcedure   = "/darts.v1.MatchService/SubmitThrow"
	MatchServiceUndoThrowProcedure     = "/darts.v1.MatchService/UndoThrow"
	MatchServiceEditThrowProcedure     = "/darts.v1.MatchService/EditThrow"
	MatchServiceResetMatchProcedure    = "/darts.v1.MatchService/ResetMatch"
	MatchServiceGetMatchProcedure      = "/darts.v1.MatchService/GetMatch"
	MatchServiceGetBoardMatchProcedure = "/darts.v1.MatchService/GetBoardMatch"

	ShootoutServiceStartShootoutProcedure   = "/darts.v1.ShootoutService/StartShootout"
	ShootoutServiceSelectPlayerProcedure    = "/darts.v1.ShootoutService/SelectPlayer"
	ShootoutServiceStartThrowingProcedure   = "/darts.v1.ShootoutService/StartThrowing"
	ShootoutServiceRecordThrowsProcedure    = "/darts.v1.ShootoutService/RecordThrows"
	ShootoutServiceConfirmFinishProcedure   = "/darts.v1.ShootoutService/ConfirmFinish"
	ShootoutServiceCancelSelectionProcedure = "/darts.v1.ShootoutService/CancelSelection"
	ShootoutServiceResetPlayerProcedure     = "/darts.v1.ShootoutService/ResetPlayer"
	ShootoutServiceFinalizeProcedure        = "/darts.v1.ShootoutService/Finalize"
	ShootoutServiceGetStatusProcedure       = "/darts.v1.ShootoutService/GetStatus"
	ShootoutServiceGetSeedingProcedure      = "/darts.v1.ShootoutService/GetSeeding"
)

type MatchServiceHandler interface {
	AssignMatch(context.Context, *connect.Request[dartsv1.AssignMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error)
	SubmitThrow(context.Context, *connect.Request[dartsv1.SubmitThrowRequest]) (*connect.Response[dartsv1.SubmitThrowResponse], error)
	UndoThrow(context.Context, *connect.Request[dartsv1.UndoThrowRequest]) (*connect.Response[dartsv1.MatchResponse], error)
	EditThrow(context.Context, *connect.Request[dartsv1.EditThrowRequest]) (*connect.Response[dartsv1.MatchResponse], error)
	ResetMatch(context.Context, *connect.Request[dartsv1.ResetMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error)
	GetMatch(context.Context, *connect.Request[dartsv1.GetMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error)
	GetBoardMatch(context.Context, *connect.Request[dartsv1.GetBoardMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error)
}

type ShootoutServiceHandler interface {
	StartShootout(context.Context, *connect.Request[dartsv1.StartShootoutRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	SelectPlayer(context.Context, *connect.Request[dartsv1.SelectPlayerRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	StartThrowing(context.Context, *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	RecordThrows(context.Context, *connect.Request[dartsv1.RecordThrowsRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	ConfirmFinish(context.Context, *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	CancelSelection(context.Context, *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	ResetPlayer(context.Context, *connect.Request[dartsv1.ResetPlayerRequest]) (*connect.Response[dartsv1.SlotResponse], error)
	Finalize(context.Context, *connect.Request[dartsv1.FinalizeRequest]) (*connect.Response[dartsv1.FinalizeResponse], error)
	GetStatus(context.Context, *connect.Request[dartsv1.GetStatusRequest]) (*connect.Response[dartsv1.GetStatusResponse], error)
	GetSeeding(context.Context, *connect.Request[dartsv1.GetSeedingRequest]) (*connect.Response[dartsv1.GetSeedingResponse], error)
}

// routes builds a path switch for one service the way generated connect
// handlers do.
func routes(prefix string, handlers map[string]http.Handler) (string, http.Handler) {
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok && strings.HasPrefix(r.URL.Path, prefix) {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func NewMatchServiceHandler(svc MatchServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(dartsv1.Codec{})}, opts...)
	return routes("/"+MatchServiceName+"/", map[string]http.Handler{
		MatchServiceAssignMatchProcedure:   connect.NewUnaryHandler(MatchServiceAssignMatchProcedure, svc.AssignMatch, opts...),
		MatchServiceSubmitThrowProcedure:   connect.NewUnaryHandler(MatchServiceSubmitThrowProcedure, svc.SubmitThrow, opts...),
		MatchServiceUndoThrowProcedure:     connect.NewUnaryHandler(MatchServiceUndoThrowProcedure, svc.UndoThrow, opts...),
		MatchServiceEditThrowProcedure:     connect.NewUnaryHandler(MatchServiceEditThrowProcedure, svc.EditThrow, opts...),
		MatchServiceResetMatchProcedure:    connect.NewUnaryHandler(MatchServiceResetMatchProcedure, svc.ResetMatch, opts...),
		MatchServiceGetMatchProcedure:      connect.NewUnaryHandler(MatchServiceGetMatchProcedure, svc.GetMatch, opts...),
		MatchServiceGetBoardMatchProcedure: connect.NewUnaryHandler(MatchServiceGetBoardMatchProcedure, svc.GetBoardMatch, opts...),
	})
}

func NewShootoutServiceHandler(svc ShootoutServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(dartsv1.Codec{})}, opts...)
	return routes("/"+ShootoutServiceName+"/", map[string]http.Handler{
		ShootoutServiceStartShootoutProcedure:   connect.NewUnaryHandler(ShootoutServiceStartShootoutProcedure, svc.StartShootout, opts...),
		ShootoutServiceSelectPlayerProcedure:    connect.NewUnaryHandler(ShootoutServiceSelectPlayerProcedure, svc.SelectPlayer, opts...),
		ShootoutServiceStartThrowingProcedure:   connect.NewUnaryHandler(ShootoutServiceStartThrowingProcedure, svc.StartThrowing, opts...),
		ShootoutServiceRecordThrowsProcedure:    connect.NewUnaryHandler(ShootoutServiceRecordThrowsProcedure, svc.RecordThrows, opts...),
		ShootoutServiceConfirmFinishProcedure:   connect.NewUnaryHandler(ShootoutServiceConfirmFinishProcedure, svc.ConfirmFinish, opts...),
		ShootoutServiceCancelSelectionProcedure: connect.NewUnaryHandler(ShootoutServiceCancelSelectionProcedure, svc.CancelSelection, opts...),
		ShootoutServiceResetPlayerProcedure:     connect.NewUnaryHandler(ShootoutServiceResetPlayerProcedure, svc.ResetPlayer, opts...),
		ShootoutServiceFinalizeProcedure:        connect.NewUnaryHandler(ShootoutServiceFinalizeProcedure, svc.Finalize, opts...),
		ShootoutServiceGetStatusProcedure:       connect.NewUnaryHandler(ShootoutServiceGetStatusProcedure, svc.GetStatus, opts...),
		ShootoutServiceGetSeedingProcedure:      connect.NewUnaryHandler(ShootoutServiceGetSeedingProcedure, svc.GetSeeding, opts...),
	})
}

// MatchServiceClient is the typed client for MatchService.
type MatchServiceClient struct {
	assignMatch   *connect.Client[dartsv1.AssignMatchRequest, dartsv1.MatchResponse]
	submitThrow   *connect.Client[dartsv1.SubmitThrowRequest, dartsv1.SubmitThrowResponse]
	undoThrow     *connect.Client[dartsv1.UndoThrowRequest, dartsv1.MatchResponse]
	editThrow     *connect.Client[dartsv1.EditThrowRequest, dartsv1.MatchResponse]
	resetMatch    *connect.Client[dartsv1.ResetMatchRequest, dartsv1.MatchResponse]
	getMatch      *connect.Client[dartsv1.GetMatchRequest, dartsv1.MatchResponse]
	getBoardMatch *connect.Client[dartsv1.GetBoardMatchRequest, dartsv1.MatchResponse]
}

func NewMatchServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *MatchServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(dartsv1.Codec{})}, opts...)
	return &MatchServiceClient{
		assignMatch:   connect.NewClient[dartsv1.AssignMatchRequest, dartsv1.MatchResponse](httpClient, baseURL+MatchServiceAssignMatchProcedure, opts...),
		submitThrow:   connect.NewClient[dartsv1.SubmitThrowRequest, dartsv1.SubmitThrowResponse](httpClient, baseURL+MatchServiceSubmitThrowProcedure, opts...),
		undoThrow:     connect.NewClient[dartsv1.UndoThrowRequest, dartsv1.MatchResponse](httpClient, baseURL+MatchServiceUndoThrowProcedure, opts...),
		editThrow:     connect.NewClient[dartsv1.EditThrowRequest, dartsv1.MatchResponse](httpClient, baseURL+MatchServiceEditThrowProcedure, opts...),
		resetMatch:    connect.NewClient[dartsv1.ResetMatchRequest, dartsv1.MatchResponse](httpClient, baseURL+MatchServiceResetMatchProcedure, opts...),
		getMatch:      connect.NewClient[dartsv1.GetMatchRequest, dartsv1.MatchResponse](httpClient, baseURL+MatchServiceGetMatchProcedure, opts...),
		getBoardMatch: connect.NewClient[dartsv1.GetBoardMatchRequest, dartsv1.MatchResponse](httpClient, baseURL+MatchServiceGetBoardMatchProcedure, opts...),
	}
}

func (c *MatchServiceClient) AssignMatch(ctx context.Context, req *connect.Request[dartsv1.AssignMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return c.assignMatch.CallUnary(ctx, req)
}

func (c *MatchServiceClient) SubmitThrow(ctx context.Context, req *connect.Request[dartsv1.SubmitThrowRequest]) (*connect.Response[dartsv1.SubmitThrowResponse], error) {
	return c.submitThrow.CallUnary(ctx, req)
}

func (c *MatchServiceClient) UndoThrow(ctx context.Context, req *connect.Request[dartsv1.UndoThrowRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return c.undoThrow.CallUnary(ctx, req)
}

func (c *MatchServiceClient) EditThrow(ctx context.Context, req *connect.Request[dartsv1.EditThrowRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return c.editThrow.CallUnary(ctx, req)
}

func (c *MatchServiceClient) ResetMatch(ctx context.Context, req *connect.Request[dartsv1.ResetMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return c.resetMatch.CallUnary(ctx, req)
}

func (c *MatchServiceClient) GetMatch(ctx context.Context, req *connect.Request[dartsv1.GetMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return c.getMatch.CallUnary(ctx, req)
}

func (c *MatchServiceClient) GetBoardMatch(ctx context.Context, req *connect.Request[dartsv1.GetBoardMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return c.getBoardMatch.CallUnary(ctx, req)
}

// ShootoutServiceClient is the typed client for ShootoutService.
type ShootoutServiceClient struct {
	startShootout   *connect.Client[dartsv1.StartShootoutRequest, dartsv1.SlotResponse]
	selectPlayer    *connect.Client[dartsv1.SelectPlayerRequest, dartsv1.SlotResponse]
	startThrowing   *connect.Client[dartsv1.SlotRequest, dartsv1.SlotResponse]
	recordThrows    *connect.Client[dartsv1.RecordThrowsRequest, dartsv1.SlotResponse]
	confirmFinish   *connect.Client[dartsv1.SlotRequest, dartsv1.SlotResponse]
	cancelSelection *connect.Client[dartsv1.SlotRequest, dartsv1.SlotResponse]
	resetPlayer     *connect.Client[dartsv1.ResetPlayerRequest, dartsv1.SlotResponse]
	finalize        *connect.Client[dartsv1.FinalizeRequest, dartsv1.FinalizeResponse]
	getStatus       *connect.Client[dartsv1.GetStatusRequest, dartsv1.GetStatusResponse]
	getSeeding      *connect.Client[dartsv1.GetSeedingRequest, dartsv1.GetSeedingResponse]
}

func NewShootoutServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ShootoutServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(dartsv1.Codec{})}, opts...)
	return &ShootoutServiceClient{
		startShootout:   connect.NewClient[dartsv1.StartShootoutRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceStartShootoutProcedure, opts...),
		selectPlayer:    connect.NewClient[dartsv1.SelectPlayerRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceSelectPlayerProcedure, opts...),
		startThrowing:   connect.NewClient[dartsv1.SlotRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceStartThrowingProcedure, opts...),
		recordThrows:    connect.NewClient[dartsv1.RecordThrowsRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceRecordThrowsProcedure, opts...),
		confirmFinish:   connect.NewClient[dartsv1.SlotRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceConfirmFinishProcedure, opts...),
		cancelSelection: connect.NewClient[dartsv1.SlotRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceCancelSelectionProcedure, opts...),
		resetPlayer:     connect.NewClient[dartsv1.ResetPlayerRequest, dartsv1.SlotResponse](httpClient, baseURL+ShootoutServiceResetPlayerProcedure, opts...),
		finalize:        connect.NewClient[dartsv1.FinalizeRequest, dartsv1.FinalizeResponse](httpClient, baseURL+ShootoutServiceFinalizeProcedure, opts...),
		getStatus:       connect.NewClient[dartsv1.GetStatusRequest, dartsv1.GetStatusResponse](httpClient, baseURL+ShootoutServiceGetStatusProcedure, opts...),
		getSeeding:      connect.NewClient[dartsv1.GetSeedingRequest, dartsv1.GetSeedingResponse](httpClient, baseURL+ShootoutServiceGetSeedingProcedure, opts...),
	}
}

func (c *ShootoutServiceClient) StartShootout(ctx context.Context, req *connect.Request[dartsv1.StartShootoutRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.startShootout.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) SelectPlayer(ctx context.Context, req *connect.Request[dartsv1.SelectPlayerRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.selectPlayer.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) StartThrowing(ctx context.Context, req *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.startThrowing.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) RecordThrows(ctx context.Context, req *connect.Request[dartsv1.RecordThrowsRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.recordThrows.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) ConfirmFinish(ctx context.Context, req *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.confirmFinish.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) CancelSelection(ctx context.Context, req *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.cancelSelection.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) ResetPlayer(ctx context.Context, req *connect.Request[dartsv1.ResetPlayerRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return c.resetPlayer.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) Finalize(ctx context.Context, req *connect.Request[dartsv1.FinalizeRequest]) (*connect.Response[dartsv1.FinalizeResponse], error) {
	return c.finalize.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) GetStatus(ctx context.Context, req *connect.Request[dartsv1.GetStatusRequest]) (*connect.Response[dartsv1.GetStatusResponse], error) {
	return c.getStatus.CallUnary(ctx, req)
}

func (c *ShootoutServiceClient) GetSeeding(ctx context.Context, req *connect.Request[dartsv1.GetSeedingRequest]) (*connect.Response[dartsv1.GetSeedingResponse], error) {
	return c.getSeeding.CallUnary(ctx, req)
}
