package server

import (
	"context"

	"darts-tournament/internal/reconcile"
	"darts-tournament/internal/service"
	dartsv1 "darts-tournament/pkg/dartsv1"
	"darts-tournament/pkg/dartsv1/dartsv1connect"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

var _ dartsv1connect.ShootoutServiceHandler = (*ShootoutServer)(nil)

type ShootoutServer struct {
	shootoutSvc *service.ShootoutService
}

func NewShootoutServer(shootoutSvc *service.ShootoutService) *ShootoutServer {
	return &ShootoutServer{shootoutSvc: shootoutSvc}
}

func (s *ShootoutServer) StartShootout(ctx context.Context, req *connect.Request[dartsv1.StartShootoutRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return slotResponse(s.shootoutSvc.Start(ctx, req.Msg.TournamentID, toShootoutPlayers(req.Msg.Players)))
}

func (s *ShootoutServer) SelectPlayer(ctx context.Context, req *connect.Request[dartsv1.SelectPlayerRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	view, err := s.shootoutSvc.SelectPlayer(ctx, req.Msg.TournamentID, req.Msg.PlayerID, req.Msg.BoardID)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).
			Str("tournament_id", req.Msg.TournamentID).
			Str("player_id", req.Msg.PlayerID).
			Msg("select player refused")
	}
	return slotResponse(view, err)
}

func (s *ShootoutServer) StartThrowing(ctx context.Context, req *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return slotResponse(s.shootoutSvc.StartThrowing(ctx, req.Msg.TournamentID))
}

func (s *ShootoutServer) RecordThrows(ctx context.Context, req *connect.Request[dartsv1.RecordThrowsRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return slotResponse(s.shootoutSvc.RecordThrows(ctx, req.Msg.TournamentID, toDomainDarts(req.Msg.Darts)))
}

func (s *ShootoutServer) ConfirmFinish(ctx context.Context, req *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return slotResponse(s.shootoutSvc.ConfirmFinish(ctx, req.Msg.TournamentID))
}

func (s *ShootoutServer) CancelSelection(ctx context.Context, req *connect.Request[dartsv1.SlotRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return slotResponse(s.shootoutSvc.CancelSelection(ctx, req.Msg.TournamentID))
}

func (s *ShootoutServer) ResetPlayer(ctx context.Context, req *connect.Request[dartsv1.ResetPlayerRequest]) (*connect.Response[dartsv1.SlotResponse], error) {
	return slotResponse(s.shootoutSvc.ResetPlayer(ctx, req.Msg.TournamentID, req.Msg.PlayerID))
}

func (s *ShootoutServer) Finalize(ctx context.Context, req *connect.Request[dartsv1.FinalizeRequest]) (*connect.Response[dartsv1.FinalizeResponse], error) {
	res, err := s.shootoutSvc.Finalize(ctx, req.Msg.TournamentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.FinalizeResponse{
		Seeding:  toProtoSeeding(res.Seeding),
		Exported: res.Exported,
	}), nil
}

func (s *ShootoutServer) GetStatus(ctx context.Context, req *connect.Request[dartsv1.GetStatusRequest]) (*connect.Response[dartsv1.GetStatusResponse], error) {
	res, err := s.shootoutSvc.Status(ctx, req.Msg.TournamentID, req.Msg.BelievedActivePlayerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.GetStatusResponse{
		Slot:    toProtoSlot(res.View),
		Changed: res.Changed,
		Entries: toProtoEntries(res.Entries),
	}), nil
}

func (s *ShootoutServer) GetSeeding(ctx context.Context, req *connect.Request[dartsv1.GetSeedingRequest]) (*connect.Response[dartsv1.GetSeedingResponse], error) {
	ranked, err := s.shootoutSvc.Seeding(ctx, req.Msg.TournamentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.GetSeedingResponse{Seeding: toProtoSeeding(ranked)}), nil
}

func slotResponse(v reconcile.ShootoutView, err error) (*connect.Response[dartsv1.SlotResponse], error) {
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.SlotResponse{Slot: toProtoSlot(v)}), nil
}
