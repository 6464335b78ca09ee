package server

import (
	"context"

	"darts-tournament/internal/domain"
	"darts-tournament/internal/service"
	dartsv1 "darts-tournament/pkg/dartsv1"
	"darts-tournament/pkg/dartsv1/dartsv1connect"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

var _ dartsv1connect.MatchServiceHandler = (*MatchServer)(nil)

type MatchServer struct {
	matchSvc *service.MatchService
}

func NewMatchServer(matchSvc *service.MatchService) *MatchServer {
	return &MatchServer{matchSvc: matchSvc}
}

func (s *MatchServer) AssignMatch(ctx context.Context, req *connect.Request[dartsv1.AssignMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	var override *service.RulesOverride
	if r := req.Msg.Rules; r != nil {
		override = &service.RulesOverride{
			StartingScore: r.StartingScore,
			LegsToWin:     r.LegsToWin,
			CheckoutMode:  domain.CheckoutMode(r.CheckoutMode),
		}
	}

	m, err := s.matchSvc.AssignMatch(ctx, req.Msg.BoardID, req.Msg.Player1, req.Msg.Player2, override)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.MatchResponse{Match: toProtoMatch(m)}), nil
}

func (s *MatchServer) SubmitThrow(ctx context.Context, req *connect.Request[dartsv1.SubmitThrowRequest]) (*connect.Response[dartsv1.SubmitThrowResponse], error) {
	res, err := s.matchSvc.SubmitThrow(ctx, req.Msg.MatchID, toDomainDarts(req.Msg.Darts))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("match_id", req.Msg.MatchID).Msg("submit throw failed")
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.SubmitThrowResponse{
		Match:         toProtoMatch(res.Match),
		Throw:         toProtoThrow(res.Throw),
		LegWon:        res.LegWon,
		MatchFinished: res.MatchFinished,
	}), nil
}

func (s *MatchServer) UndoThrow(ctx context.Context, req *connect.Request[dartsv1.UndoThrowRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return matchResponse(s.matchSvc.UndoThrow(ctx, req.Msg.MatchID))
}

func (s *MatchServer) EditThrow(ctx context.Context, req *connect.Request[dartsv1.EditThrowRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return matchResponse(s.matchSvc.EditThrow(ctx, req.Msg.MatchID, req.Msg.Index, toDomainDarts(req.Msg.Darts)))
}

func (s *MatchServer) ResetMatch(ctx context.Context, req *connect.Request[dartsv1.ResetMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return matchResponse(s.matchSvc.ResetMatch(ctx, req.Msg.MatchID))
}

func (s *MatchServer) GetMatch(ctx context.Context, req *connect.Request[dartsv1.GetMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return matchResponse(s.matchSvc.GetMatch(ctx, req.Msg.MatchID))
}

func (s *MatchServer) GetBoardMatch(ctx context.Context, req *connect.Request[dartsv1.GetBoardMatchRequest]) (*connect.Response[dartsv1.MatchResponse], error) {
	return matchResponse(s.matchSvc.GetBoardMatch(ctx, req.Msg.BoardID))
}

func matchResponse(m domain.Match, err error) (*connect.Response[dartsv1.MatchResponse], error) {
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dartsv1.MatchResponse{Match: toProtoMatch(m)}), nil
}
