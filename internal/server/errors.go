package server

import (
	"errors"

	"darts-tournament/internal/domain"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Error kinds carried in the detail of every failed call.
const (
	KindRuleViolation   = "rule_violation"
	KindStateOrdering   = "state_ordering"
	KindConcurrencyLoss = "concurrency_loss"
	KindNotFound        = "not_found"
	KindInternal        = "internal"
)

// toConnectError maps domain errors onto connect codes. Concurrency loss is
// checked first because a lost race also wraps the ordering error.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}

	code, kind := connect.CodeInternal, KindInternal
	switch {
	case errors.Is(err, domain.ErrConcurrencyLoss):
		code, kind = connect.CodeAborted, KindConcurrencyLoss
	case errors.Is(err, domain.ErrRuleViolation):
		code, kind = connect.CodeInvalidArgument, KindRuleViolation
	case errors.Is(err, domain.ErrStateOrdering):
		code, kind = connect.CodeFailedPrecondition, KindStateOrdering
	case errors.Is(err, domain.ErrNotFound):
		code, kind = connect.CodeNotFound, KindNotFound
	}

	cerr := connect.NewError(code, err)
	if info, perr := structpb.NewStruct(map[string]any{"kind": kind, "message": err.Error()}); perr == nil {
		if detail, derr := connect.NewErrorDetail(info); derr == nil {
			cerr.AddDetail(detail)
		}
	}
	return cerr
}

// ErrorKind extracts the kind detail from an error returned by a client.
func ErrorKind(err error) string {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return ""
	}
	for _, d := range cerr.Details() {
		msg, verr := d.Value()
		if verr != nil {
			continue
		}
		if info, ok := msg.(*structpb.Struct); ok {
			if v, ok := info.GetFields()["kind"]; ok {
				return v.GetStringValue()
			}
		}
	}
	return ""
}
