package api

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/solatis/graphfilter/internal/types"
)

// Error mapping for handlers.
// Expression errors map to INVALID_ARGUMENT.
// A service without a loaded graph maps to UNAVAILABLE.
// Context timeouts map to DEADLINE_EXCEEDED, cancellation to CANCELED.
// Unknown node lookups map to NOT_FOUND.

var errNoGraph = errors.New("no graph loaded")

// toStatus converts a handler error into a gRPC status error.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrInvalidExpression), errors.Is(err, types.ErrExpressionTooDeep):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, types.ErrNodeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, errNoGraph):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
