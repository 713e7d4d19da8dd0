package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC statuses. Field errors are sent as
// a JSON object in the status message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		b, mErr := json.Marshal(verr.Fields)
		if mErr != nil {
			return status.Error(codes.InvalidArgument, verr.Error())
		}
		return status.Error(codes.InvalidArgument, string(b))
	case errors.Is(err, common.ErrUnsupportedGrantType):
		return status.Error(codes.InvalidArgument, common.ErrUnsupportedGrantType.Error())
	case common.IsAuthFailure(err):
		return status.Error(codes.Unauthenticated, common.AuthFailure(err).Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "Not found.")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
