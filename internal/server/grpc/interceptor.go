package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const authHeaderKey ctxKey = "authorization"

// authorizationInterceptor copies the "authorization" metadata value into
// the context. Validation happens in the account service, so a missing
// header is not rejected here.
func (s *GRPCServer) authorizationInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			header = values[0]
		}
	}

	return handler(context.WithValue(ctx, authHeaderKey, header), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}

func authHeader(ctx context.Context) string {
	h, _ := ctx.Value(authHeaderKey).(string)
	return h
}
