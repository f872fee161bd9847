package grpc

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/metrics"
	"github.com/tair/pos-ledger/pkg/middleware"
)

// RecoveryInterceptor turns handler panics into Internal errors
func RecoveryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx).
				Interface("panic", r).
				Str("method", info.FullMethod).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered in gRPC handler")
			err = status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}

// MetricsInterceptor collects Prometheus metrics for gRPC calls
func MetricsInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	metrics.GRPCRequestsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	metrics.GRPCRequestDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

	return resp, err
}

// LoggingInterceptor logs gRPC requests with structured logging
func LoggingInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	duration := time.Since(start)
	code := status.Code(err)

	event := logger.Info(ctx)
	switch code {
	case codes.OK:
	case codes.Internal, codes.Unknown, codes.DataLoss:
		event = logger.Error(ctx).Err(err)
	default:
		event = logger.Warn(ctx).Err(err)
	}

	event.
		Str("method", info.FullMethod).
		Str("protocol", "grpc").
		Str("grpc_status", code.String()).
		Dur("duration", duration).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("gRPC request completed")

	return resp, err
}

// IdentityInterceptor resolves the caller from metadata: a bearer token in
// authorization when JWT is enabled, x-user-id otherwise
func IdentityInterceptor(identity *middleware.Identity) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if !identity.Enabled() {
			if userID := strings.TrimSpace(firstMetadata(ctx, "x-user-id")); userID != "" {
				ctx = middleware.WithUserID(ctx, userID)
			}
			return handler(ctx, req)
		}

		token := firstMetadata(ctx, "authorization")
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "authorization token not provided")
		}
		token = strings.TrimPrefix(token, "Bearer ")

		userID, err := identity.ParseToken(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return handler(middleware.WithAuthenticatedUserID(ctx, userID), req)
	}
}
