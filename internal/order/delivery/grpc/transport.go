package grpc

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	pb "github.com/tair/pos-ledger/api/proto/pos/v1"
	"github.com/tair/pos-ledger/pkg/middleware"
)

// NewGRPCServer builds a grpc.Server with tracing, the interceptor chain,
// the order service and the standard health service. The returned health
// server starts SERVING; flip it to NOT_SERVING on shutdown.
func NewGRPCServer(srv pb.OrderServiceServer, identity *middleware.Identity) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
			MetricsInterceptor,
			IdentityInterceptor(identity),
		),
	)

	pb.RegisterOrderServiceServer(s, srv)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	return s, healthServer
}
