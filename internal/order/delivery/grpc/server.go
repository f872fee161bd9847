package grpc

import (
	"context"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/tair/pos-ledger/api/proto/pos/v1"
	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/pos-ledger/internal/inventory/usecase/query"
	"github.com/tair/pos-ledger/internal/order/usecase/command"
	"github.com/tair/pos-ledger/internal/order/usecase/query"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/middleware"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "pos.v1.OrderService"
	// IdempotencyKeyMetadata is the metadata key carrying the idempotency key
	IdempotencyKeyMetadata = "idempotency-key"
)

// Server implements pos.v1.OrderService on top of the use case handlers
type Server struct {
	pb.UnimplementedOrderServiceServer

	createHandler       *command.CreateOrderHandler
	updateStatusHandler *command.UpdateStatusHandler
	getHandler          *query.GetOrderHandler
	listHandler         *query.ListOrdersHandler

	adjustHandler       *inventorycommand.AdjustQuantityHandler
	getInventoryHandler *inventoryquery.GetInventoryHandler
}

// NewServer creates a new gRPC server
func NewServer(
	createHandler *command.CreateOrderHandler,
	updateStatusHandler *command.UpdateStatusHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
	adjustHandler *inventorycommand.AdjustQuantityHandler,
	getInventoryHandler *inventoryquery.GetInventoryHandler,
) *Server {
	return &Server{
		createHandler:       createHandler,
		updateStatusHandler: updateStatusHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		adjustHandler:       adjustHandler,
		getInventoryHandler: getInventoryHandler,
	}
}

// CreateOrder places an order. A repeated idempotency key replays the
// stored order with replayed set.
func (s *Server) CreateOrder(ctx context.Context, req *pb.CreateOrderRequest) (*pb.CreateOrderResponse, error) {
	userID, err := middleware.EffectiveUserID(ctx, req.UserId)
	if err != nil {
		return nil, toStatus(ctx, apperror.Validation("%s", err.Error()))
	}

	cmd := command.CreateOrderCommand{
		LocationID:     req.LocationId,
		UserID:         userID,
		IdempotencyKey: req.IdempotencyKey,
	}
	if cmd.IdempotencyKey == "" {
		cmd.IdempotencyKey = firstMetadata(ctx, IdempotencyKeyMetadata)
	}
	for i, it := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		qty, err := parseDecimal(field+".quantity", it.Quantity)
		if err != nil {
			return nil, toStatus(ctx, err)
		}
		price, err := parseDecimal(field+".unit_price", it.UnitPrice)
		if err != nil {
			return nil, toStatus(ctx, err)
		}
		cmd.Lines = append(cmd.Lines, command.LineInput{
			ItemID:    it.ItemId,
			Quantity:  qty,
			UnitPrice: price,
		})
	}

	result, err := s.createHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pb.CreateOrderResponse{Order: toOrder(result.Order), Replayed: result.Replayed}, nil
}

func (s *Server) GetOrder(ctx context.Context, req *pb.GetOrderRequest) (*pb.Order, error) {
	order, err := s.getHandler.Handle(ctx, query.GetOrderQuery{ID: req.Id})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return toOrder(order), nil
}

func (s *Server) ListOrders(ctx context.Context, req *pb.ListOrdersRequest) (*pb.ListOrdersResponse, error) {
	orders, err := s.listHandler.Handle(ctx, query.ListOrdersQuery{
		LocationID: req.LocationId,
		UserID:     req.UserId,
		Status:     req.Status,
		Skip:       int(req.Skip),
		Limit:      int(req.Limit),
	})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	resp := &pb.ListOrdersResponse{Orders: make([]*pb.Order, 0, len(orders))}
	for i := range orders {
		resp.Orders = append(resp.Orders, toOrder(&orders[i]))
	}
	return resp, nil
}

func (s *Server) UpdateOrderStatus(ctx context.Context, req *pb.UpdateOrderStatusRequest) (*pb.Order, error) {
	order, err := s.updateStatusHandler.Handle(ctx, command.UpdateStatusCommand{OrderID: req.Id, Status: req.Status})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return toOrder(order), nil
}

func (s *Server) AdjustInventory(ctx context.Context, req *pb.AdjustInventoryRequest) (*pb.Inventory, error) {
	delta, err := parseDecimal("delta", req.Delta)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	inv, err := s.adjustHandler.Handle(ctx, inventorycommand.AdjustQuantityCommand{
		LocationID: req.LocationId,
		ItemID:     req.ItemId,
		Delta:      delta,
	})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return toInventory(inv), nil
}

func (s *Server) GetInventory(ctx context.Context, req *pb.GetInventoryRequest) (*pb.Inventory, error) {
	inv, err := s.getInventoryHandler.Handle(ctx, inventoryquery.GetInventoryQuery{
		LocationID: req.LocationId,
		ItemID:     req.ItemId,
	})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return toInventory(inv), nil
}

// CodeFor maps an error kind onto a gRPC status code
func CodeFor(kind apperror.Kind) codes.Code {
	switch kind {
	case apperror.KindValidation:
		return codes.InvalidArgument
	case apperror.KindNotFound:
		return codes.NotFound
	case apperror.KindInsufficientStock:
		return codes.FailedPrecondition
	case apperror.KindConflict:
		return codes.Aborted
	default:
		return codes.Internal
	}
}

// toStatus converts a use case error. Insufficient stock carries an
// ErrorInfo detail naming the item.
func toStatus(ctx context.Context, err error) error {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal("internal error", err)
	}

	code := CodeFor(appErr.Kind)
	if code == codes.Internal {
		logger.Error(ctx).Err(err).Msg("gRPC request failed")
		return status.Error(codes.Internal, "internal error")
	}

	st := status.New(code, appErr.Message)
	if appErr.Kind == apperror.KindInsufficientStock {
		withDetails, detailErr := st.WithDetails(&errdetails.ErrorInfo{
			Reason:   "INSUFFICIENT_STOCK",
			Domain:   ServiceName,
			Metadata: appErr.Fields,
		})
		if detailErr == nil {
			st = withDetails
		}
	}
	return st.Err()
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
