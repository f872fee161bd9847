package grpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	pb "github.com/tair/pos-ledger/api/proto/pos/v1"
	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/pos-ledger/internal/inventory/usecase/query"
	ordergrpc "github.com/tair/pos-ledger/internal/order/delivery/grpc"
	"github.com/tair/pos-ledger/internal/order/usecase/command"
	"github.com/tair/pos-ledger/internal/order/usecase/query"
	"github.com/tair/pos-ledger/internal/testutil"
	"github.com/tair/pos-ledger/pkg/middleware"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func startServer(t *testing.T, identity *middleware.Identity) (pb.OrderServiceClient, *grpc.ClientConn, *testutil.InventoryRepository) {
	t.Helper()
	inventory := testutil.NewInventoryRepository()
	orders := testutil.NewOrderRepository()

	srv := ordergrpc.NewServer(
		command.NewCreateOrderHandler(
			orders,
			inventorycommand.NewStockReserver(inventory),
			testutil.NewIdempotencyRepository(),
			nil,
			command.DefaultIdempotencyConfig(),
		),
		command.NewUpdateStatusHandler(orders, nil),
		query.NewGetOrderHandler(orders),
		query.NewListOrdersHandler(orders),
		inventorycommand.NewAdjustQuantityHandler(inventory, nil),
		inventoryquery.NewGetInventoryHandler(inventory),
	)

	lis := bufconn.Listen(1 << 20)
	s, _ := ordergrpc.NewGRPCServer(srv, identity)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return pb.NewOrderServiceClient(conn), conn, inventory
}

func TestOrderService(t *testing.T) {
	client, _, _ := startServer(t, middleware.NewIdentity(""))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	inv, err := client.AdjustInventory(ctx, &pb.AdjustInventoryRequest{LocationId: "S", ItemId: "P", Delta: "5"})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if inv.Quantity != "5.00" || inv.Version != 1 {
		t.Errorf("inventory = %v", inv)
	}
	if inv.GetUpdatedAt().AsTime().IsZero() {
		t.Error("inventory updated_at not set")
	}

	md := metadata.Pairs("idempotency-key", "K1", "x-user-id", "cashier-1")
	callCtx := metadata.NewOutgoingContext(ctx, md)
	req := &pb.CreateOrderRequest{
		LocationId: "S",
		Items:      []*pb.LineItem{{ItemId: "P", Quantity: "2", UnitPrice: "3.50"}},
	}

	first, err := client.CreateOrder(callCtx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := first.GetOrder()
	if first.Replayed || created.Total != "7.00" || created.UserId != "cashier-1" || created.IdempotencyKey != "K1" {
		t.Errorf("created = %v", created)
	}
	if len(created.Items) != 1 || created.Items[0].Quantity != "2.00" || created.Items[0].UnitPrice != "3.50" {
		t.Errorf("items = %v", created.Items)
	}
	if !created.GetCreatedAt().IsValid() || created.GetCreatedAt().AsTime().IsZero() {
		t.Errorf("created_at = %v", created.GetCreatedAt())
	}

	second, err := client.CreateOrder(callCtx, req)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !second.Replayed || second.GetOrder().GetId() != created.Id {
		t.Errorf("replay = %v", second)
	}

	got, err := client.GetInventory(ctx, &pb.GetInventoryRequest{LocationId: "S", ItemId: "P"})
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if got.Quantity != "3.00" {
		t.Errorf("stock = %s, want 3.00", got.Quantity)
	}

	updated, err := client.UpdateOrderStatus(ctx, &pb.UpdateOrderStatusRequest{Id: created.Id, Status: "ready"})
	if err != nil || updated.Status != "ready" {
		t.Fatalf("update: %v %v", err, updated)
	}

	list, err := client.ListOrders(ctx, &pb.ListOrdersRequest{Status: "ready"})
	if err != nil || len(list.Orders) != 1 {
		t.Fatalf("list: %v %v", err, list)
	}

	order, err := client.GetOrder(ctx, &pb.GetOrderRequest{Id: created.Id})
	if err != nil || order.Status != "ready" {
		t.Fatalf("get: %v %v", err, order)
	}
}

func TestOrderService_ErrorCodes(t *testing.T) {
	client, _, inventory := startServer(t, middleware.NewIdentity(""))
	inventory.Seed("S", "P", dec("1"))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := client.CreateOrder(ctx, &pb.CreateOrderRequest{
		LocationId: "S",
		UserId:     "u",
		Items:      []*pb.LineItem{{ItemId: "P", Quantity: "2", UnitPrice: "1"}},
	})
	st := status.Convert(err)
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("insufficient stock: code %s, want FailedPrecondition", st.Code())
	}
	var item string
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			item = info.Metadata["item_id"]
		}
	}
	if item != "P" {
		t.Errorf("error detail item_id = %q, want P", item)
	}

	cases := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"bad status", func() error {
			_, err := client.UpdateOrderStatus(ctx, &pb.UpdateOrderStatusRequest{Id: "00000000-0000-0000-0000-000000000001", Status: "bogus"})
			return err
		}, codes.InvalidArgument},
		{"unknown order", func() error {
			_, err := client.GetOrder(ctx, &pb.GetOrderRequest{Id: "00000000-0000-0000-0000-000000000001"})
			return err
		}, codes.NotFound},
		{"missing user", func() error {
			_, err := client.CreateOrder(ctx, &pb.CreateOrderRequest{
				LocationId: "S",
				Items:      []*pb.LineItem{{ItemId: "P", Quantity: "1", UnitPrice: "1"}},
			})
			return err
		}, codes.InvalidArgument},
		{"non numeric quantity", func() error {
			_, err := client.CreateOrder(ctx, &pb.CreateOrderRequest{
				LocationId: "S",
				UserId:     "u",
				Items:      []*pb.LineItem{{ItemId: "P", Quantity: "two", UnitPrice: "1"}},
			})
			return err
		}, codes.InvalidArgument},
		{"missing delta", func() error {
			_, err := client.AdjustInventory(ctx, &pb.AdjustInventoryRequest{LocationId: "S", ItemId: "P"})
			return err
		}, codes.InvalidArgument},
		{"oversized delta", func() error {
			_, err := client.AdjustInventory(ctx, &pb.AdjustInventoryRequest{LocationId: "S", ItemId: "P", Delta: "-184467440737095511.16"})
			return err
		}, codes.InvalidArgument},
		{"unknown inventory", func() error {
			_, err := client.GetInventory(ctx, &pb.GetInventoryRequest{LocationId: "S", ItemId: "nope"})
			return err
		}, codes.NotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := status.Code(tc.call()); got != tc.want {
				t.Errorf("code = %s, want %s", got, tc.want)
			}
		})
	}

	if q := inventory.Quantity("S", "P"); !q.Equal(dec("1")) {
		t.Errorf("stock = %s, want 1", q)
	}
}

func TestOrderService_TokenSubjectIsTheUser(t *testing.T) {
	const secret = "s3cret"
	client, _, inventory := startServer(t, middleware.NewIdentity(secret))
	inventory.Seed("S", "P", dec("10"))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := jwt.RegisteredClaims{Subject: "u-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	authCtx := metadata.NewOutgoingContext(ctx, metadata.Pairs("authorization", "Bearer "+signed))
	items := []*pb.LineItem{{ItemId: "P", Quantity: "1", UnitPrice: "1"}}

	_, err = client.CreateOrder(ctx, &pb.CreateOrderRequest{LocationId: "S", UserId: "u-42", Items: items})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("no token: %v, want Unauthenticated", err)
	}

	_, err = client.CreateOrder(authCtx, &pb.CreateOrderRequest{LocationId: "S", UserId: "someone-else", Items: items})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("mismatched user: %v, want InvalidArgument", err)
	}
	if q := inventory.Quantity("S", "P"); !q.Equal(dec("10")) {
		t.Errorf("stock = %s, want 10", q)
	}

	resp, err := client.CreateOrder(authCtx, &pb.CreateOrderRequest{LocationId: "S", Items: items})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.GetOrder().GetUserId() != "u-42" {
		t.Errorf("user = %q, want token subject", resp.GetOrder().GetUserId())
	}
}

func TestHealthService(t *testing.T) {
	_, conn, _ := startServer(t, middleware.NewIdentity(""))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ordergrpc.ServiceName})
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %s", resp.Status)
	}
}
