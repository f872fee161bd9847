package grpc

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/tair/pos-ledger/api/proto/pos/v1"
	inventorydomain "github.com/tair/pos-ledger/internal/inventory/domain"
	orderdomain "github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/money"
)

// parseDecimal reads a wire decimal; scale and range are checked by the
// use case handlers
func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, apperror.Validation("%s is required", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperror.Validation("%s must be a decimal number", field)
	}
	return d, nil
}

func toOrder(o *orderdomain.Order) *pb.Order {
	out := &pb.Order{
		Id:         o.ID.String(),
		LocationId: o.LocationID,
		UserId:     o.UserID,
		Items:      make([]*pb.LineItem, 0, len(o.Lines)),
		Subtotal:   money.FormatAmount(o.Subtotal),
		Tax:        money.FormatAmount(o.Tax),
		Total:      money.FormatAmount(o.Total),
		Status:     string(o.Status),
		CreatedAt:  timestamppb.New(o.CreatedAt),
		UpdatedAt:  timestamppb.New(o.UpdatedAt),
	}
	if o.IdempotencyKey != nil {
		out.IdempotencyKey = *o.IdempotencyKey
	}
	for _, l := range o.Lines {
		out.Items = append(out.Items, &pb.LineItem{
			ItemId:    l.ItemID,
			Quantity:  money.Format(l.Quantity),
			UnitPrice: money.Format(l.UnitPrice),
		})
	}
	return out
}

func toInventory(inv *inventorydomain.Inventory) *pb.Inventory {
	return &pb.Inventory{
		LocationId:       inv.LocationID,
		ItemId:           inv.ItemID,
		Quantity:         money.Format(inv.Quantity),
		ReservedQuantity: money.Format(inv.ReservedQuantity),
		Version:          inv.Version,
		CreatedAt:        timestamppb.New(inv.CreatedAt),
		UpdatedAt:        timestamppb.New(inv.UpdatedAt),
	}
}
