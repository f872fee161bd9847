package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/internal/order/usecase/command"
	"github.com/tair/pos-ledger/pkg/apperror"
)

func TestUpdateStatus_ScenarioD(t *testing.T) {
	f := newFixture()
	f.inventory.Seed("S", "P", dec("5"))
	ctx := context.Background()

	res, err := f.handler.Handle(ctx, oneLine(""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := res.Order.ID.String()
	h := command.NewUpdateStatusHandler(f.orders, f.events)

	_, err = h.Handle(ctx, command.UpdateStatusCommand{OrderID: id, Status: "bogus"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("bogus status: expected validation error, got %v", err)
	}

	// no transition graph: any status may follow any other
	for _, s := range []string{"completed", "created", "cancelled"} {
		o, err := h.Handle(ctx, command.UpdateStatusCommand{OrderID: id, Status: s})
		if err != nil {
			t.Fatalf("set %s: %v", s, err)
		}
		if string(o.Status) != s {
			t.Errorf("status = %s, want %s", o.Status, s)
		}
	}

	stored, err := f.orders.FindByID(ctx, res.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domain.StatusCancelled {
		t.Errorf("stored status = %s, want cancelled", stored.Status)
	}
	if !stored.Total.Equal(res.Order.Total) || len(stored.Lines) != 1 {
		t.Error("status update changed order contents")
	}
	if len(f.events.changed) != 3 {
		t.Errorf("published %d status events, want 3", len(f.events.changed))
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	f := newFixture()
	h := command.NewUpdateStatusHandler(f.orders, nil)
	ctx := context.Background()

	_, err := h.Handle(ctx, command.UpdateStatusCommand{OrderID: "not-a-uuid", Status: "ready"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("bad id: expected validation error, got %v", err)
	}

	_, err = h.Handle(ctx, command.UpdateStatusCommand{OrderID: uuid.NewString(), Status: "ready"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown id: expected not found, got %v", err)
	}
}
