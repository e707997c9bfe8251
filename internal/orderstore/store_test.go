package orderstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
)

func testOrder() *order.Order {
	now := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	return &order.Order{
		ID:          "o1",
		OrderNumber: "ORD-20260901-AB12CD34",
		Type:        cart.OrderDineIn,
		Status:      order.StatusAwaitingConfirmation,
		Items: []cart.LineItem{
			{ProductID: "p1", Name: "Nasi Goreng", UnitPrice: decimal.NewFromInt(50000), Quantity: 2, Tracked: true, MaxQuantity: 10},
			{ProductID: "p2", Name: "Es Teh", UnitPrice: decimal.NewFromInt(8000), Quantity: 1, Note: "less ice"},
		},
		Subtotal:       decimal.NewFromInt(108000),
		DiscountAmount: decimal.NewFromInt(10800),
		TaxAmount:      decimal.NewFromInt(10692),
		Total:          decimal.NewFromInt(107892),
		PaymentMethod:  order.PaymentCash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCreateGetRoundtrip(t *testing.T) {
	s := NewStore(newSimpleMock(), "orders")
	ctx := context.Background()

	if err := s.Create(ctx, testOrder()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatalf("order not found after create")
	}
	if got.OrderNumber != "ORD-20260901-AB12CD34" || got.Status != order.StatusAwaitingConfirmation {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !got.Total.Equal(decimal.NewFromInt(107892)) {
		t.Fatalf("total %s, want 107892", got.Total)
	}
	if len(got.Items) != 2 || got.Items[1].Note != "less ice" {
		t.Fatalf("items mismatch: %+v", got.Items)
	}
	if !got.Items[0].UnitPrice.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("unit price %s, want 50000", got.Items[0].UnitPrice)
	}
}

func TestCreateDuplicate(t *testing.T) {
	s := NewStore(newSimpleMock(), "orders")
	ctx := context.Background()

	if err := s.Create(ctx, testOrder()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, testOrder()); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore(newSimpleMock(), "orders")
	got, err := s.Get(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", got, err)
	}
}

func TestApplyTransition(t *testing.T) {
	s := NewStore(newSimpleMock(), "orders")
	ctx := context.Background()

	o := testOrder()
	if err := s.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	paidAt := time.Date(2026, 9, 1, 9, 45, 0, 0, time.UTC)
	updated := *o
	updated.Status = order.StatusPaid
	updated.PaidAt = &paidAt
	updated.PaidAmount = decimal.NewFromInt(110000)
	updated.ChangeAmount = decimal.NewFromInt(2108)

	if err := s.ApplyTransition(ctx, &updated, order.StatusAwaitingConfirmation); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}

	got, err := s.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != order.StatusPaid {
		t.Fatalf("status %s, want PAID", got.Status)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(paidAt) {
		t.Fatalf("paidAt lost in roundtrip: %v", got.PaidAt)
	}
	if !got.ChangeAmount.Equal(decimal.NewFromInt(2108)) {
		t.Fatalf("change %s, want 2108", got.ChangeAmount)
	}
}

func TestApplyTransitionConflict(t *testing.T) {
	s := NewStore(newSimpleMock(), "orders")
	ctx := context.Background()

	o := testOrder()
	if err := s.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A competing request already moved the order on.
	winner := *o
	winner.Status = order.StatusCancelled
	if err := s.ApplyTransition(ctx, &winner, order.StatusAwaitingConfirmation); err != nil {
		t.Fatalf("ApplyTransition (winner): %v", err)
	}

	loser := *o
	loser.Status = order.StatusPaid
	err := s.ApplyTransition(ctx, &loser, order.StatusAwaitingConfirmation)
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}

	got, _ := s.Get(ctx, "o1")
	if got.Status != order.StatusCancelled {
		t.Fatalf("losing transition overwrote the winner: %s", got.Status)
	}
}

func TestList(t *testing.T) {
	s := NewStore(newSimpleMock(), "orders")
	ctx := context.Background()

	a := testOrder()
	b := testOrder()
	b.ID = "o2"
	b.OrderNumber = "ORD-20260901-EF56GH78"
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	orders, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("listed %d orders, want 2", len(orders))
	}
}
