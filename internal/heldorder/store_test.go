package heldorder

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
)

type simpleMock struct {
	mu    sync.Mutex
	table map[string]map[string]types.AttributeValue
}

func newSimpleMock() *simpleMock {
	return &simpleMock{table: map[string]map[string]types.AttributeValue{}}
}

func (m *simpleMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := params.Item["held_id"].(*types.AttributeValueMemberS).Value
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(held_id)" {
		if _, exists := m.table[k]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *simpleMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := params.Key["held_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.table[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *simpleMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return nil, errors.New("not used by heldorder")
}

func (m *simpleMock) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := params.Key["held_id"].(*types.AttributeValueMemberS).Value
	delete(m.table, k)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *simpleMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := &dyn.ScanOutput{}
	for _, item := range m.table {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func testHeld(t *testing.T) *order.HeldOrder {
	t.Helper()
	c := cart.New(decimal.NewFromFloat(0.11))
	if err := c.AddItem(cart.Product{ID: "p1", Name: "Nasi Goreng", Price: decimal.NewFromInt(50000)}, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.SetDiscount(decimal.NewFromInt(10), cart.DiscountPercentage); err != nil {
		t.Fatalf("SetDiscount: %v", err)
	}
	c.SetTaxEnabled(true)

	return &order.HeldOrder{
		ID:          "h1",
		OrderNumber: "ORD-20260901-HELD0001",
		Cart:        *c.Clone(),
		HeldAt:      time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestCreateGetRoundtrip(t *testing.T) {
	mock := newSimpleMock()
	s := NewStore(mock, "held-orders", 24*time.Hour)
	now := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	if err := s.Create(ctx, testHeld(t)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// TTL attribute is set from the hold window
	item := mock.table["h1"]
	exp, ok := item["expires_at"].(*types.AttributeValueMemberN)
	if !ok {
		t.Fatalf("expires_at not stored: %+v", item["expires_at"])
	}
	wantExp := now.Add(24 * time.Hour).Unix()
	if exp.Value != strconv.FormatInt(wantExp, 10) {
		t.Fatalf("expires_at %s, want %d", exp.Value, wantExp)
	}

	got, err := s.Get(ctx, "h1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatalf("held order not found after create")
	}
	if got.OrderNumber != "ORD-20260901-HELD0001" || len(got.Cart.Items) != 1 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	// totals are rederived on load and must match the original snapshot
	if !got.Cart.Total.Equal(decimal.NewFromInt(99900)) {
		t.Fatalf("recomputed total %s, want 99900", got.Cart.Total)
	}
}

func TestCreateDuplicate(t *testing.T) {
	s := NewStore(newSimpleMock(), "held-orders", time.Hour)
	ctx := context.Background()

	if err := s.Create(ctx, testHeld(t)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, testHeld(t)); !errors.Is(err, ErrAlreadyHeld) {
		t.Fatalf("expected ErrAlreadyHeld, got %v", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	s := NewStore(newSimpleMock(), "held-orders", time.Hour)
	ctx := context.Background()

	a := testHeld(t)
	b := testHeld(t)
	b.ID = "h2"
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	held, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(held) != 2 {
		t.Fatalf("listed %d holds, want 2", len(held))
	}

	if err := s.Delete(ctx, "h1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := s.Get(ctx, "h1")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) after delete, got (%v, %v)", got, err)
	}

	// deleting an absent hold is not an error
	if err := s.Delete(ctx, "h1"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}
