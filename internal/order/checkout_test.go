package order

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
)

func testCheckoutService() *CheckoutService {
	n := 0
	return &CheckoutService{
		generateNumber: func() string {
			n++
			return fmt.Sprintf("ORD-TEST-%04d", n)
		},
		nowFunc: func() time.Time {
			return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(decimal.NewFromFloat(0.11))
	if err := c.AddItem(cart.Product{ID: "p1", Name: "Nasi Goreng", Price: decimal.NewFromInt(50000)}, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(cart.Product{ID: "p2", Name: "Es Teh", Price: decimal.NewFromInt(8000)}, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return c
}

func TestHoldRequiresItems(t *testing.T) {
	svc := testCheckoutService()
	_, err := svc.Hold(cart.New(decimal.Zero))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestHoldSnapshotIsolation(t *testing.T) {
	svc := testCheckoutService()
	live := filledCart(t)

	held, err := svc.Hold(live)
	if err != nil {
		t.Fatalf("Hold: %v", err)
	}
	if held.OrderNumber == "" || held.ID == "" {
		t.Fatalf("hold missing identity: %+v", held)
	}
	if held.HeldAt.IsZero() {
		t.Fatalf("heldAt not set")
	}
	// holding does not mutate the source cart
	if len(live.Items) != 2 {
		t.Fatalf("hold mutated the live cart")
	}

	// mutating the live cart must not alter the held snapshot
	if err := live.UpdateQuantity("p1", 9); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	live.RemoveItem("p2")

	if len(held.Cart.Items) != 2 {
		t.Fatalf("held snapshot lost items")
	}
	if held.Cart.Items[0].Quantity != 2 {
		t.Fatalf("held snapshot quantity changed: %d", held.Cart.Items[0].Quantity)
	}
}

func TestRecallReturnsIndependentCart(t *testing.T) {
	svc := testCheckoutService()
	held, err := svc.Hold(filledCart(t))
	if err != nil {
		t.Fatalf("Hold: %v", err)
	}

	recalled := svc.Recall(held)
	if !recalled.Subtotal.Equal(held.Cart.Subtotal) || len(recalled.Items) != len(held.Cart.Items) {
		t.Fatalf("recalled cart differs from snapshot")
	}

	if err := recalled.UpdateQuantity("p1", 1); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if held.Cart.Items[0].Quantity != 2 {
		t.Fatalf("recall returned a shared reference into the snapshot")
	}
}

func TestCheckoutDeliveryValidation(t *testing.T) {
	svc := testCheckoutService()
	c := filledCart(t)
	c.SetOrderType(cart.OrderDelivery)
	c.SetCustomer(cart.CustomerInfo{Name: "Budi"})

	_, err := svc.Checkout(c, PaymentCash, "")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected phone and address to be reported, got %v", ve.Fields)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := testCheckoutService()
	if _, err := svc.Checkout(cart.New(decimal.Zero), PaymentCash, ""); err == nil {
		t.Fatalf("checkout of empty cart should fail")
	}
}

func TestCheckoutInitialStatusByPaymentMethod(t *testing.T) {
	svc := testCheckoutService()

	cash, err := svc.Checkout(filledCart(t), PaymentCash, "")
	if err != nil {
		t.Fatalf("Checkout cash: %v", err)
	}
	if cash.Order.Status != StatusAwaitingConfirmation || cash.PaymentRedirect {
		t.Fatalf("cash checkout: status %s redirect %v", cash.Order.Status, cash.PaymentRedirect)
	}

	qris, err := svc.Checkout(filledCart(t), PaymentQRIS, "")
	if err != nil {
		t.Fatalf("Checkout qris: %v", err)
	}
	if qris.Order.Status != StatusPendingPayment || !qris.PaymentRedirect {
		t.Fatalf("qris checkout: status %s redirect %v", qris.Order.Status, qris.PaymentRedirect)
	}
	if qris.Order.OrderNumber == cash.Order.OrderNumber {
		t.Fatalf("order numbers not unique")
	}
}

func TestCheckoutFreezesTotals(t *testing.T) {
	svc := testCheckoutService()
	c := filledCart(t)
	c.SetTaxEnabled(true)

	result, err := svc.Checkout(c, PaymentCash, "table 4")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	o := result.Order
	if !o.Subtotal.Equal(c.Subtotal) || !o.Total.Equal(c.Total) || !o.TaxAmount.Equal(c.TaxAmount) {
		t.Fatalf("order totals differ from cart at submission")
	}
	if o.Notes != "table 4" {
		t.Fatalf("notes not carried")
	}

	frozenTotal := o.Total
	frozenQty := o.Items[0].Quantity

	// later cart mutations must not leak into the frozen order
	if err := c.UpdateQuantity("p1", 1); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if err := c.SetDiscount(decimal.NewFromInt(50), cart.DiscountPercentage); err != nil {
		t.Fatalf("SetDiscount: %v", err)
	}

	if !o.Total.Equal(frozenTotal) || o.Items[0].Quantity != frozenQty {
		t.Fatalf("frozen order changed after checkout")
	}
}
