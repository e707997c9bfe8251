package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
)

// CheckoutResult is what a checkout produces: the frozen order and whether
// the caller must redirect to the external payment gateway.
type CheckoutResult struct {
	Order           *Order `json:"order"`
	PaymentRedirect bool   `json:"payment_redirect"`
}

// CheckoutService converts carts into held orders and submitted orders.
// It does not mutate the source cart: clearing the live cart after a hold
// or checkout is the caller's decision.
type CheckoutService struct {
	generateNumber NumberGenerator
	nowFunc        func() time.Time
}

// NewCheckoutService builds a service around the injected order-number
// generator.
func NewCheckoutService(gen NumberGenerator) *CheckoutService {
	return &CheckoutService{generateNumber: gen, nowFunc: time.Now}
}

// DefaultNumberGenerator produces numbers like ORD-20260901-1A2B3C4D.
func DefaultNumberGenerator() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

// Hold snapshots a non-empty cart into a HeldOrder with a fresh order
// number. The snapshot is a deep copy: later mutation of the live cart
// does not affect it.
func (s *CheckoutService) Hold(c *cart.Cart) (*HeldOrder, error) {
	if len(c.Items) == 0 {
		return nil, &ValidationError{Msg: "cannot hold an empty cart"}
	}
	return &HeldOrder{
		ID:          uuid.NewString(),
		OrderNumber: s.generateNumber(),
		Cart:        *c.Clone(),
		HeldAt:      s.nowFunc(),
	}, nil
}

// Recall returns the held snapshot as a live cart. Resolving a conflict
// with an existing non-empty cart is the caller's responsibility.
func (s *CheckoutService) Recall(h *HeldOrder) *cart.Cart {
	return h.Cart.Clone()
}

// Checkout freezes the cart into an Order. Delivery orders require name,
// phone and address; the error lists every missing field. The initial
// status depends on the payment method: cash awaits in-person
// confirmation, gateway methods await the gateway callback.
func (s *CheckoutService) Checkout(c *cart.Cart, paymentMethod, notes string) (*CheckoutResult, error) {
	if len(c.Items) == 0 {
		return nil, &ValidationError{Msg: "cannot check out an empty cart"}
	}
	if c.OrderType == cart.OrderDelivery {
		var missing []string
		if c.Customer.Name == "" {
			missing = append(missing, "name")
		}
		if c.Customer.Phone == "" {
			missing = append(missing, "phone")
		}
		if c.Customer.Address == "" {
			missing = append(missing, "address")
		}
		if len(missing) > 0 {
			return nil, &ValidationError{Fields: missing, Msg: "missing delivery customer fields"}
		}
	}

	snapshot := c.Clone()
	now := s.nowFunc()

	status := StatusAwaitingConfirmation
	redirect := false
	if RequiresGateway(paymentMethod) {
		status = StatusPendingPayment
		redirect = true
	}

	o := &Order{
		ID:             uuid.NewString(),
		OrderNumber:    s.generateNumber(),
		Type:           snapshot.OrderType,
		Status:         status,
		Customer:       snapshot.Customer,
		Items:          snapshot.Items,
		Subtotal:       snapshot.Subtotal,
		DiscountAmount: snapshot.DiscountAmount,
		TaxAmount:      snapshot.TaxAmount,
		ServiceCharge:  snapshot.ServiceCharge,
		DeliveryFee:    snapshot.DeliveryFee,
		Total:          snapshot.Total,
		PaymentMethod:  paymentMethod,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return &CheckoutResult{Order: o, PaymentRedirect: redirect}, nil
}
