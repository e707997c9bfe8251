package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
)

// Payment methods. Cash is confirmed at the register; everything else is
// handed off to an external gateway.
const (
	PaymentCash    = "CASH"
	PaymentCard    = "CARD"
	PaymentQRIS    = "QRIS"
	PaymentEWallet = "EWALLET"
)

// RequiresGateway reports whether the payment method routes through the
// external payment gateway.
func RequiresGateway(method string) bool {
	return method != PaymentCash
}

// Order is the frozen, checked-out transaction. The monetary breakdown is
// locked at creation and never changes afterwards; only Status, the status
// timestamps, Notes, CancellationReason and the payment fields mutate, and
// only through the lifecycle controller.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	Type        string `json:"type"`
	Status      Status `json:"status"`

	Customer cart.CustomerInfo `json:"customer"`
	Items    []cart.LineItem   `json:"items"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`

	PaymentMethod string          `json:"payment_method"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	ChangeAmount  decimal.Decimal `json:"change_amount"`

	Notes              string `json:"notes,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`
}

// HeldOrder is a named cart snapshot set aside for later recall. The cart
// is a deep copy; mutating the live cart after holding does not touch it.
type HeldOrder struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	Cart        cart.Cart `json:"cart"`
	HeldAt      time.Time `json:"held_at"`
}

// NumberGenerator produces a unique human-readable order number. Only
// uniqueness is required; the format is up to the implementation.
type NumberGenerator func() string
