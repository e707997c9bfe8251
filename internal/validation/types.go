package validation

import "github.com/shopspring/decimal"

// CartItem is one requested line item. The unit price always comes from
// the catalog, never from the client.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Note      string `json:"note,omitempty"`
}

// Discount is the requested discount configuration.
type Discount struct {
	Type  string          `json:"type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Value decimal.Decimal `json:"value"`
}

// Customer holds buyer details; which fields are required depends on the
// order type and is checked at struct level.
type Customer struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CartRequest is the full client-side cart state sent to hold and
// checkout endpoints.
type CartRequest struct {
	OrderType     string          `json:"order_type" validate:"required,oneof=DINE_IN TAKEAWAY DELIVERY"`
	Customer      Customer        `json:"customer"`
	Items         []CartItem      `json:"items" validate:"required,min=1,dive"`
	Discount      *Discount       `json:"discount,omitempty"`
	TaxEnabled    bool            `json:"tax_enabled"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
}

// CheckoutRequest is the payload for POST /checkout.
type CheckoutRequest struct {
	CartRequest
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CASH CARD QRIS EWALLET"`
	Notes         string `json:"notes,omitempty"`
}

// TransitionRequest is the payload for POST /orders/:id/transitions.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// CancelRequest is the payload for POST /orders/:id/cancel.
type CancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// PaymentRequest is the payload for POST /orders/:id/payment (cash
// confirmation at the register). ChangeAmount is optional; when omitted
// the lifecycle controller computes it.
type PaymentRequest struct {
	PaidAmount   decimal.Decimal  `json:"paid_amount"`
	ChangeAmount *decimal.Decimal `json:"change_amount,omitempty"`
	Method       string           `json:"method" validate:"required,oneof=CASH CARD QRIS EWALLET"`
	Notes        string           `json:"notes,omitempty"`
}

// ProductRequest is the payload for back-office product upserts.
type ProductRequest struct {
	ID             string          `json:"id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Price          decimal.Decimal `json:"price"`
	TrackInventory bool            `json:"track_inventory"`
	Quantity       int             `json:"quantity" validate:"min=0"`
}
