package orderstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
)

// itemRecord is the DynamoDB shape of a frozen line item. Money is stored
// as decimal strings so nothing is lost to float rounding.
type itemRecord struct {
	ProductID   string `dynamodbav:"product_id"`
	Name        string `dynamodbav:"name"`
	UnitPrice   string `dynamodbav:"unit_price"`
	Quantity    int    `dynamodbav:"quantity"`
	Note        string `dynamodbav:"note,omitempty"`
	Tracked     bool   `dynamodbav:"tracked"`
	MaxQuantity int    `dynamodbav:"max_quantity,omitempty"`
}

// record is the item stored in the orders DynamoDB table.
type record struct {
	OrderID     string `dynamodbav:"order_id"` // PK
	OrderNumber string `dynamodbav:"order_number"`
	Type        string `dynamodbav:"order_type"`
	Status      string `dynamodbav:"status"`

	CustomerName    string `dynamodbav:"customer_name,omitempty"`
	CustomerPhone   string `dynamodbav:"customer_phone,omitempty"`
	CustomerAddress string `dynamodbav:"customer_address,omitempty"`

	Items []itemRecord `dynamodbav:"items"`

	Subtotal       string `dynamodbav:"subtotal"`
	DiscountAmount string `dynamodbav:"discount_amount"`
	TaxAmount      string `dynamodbav:"tax_amount"`
	ServiceCharge  string `dynamodbav:"service_charge"`
	DeliveryFee    string `dynamodbav:"delivery_fee"`
	Total          string `dynamodbav:"total"`

	PaymentMethod string `dynamodbav:"payment_method,omitempty"`
	PaidAmount    string `dynamodbav:"paid_amount,omitempty"`
	ChangeAmount  string `dynamodbav:"change_amount,omitempty"`

	Notes              string `dynamodbav:"notes,omitempty"`
	CancellationReason string `dynamodbav:"cancellation_reason,omitempty"`

	CreatedAt   time.Time  `dynamodbav:"created_at"`
	UpdatedAt   time.Time  `dynamodbav:"updated_at"`
	PaidAt      *time.Time `dynamodbav:"paid_at,omitempty"`
	PreparingAt *time.Time `dynamodbav:"preparing_at,omitempty"`
	ReadyAt     *time.Time `dynamodbav:"ready_at,omitempty"`
	CompletedAt *time.Time `dynamodbav:"completed_at,omitempty"`
	CancelledAt *time.Time `dynamodbav:"cancelled_at,omitempty"`
	RefundedAt  *time.Time `dynamodbav:"refunded_at,omitempty"`
}

func toRecord(o *order.Order) record {
	items := make([]itemRecord, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, itemRecord{
			ProductID:   li.ProductID,
			Name:        li.Name,
			UnitPrice:   li.UnitPrice.String(),
			Quantity:    li.Quantity,
			Note:        li.Note,
			Tracked:     li.Tracked,
			MaxQuantity: li.MaxQuantity,
		})
	}
	return record{
		OrderID:            o.ID,
		OrderNumber:        o.OrderNumber,
		Type:               o.Type,
		Status:             string(o.Status),
		CustomerName:       o.Customer.Name,
		CustomerPhone:      o.Customer.Phone,
		CustomerAddress:    o.Customer.Address,
		Items:              items,
		Subtotal:           o.Subtotal.String(),
		DiscountAmount:     o.DiscountAmount.String(),
		TaxAmount:          o.TaxAmount.String(),
		ServiceCharge:      o.ServiceCharge.String(),
		DeliveryFee:        o.DeliveryFee.String(),
		Total:              o.Total.String(),
		PaymentMethod:      o.PaymentMethod,
		PaidAmount:         moneyOrEmpty(o.PaidAmount),
		ChangeAmount:       moneyOrEmpty(o.ChangeAmount),
		Notes:              o.Notes,
		CancellationReason: o.CancellationReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		PaidAt:             o.PaidAt,
		PreparingAt:        o.PreparingAt,
		ReadyAt:            o.ReadyAt,
		CompletedAt:        o.CompletedAt,
		CancelledAt:        o.CancelledAt,
		RefundedAt:         o.RefundedAt,
	}
}

func fromRecord(r record) (*order.Order, error) {
	o := &order.Order{
		ID:          r.OrderID,
		OrderNumber: r.OrderNumber,
		Type:        r.Type,
		Status:      order.Status(r.Status),
		Customer: cart.CustomerInfo{
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Address: r.CustomerAddress,
		},
		PaymentMethod:      r.PaymentMethod,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		PaidAt:             r.PaidAt,
		PreparingAt:        r.PreparingAt,
		ReadyAt:            r.ReadyAt,
		CompletedAt:        r.CompletedAt,
		CancelledAt:        r.CancelledAt,
		RefundedAt:         r.RefundedAt,
	}

	var err error
	if o.Subtotal, err = parseMoney(r.Subtotal, "subtotal"); err != nil {
		return nil, err
	}
	if o.DiscountAmount, err = parseMoney(r.DiscountAmount, "discount_amount"); err != nil {
		return nil, err
	}
	if o.TaxAmount, err = parseMoney(r.TaxAmount, "tax_amount"); err != nil {
		return nil, err
	}
	if o.ServiceCharge, err = parseMoney(r.ServiceCharge, "service_charge"); err != nil {
		return nil, err
	}
	if o.DeliveryFee, err = parseMoney(r.DeliveryFee, "delivery_fee"); err != nil {
		return nil, err
	}
	if o.Total, err = parseMoney(r.Total, "total"); err != nil {
		return nil, err
	}
	if o.PaidAmount, err = parseMoney(r.PaidAmount, "paid_amount"); err != nil {
		return nil, err
	}
	if o.ChangeAmount, err = parseMoney(r.ChangeAmount, "change_amount"); err != nil {
		return nil, err
	}

	o.Items = make([]cart.LineItem, 0, len(r.Items))
	for _, ri := range r.Items {
		price, perr := parseMoney(ri.UnitPrice, "unit_price")
		if perr != nil {
			return nil, perr
		}
		o.Items = append(o.Items, cart.LineItem{
			ProductID:   ri.ProductID,
			Name:        ri.Name,
			UnitPrice:   price,
			Quantity:    ri.Quantity,
			Note:        ri.Note,
			Tracked:     ri.Tracked,
			MaxQuantity: ri.MaxQuantity,
		})
	}
	return o, nil
}

func moneyOrEmpty(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func parseMoney(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return d, nil
}
