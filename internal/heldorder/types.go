package heldorder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
)

type itemRecord struct {
	ProductID   string `dynamodbav:"product_id"`
	Name        string `dynamodbav:"name"`
	UnitPrice   string `dynamodbav:"unit_price"`
	Quantity    int    `dynamodbav:"quantity"`
	Note        string `dynamodbav:"note,omitempty"`
	Tracked     bool   `dynamodbav:"tracked"`
	MaxQuantity int    `dynamodbav:"max_quantity,omitempty"`
}

// cartRecord stores the snapshot's inputs; derived totals are recomputed
// on load rather than trusted from storage.
type cartRecord struct {
	Items           []itemRecord `dynamodbav:"items"`
	TaxRate         string       `dynamodbav:"tax_rate"`
	TaxEnabled      bool         `dynamodbav:"tax_enabled"`
	DiscountType    string       `dynamodbav:"discount_type"`
	DiscountValue   string       `dynamodbav:"discount_value"`
	OrderType       string       `dynamodbav:"order_type"`
	CustomerName    string       `dynamodbav:"customer_name,omitempty"`
	CustomerPhone   string       `dynamodbav:"customer_phone,omitempty"`
	CustomerAddress string       `dynamodbav:"customer_address,omitempty"`
	ServiceCharge   string       `dynamodbav:"service_charge"`
	DeliveryFee     string       `dynamodbav:"delivery_fee"`
}

// heldRecord is the shape persisted in the held-orders DynamoDB table.
// Stale holds age out through the table's TTL on expires_at.
type heldRecord struct {
	HeldID      string     `dynamodbav:"held_id"` // PK
	OrderNumber string     `dynamodbav:"order_number"`
	Cart        cartRecord `dynamodbav:"cart"`
	HeldAt      time.Time  `dynamodbav:"held_at"`
	ExpiresAt   int64      `dynamodbav:"expires_at"` // TTL epoch seconds
}

func toRecord(h *order.HeldOrder, expiresAt int64) heldRecord {
	items := make([]itemRecord, 0, len(h.Cart.Items))
	for _, li := range h.Cart.Items {
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
	return heldRecord{
		HeldID:      h.ID,
		OrderNumber: h.OrderNumber,
		Cart: cartRecord{
			Items:           items,
			TaxRate:         h.Cart.TaxRate.String(),
			TaxEnabled:      h.Cart.TaxEnabled,
			DiscountType:    h.Cart.DiscountType,
			DiscountValue:   h.Cart.DiscountValue.String(),
			OrderType:       h.Cart.OrderType,
			CustomerName:    h.Cart.Customer.Name,
			CustomerPhone:   h.Cart.Customer.Phone,
			CustomerAddress: h.Cart.Customer.Address,
			ServiceCharge:   h.Cart.ServiceCharge.String(),
			DeliveryFee:     h.Cart.DeliveryFee.String(),
		},
		HeldAt:    h.HeldAt,
		ExpiresAt: expiresAt,
	}
}

func fromRecord(r heldRecord) (*order.HeldOrder, error) {
	c := cart.Cart{
		TaxEnabled:   r.Cart.TaxEnabled,
		DiscountType: r.Cart.DiscountType,
		OrderType:    r.Cart.OrderType,
		Customer: cart.CustomerInfo{
			Name:    r.Cart.CustomerName,
			Phone:   r.Cart.CustomerPhone,
			Address: r.Cart.CustomerAddress,
		},
	}

	var err error
	if c.TaxRate, err = parseDecimal(r.Cart.TaxRate, "tax_rate"); err != nil {
		return nil, err
	}
	if c.DiscountValue, err = parseDecimal(r.Cart.DiscountValue, "discount_value"); err != nil {
		return nil, err
	}
	if c.ServiceCharge, err = parseDecimal(r.Cart.ServiceCharge, "service_charge"); err != nil {
		return nil, err
	}
	if c.DeliveryFee, err = parseDecimal(r.Cart.DeliveryFee, "delivery_fee"); err != nil {
		return nil, err
	}

	c.Items = make([]cart.LineItem, 0, len(r.Cart.Items))
	for _, ri := range r.Cart.Items {
		price, perr := parseDecimal(ri.UnitPrice, "unit_price")
		if perr != nil {
			return nil, perr
		}
		c.Items = append(c.Items, cart.LineItem{
			ProductID:   ri.ProductID,
			Name:        ri.Name,
			UnitPrice:   price,
			Quantity:    ri.Quantity,
			Note:        ri.Note,
			Tracked:     ri.Tracked,
			MaxQuantity: ri.MaxQuantity,
		})
	}
	c.RecomputeTotals()

	return &order.HeldOrder{
		ID:          r.HeldID,
		OrderNumber: r.OrderNumber,
		Cart:        c,
		HeldAt:      r.HeldAt,
	}, nil
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return d, nil
}
