package cart

import "github.com/shopspring/decimal"

// Cart is the mutable in-progress order. Every mutating method re-derives
// the monetary fields, so Subtotal/DiscountAmount/TaxAmount/Total are never
// stale. All arithmetic is decimal; totals are a pure function of the rest
// of the state.
type Cart struct {
	Items []LineItem `json:"items"`

	TaxRate    decimal.Decimal `json:"tax_rate"`
	TaxEnabled bool            `json:"tax_enabled"`

	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`

	OrderType string       `json:"order_type"`
	Customer  CustomerInfo `json:"customer"`

	ServiceCharge decimal.Decimal `json:"service_charge"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// New returns an empty cart with the given tax rate (e.g. 0.11 for 11%).
// Tax starts disabled; order type defaults to dine-in.
func New(taxRate decimal.Decimal) *Cart {
	c := &Cart{
		TaxRate:      taxRate,
		DiscountType: DiscountPercentage,
		OrderType:    OrderDineIn,
	}
	c.recomputeTotals()
	return c
}

func (c *Cart) find(productID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem adds quantity units of the product, merging into an existing line
// item when one exists. A tracked product is capped at its available stock;
// exceeding the cap rejects the mutation with StockExceededError and leaves
// the cart unchanged.
func (c *Cart) AddItem(p Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if li := c.find(p.ID); li != nil {
		next := li.Quantity + quantity
		if li.Tracked && next > li.MaxQuantity {
			return &StockExceededError{ProductID: p.ID, Requested: next, Available: li.MaxQuantity}
		}
		li.Quantity = next
		c.recomputeTotals()
		return nil
	}

	if p.TrackInventory && quantity > p.Quantity {
		return &StockExceededError{ProductID: p.ID, Requested: quantity, Available: p.Quantity}
	}
	c.Items = append(c.Items, LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		UnitPrice:   p.Price,
		Quantity:    quantity,
		Tracked:     p.TrackInventory,
		MaxQuantity: p.Quantity,
	})
	c.recomputeTotals()
	return nil
}

// UpdateQuantity sets an absolute quantity on an existing line item.
// Zero removes the item. Unknown products are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		c.RemoveItem(productID)
		return nil
	}
	li := c.find(productID)
	if li == nil {
		return nil
	}
	if li.Tracked && quantity > li.MaxQuantity {
		return &StockExceededError{ProductID: productID, Requested: quantity, Available: li.MaxQuantity}
	}
	li.Quantity = quantity
	c.recomputeTotals()
	return nil
}

// RemoveItem removes the line item if present; absent products are a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.recomputeTotals()
}

// SetNote attaches a free-text note to a line item. No total impact.
func (c *Cart) SetNote(productID, note string) {
	if li := c.find(productID); li != nil {
		li.Note = note
	}
}

// SetDiscount replaces the discount configuration. Values below zero are
// rejected. Percentage values above 100 are accepted but the derived
// discount amount is always clamped to the subtotal, so they behave as 100.
func (c *Cart) SetDiscount(value decimal.Decimal, discountType string) error {
	if value.IsNegative() {
		return ErrNegativeDiscount
	}
	c.DiscountValue = value
	c.DiscountType = discountType
	c.recomputeTotals()
	return nil
}

// SetTaxEnabled toggles tax application.
func (c *Cart) SetTaxEnabled(enabled bool) {
	c.TaxEnabled = enabled
	c.recomputeTotals()
}

// SetTaxRate replaces the tax rate.
func (c *Cart) SetTaxRate(rate decimal.Decimal) {
	c.TaxRate = rate
	c.recomputeTotals()
}

// SetOrderType switches the order type and resets customer info, since the
// required fields differ per type and previously entered data no longer
// applies.
func (c *Cart) SetOrderType(orderType string) {
	c.OrderType = orderType
	c.Customer = CustomerInfo{}
	c.recomputeTotals()
}

// SetCustomer replaces the customer info.
func (c *Cart) SetCustomer(info CustomerInfo) {
	c.Customer = info
}

// SetServiceCharge sets a flat service charge added to the total.
func (c *Cart) SetServiceCharge(amount decimal.Decimal) {
	c.ServiceCharge = amount
	c.recomputeTotals()
}

// SetDeliveryFee sets the delivery fee, applied only for delivery orders.
func (c *Cart) SetDeliveryFee(amount decimal.Decimal) {
	c.DeliveryFee = amount
	c.recomputeTotals()
}

// Clear empties the line items and resets the discount to zero. Tax and
// order-type configuration are retained.
func (c *Cart) Clear() {
	c.Items = nil
	c.DiscountValue = decimal.Zero
	c.DiscountType = DiscountPercentage
	c.recomputeTotals()
}

// RecomputeTotals re-derives the monetary fields from current state. It is
// idempotent and already invoked by every mutating method; it is exported
// for callers that rebuild a cart from a snapshot.
func (c *Cart) RecomputeTotals() {
	c.recomputeTotals()
}

func (c *Cart) recomputeTotals() {
	subtotal := decimal.Zero
	for i := range c.Items {
		subtotal = subtotal.Add(c.Items[i].LineTotal())
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountFixedAmount:
		discount = c.DiscountValue
	default:
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	tax := decimal.Zero
	if c.TaxEnabled {
		tax = subtotal.Sub(discount).Mul(c.TaxRate)
	}

	total := subtotal.Sub(discount).Add(tax).Add(c.ServiceCharge)
	if c.OrderType == OrderDelivery {
		total = total.Add(c.DeliveryFee)
	}

	c.Subtotal = subtotal
	c.DiscountAmount = discount
	c.TaxAmount = tax
	c.Total = total
}

// Clone returns a deep copy of the cart. Mutating the original afterwards
// does not affect the copy.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = make([]LineItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}
