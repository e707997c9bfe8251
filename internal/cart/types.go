package cart

import "github.com/shopspring/decimal"

// Discount types supported by the cart.
const (
	DiscountPercentage  = "PERCENTAGE"
	DiscountFixedAmount = "FIXED_AMOUNT"
)

// Order types. The required customer fields depend on the type.
const (
	OrderDineIn   = "DINE_IN"
	OrderTakeaway = "TAKEAWAY"
	OrderDelivery = "DELIVERY"
)

// Product is the read-only view of a catalog item the cart consumes.
// Quantity is the currently available stock and is only meaningful when
// TrackInventory is set.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	TrackInventory bool            `json:"track_inventory"`
	Quantity       int             `json:"quantity"`
}

// CustomerInfo holds the buyer details collected at the register.
type CustomerInfo struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineItem is one product entry in the cart. UnitPrice is locked when the
// item is added; MaxQuantity caps the quantity while Tracked is set.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Note        string          `json:"note,omitempty"`
	Tracked     bool            `json:"tracked"`
	MaxQuantity int             `json:"max_quantity,omitempty"`
}

// LineTotal returns UnitPrice * Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
