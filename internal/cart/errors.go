package cart

import (
	"errors"
	"fmt"
)

// ErrNegativeDiscount indicates a discount value below zero was supplied.
var ErrNegativeDiscount = errors.New("discount value must be >= 0")

// ErrInvalidQuantity indicates a non-positive quantity on AddItem.
var ErrInvalidQuantity = errors.New("quantity must be >= 1")

// StockExceededError is returned when a mutation would push a tracked line
// item past its inventory cap. The cart is left unchanged.
type StockExceededError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("stock exceeded for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
