package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports missing or invalid required input, e.g. an empty
// cancellation reason or missing delivery customer fields.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Msg, strings.Join(e.Fields, ", "))
	}
	return e.Msg
}

// InvalidTransitionError reports a status change not permitted by the
// transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// InsufficientPaymentError reports cash tendered below the amount due.
type InsufficientPaymentError struct {
	Required decimal.Decimal
	Tendered decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: tendered %s, required %s",
		e.Tendered.String(), e.Required.String())
}
