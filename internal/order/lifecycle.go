package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransitionMeta carries the optional data persisted alongside a status
// change.
type TransitionMeta struct {
	Reason string
	Notes  string
}

// Controller applies status transitions to orders. It is purely in-memory:
// the caller persists the returned order, under whatever lock the storage
// layer provides for competing transitions.
type Controller struct {
	nowFunc func() time.Time
}

// NewController returns a lifecycle controller using the wall clock.
func NewController() *Controller {
	return &Controller{nowFunc: time.Now}
}

// Transition validates o.Status -> target against the transition table and
// returns an updated copy of the order with the matching timestamp set and
// any metadata recorded. The input order is never mutated; on error it is
// returned unchanged alongside the error, so a failed call has no effect.
func (c *Controller) Transition(o *Order, target Status, meta TransitionMeta) (*Order, error) {
	if !CanTransition(o.Status, target) {
		return o, &InvalidTransitionError{From: o.Status, To: target}
	}

	now := c.nowFunc()
	updated := *o
	updated.Status = target
	updated.UpdatedAt = now

	switch target {
	case StatusPaid:
		updated.PaidAt = &now
	case StatusPreparing:
		updated.PreparingAt = &now
	case StatusReady:
		updated.ReadyAt = &now
	case StatusCompleted:
		updated.CompletedAt = &now
	case StatusCancelled:
		updated.CancelledAt = &now
	case StatusRefunded:
		updated.RefundedAt = &now
	}

	if meta.Notes != "" {
		updated.Notes = meta.Notes
	}
	if meta.Reason != "" {
		updated.CancellationReason = meta.Reason
	}
	return &updated, nil
}

// Cancel transitions the order to CANCELLED. The reason is required and is
// checked before the transition itself, so a missing reason never consumes
// an otherwise valid transition.
func (c *Controller) Cancel(o *Order, reason string) (*Order, error) {
	if reason == "" {
		return o, &ValidationError{Fields: []string{"reason"}, Msg: "cancellation reason required"}
	}
	return c.Transition(o, StatusCancelled, TransitionMeta{Reason: reason})
}

// ConfirmCashPayment records a cash payment and transitions the order to
// PAID. Tendering less than the amount due is a blocking error. When
// change is nil it is computed as paid - total.
func (c *Controller) ConfirmCashPayment(o *Order, paid decimal.Decimal, change *decimal.Decimal, method, notes string) (*Order, error) {
	if paid.LessThan(o.Total) {
		return o, &InsufficientPaymentError{Required: o.Total, Tendered: paid}
	}

	updated, err := c.Transition(o, StatusPaid, TransitionMeta{Notes: notes})
	if err != nil {
		return o, err
	}

	updated.PaymentMethod = method
	updated.PaidAmount = paid
	if change != nil {
		updated.ChangeAmount = *change
	} else {
		updated.ChangeAmount = paid.Sub(o.Total)
	}
	return updated, nil
}
