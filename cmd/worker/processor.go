package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/baguskharisma/pos-system-sub000/internal/aws"
	"github.com/baguskharisma/pos-system-sub000/internal/catalog"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
	"github.com/baguskharisma/pos-system-sub000/internal/orderstore"
)

// ProcessorConfig groups the worker's table and queue wiring.
type ProcessorConfig struct {
	OrdersTable     string
	ProductsTable   string
	EventsQueueURL  string
	MetricNamespace string
}

// Processor consumes payment-gateway callbacks and settles orders:
// conditional status updates, inventory decrement, metrics and follow-up
// events.
type Processor struct {
	orders    *orderstore.Store
	products  *catalog.Store
	publisher *aws.Publisher
	metrics   *aws.Metrics
	ctrl      *order.Controller
	logger    zerolog.Logger
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, cfg ProcessorConfig, logger zerolog.Logger) *Processor {
	return &Processor{
		orders:    orderstore.NewStore(clients.DynamoDB, cfg.OrdersTable),
		products:  catalog.NewStore(clients.DynamoDB, cfg.ProductsTable),
		publisher: aws.NewPublisher(clients.SQS, cfg.EventsQueueURL),
		metrics:   aws.NewMetrics(clients.CloudWatch, cfg.MetricNamespace),
		ctrl:      order.NewController(),
		logger:    logger,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times,
			// the message goes to the DLQ.
			p.logger.Error().Err(err).Msg("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg PaymentEvent
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.logger.Info().
		Str("order_id", msg.OrderID).
		Str("result", msg.Result).
		Str("correlation_id", msg.CorrelationID).
		Msg("payment callback received")

	o, err := p.orders.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if o == nil {
		// Should never happen; DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	switch msg.Result {
	case ResultSettled:
		return p.settle(ctx, o, msg)
	case ResultFailed:
		return p.fail(ctx, o, msg)
	default:
		return fmt.Errorf("unknown gateway result %q for order %s", msg.Result, msg.OrderID)
	}
}

// settle drives the order to PAID. Gateway deliveries are at-least-once,
// so an order that already moved past payment is treated as success.
func (p *Processor) settle(ctx context.Context, o *order.Order, msg PaymentEvent) error {
	if paidOrBeyond(o.Status) {
		p.logger.Info().Str("order_id", o.ID).Str("status", string(o.Status)).Msg("duplicate settle event")
		return nil
	}

	// A gateway order sits in PENDING_PAYMENT until the redirect returns;
	// the callback walks it through confirmation to PAID.
	if o.Status == order.StatusPendingPayment {
		updated, err := p.ctrl.Transition(o, order.StatusAwaitingConfirmation, order.TransitionMeta{})
		if err != nil {
			return fmt.Errorf("order %s: %w", o.ID, err)
		}
		if err := p.applyOrReload(ctx, updated, o.Status, &o); err != nil {
			return err
		}
		if o == nil || paidOrBeyond(o.Status) {
			return nil
		}
	}

	updated, err := p.ctrl.Transition(o, order.StatusPaid, order.TransitionMeta{})
	if err != nil {
		return fmt.Errorf("order %s: %w", o.ID, err)
	}
	updated.PaidAmount = updated.Total
	if err := p.applyOrReload(ctx, updated, o.Status, &o); err != nil {
		return err
	}
	if o == nil || o.Status != order.StatusPaid {
		// Competing transition won; nothing left to do here.
		return nil
	}

	if err := p.products.DecrementOrderItems(ctx, o.Items); err != nil {
		return fmt.Errorf("order %s: %w", o.ID, err)
	}
	if err := p.metrics.RecordOrderPaid(ctx, o.PaymentMethod, o.Total); err != nil {
		p.logger.Error().Err(err).Msg("record paid metric failed")
	}
	p.publishEvent(ctx, order.EventPaid, o, msg.CorrelationID)

	p.logger.Info().Str("order_id", o.ID).Msg("order settled")
	return nil
}

// fail cancels the order after a declined payment. Terminal orders are
// left alone.
func (p *Processor) fail(ctx context.Context, o *order.Order, msg PaymentEvent) error {
	if o.Status.IsTerminal() {
		return nil
	}

	reason := "payment failed"
	if msg.GatewayReference != "" {
		reason = fmt.Sprintf("payment failed (ref %s)", msg.GatewayReference)
	}
	updated, err := p.ctrl.Cancel(o, reason)
	if err != nil {
		return fmt.Errorf("order %s: %w", o.ID, err)
	}
	if err := p.applyOrReload(ctx, updated, o.Status, &o); err != nil {
		return err
	}
	if o == nil || o.Status != order.StatusCancelled {
		return nil
	}

	if err := p.metrics.RecordOrderCancelled(ctx); err != nil {
		p.logger.Error().Err(err).Msg("record cancel metric failed")
	}
	p.publishEvent(ctx, order.EventCancelled, o, msg.CorrelationID)
	return nil
}

// applyOrReload persists the transitioned order. On a status conflict it
// re-reads the order into *current so the caller can decide whether the
// competing transition already did the work.
func (p *Processor) applyOrReload(ctx context.Context, updated *order.Order, expected order.Status, current **order.Order) error {
	err := p.orders.ApplyTransition(ctx, updated, expected)
	if err == nil {
		*current = updated
		return nil
	}
	if errors.Is(err, orderstore.ErrStatusConflict) {
		reloaded, gerr := p.orders.Get(ctx, updated.ID)
		if gerr != nil {
			return fmt.Errorf("reload after conflict: %w", gerr)
		}
		*current = reloaded
		return nil
	}
	return err
}

func (p *Processor) publishEvent(ctx context.Context, eventType string, o *order.Order, corrID string) {
	attrs := map[string]string{"order_id": o.ID, "type": eventType}
	if corrID != "" {
		attrs["correlation_id"] = corrID
	}
	if err := p.publisher.PublishJSON(ctx, order.NewEvent(eventType, o), attrs); err != nil {
		p.logger.Error().Err(err).Str("order_id", o.ID).Msg("publish event failed")
	}
}

func paidOrBeyond(s order.Status) bool {
	switch s {
	case order.StatusPaid, order.StatusPreparing, order.StatusReady,
		order.StatusCompleted, order.StatusRefunded:
		return true
	}
	return false
}
