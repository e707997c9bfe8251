package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baguskharisma/pos-system-sub000/internal/cart"
	"github.com/baguskharisma/pos-system-sub000/internal/catalog"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
	"github.com/baguskharisma/pos-system-sub000/internal/orderstore"
	"github.com/baguskharisma/pos-system-sub000/internal/validation"
)

// buildCart reconstructs a live cart from the client payload, pricing
// every line from the catalog. Stock caps are enforced by the cart engine
// against the product's current quantity.
func (d *deps) buildCart(ctx context.Context, req validation.CartRequest) (*cart.Cart, error) {
	c := cart.New(d.cfg.TaxRate)
	c.SetOrderType(req.OrderType)
	c.SetCustomer(cart.CustomerInfo{
		Name:    req.Customer.Name,
		Phone:   req.Customer.Phone,
		Address: req.Customer.Address,
	})
	c.SetTaxEnabled(req.TaxEnabled)
	c.SetServiceCharge(req.ServiceCharge)
	c.SetDeliveryFee(req.DeliveryFee)

	for _, item := range req.Items {
		p, err := d.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if p == nil {
			return nil, &order.ValidationError{
				Fields: []string{item.ProductID},
				Msg:    "unknown product",
			}
		}
		if err := c.AddItem(*p, item.Quantity); err != nil {
			return nil, err
		}
		if item.Note != "" {
			c.SetNote(item.ProductID, item.Note)
		}
	}

	if req.Discount != nil {
		if err := c.SetDiscount(req.Discount.Value, req.Discount.Type); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// writeDomainError maps core errors onto HTTP responses. Everything in the
// domain taxonomy is caller-recoverable; only unknown errors become 500s.
func (d *deps) writeDomainError(c *gin.Context, err error) {
	var (
		ve  *order.ValidationError
		ite *order.InvalidTransitionError
		ipe *order.InsufficientPaymentError
		se  *cart.StockExceededError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"msg":    ve.Msg,
			"fields": ve.Fields,
		})
	case errors.As(err, &se):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "stock_exceeded",
			"product_id": se.ProductID,
			"requested":  se.Requested,
			"available":  se.Available,
		})
	case errors.As(err, &ite):
		c.JSON(http.StatusConflict, gin.H{
			"error": "invalid_transition",
			"from":  ite.From,
			"to":    ite.To,
		})
	case errors.As(err, &ipe):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "insufficient_payment",
			"required": ipe.Required,
			"tendered": ipe.Tendered,
		})
	case errors.Is(err, cart.ErrNegativeDiscount), errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "msg": err.Error()})
	case errors.Is(err, orderstore.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "status_conflict"})
	case errors.Is(err, catalog.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_stock"})
	default:
		d.logger.Error().Err(err).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

// publishEvent sends a lifecycle event; publish failures are logged, not
// surfaced, since the order state change has already been persisted.
func (d *deps) publishEvent(ctx context.Context, eventType string, o *order.Order, corrID string) {
	attrs := map[string]string{
		"order_id": o.ID,
		"type":     eventType,
	}
	if corrID != "" {
		attrs["correlation_id"] = corrID
	}
	if err := d.publisher.PublishJSON(ctx, order.NewEvent(eventType, o), attrs); err != nil {
		d.logger.Error().Err(err).Str("order_id", o.ID).Str("event", eventType).Msg("publish event failed")
	}
}
