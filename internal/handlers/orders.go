package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baguskharisma/pos-system-sub000/internal/auth"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
	"github.com/baguskharisma/pos-system-sub000/internal/validation"
)

func registerOrderRoutes(r *gin.Engine, d *deps) {
	v := validation.New()

	r.POST("/checkout", requirePermission(auth.PermCheckout), func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		liveCart, err := d.buildCart(ctx, req.CartRequest)
		if err != nil {
			d.writeDomainError(c, err)
			return
		}

		result, err := d.checkout.Checkout(liveCart, req.PaymentMethod, req.Notes)
		if err != nil {
			d.writeDomainError(c, err)
			return
		}

		if err := d.orders.Create(ctx, result.Order); err != nil {
			d.writeDomainError(c, err)
			return
		}

		d.publishEvent(ctx, order.EventCreated, result.Order, c.GetHeader("X-Request-Id"))
		d.logger.Info().
			Str("order_id", result.Order.ID).
			Str("order_number", result.Order.OrderNumber).
			Str("status", string(result.Order.Status)).
			Msg("order created")

		c.Header("Location", "/orders/"+result.Order.ID)
		c.JSON(http.StatusCreated, result)
	})

	r.GET("/orders", requirePermission(auth.PermViewOrders), func(c *gin.Context) {
		orders, err := d.orders.List(c.Request.Context())
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	})

	r.GET("/orders/:id", requirePermission(auth.PermViewOrders), func(c *gin.Context) {
		o, err := d.orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, o)
	})

	// UI gating: the successor set for the order's current status, straight
	// from the same table the controller validates against.
	r.GET("/orders/:id/transitions", requirePermission(auth.PermViewOrders), func(c *gin.Context) {
		o, err := d.orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      o.Status,
			"transitions": order.AvailableTransitions(o.Status),
		})
	})

	r.POST("/orders/:id/transitions", requirePermission(auth.PermTransition), func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.TransitionRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		target, ok := order.ParseStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_status", "status": req.Status})
			return
		}

		// Refunds are a separately gated permission.
		if target == order.StatusRefunded {
			role, _ := auth.ParseRole(c.GetHeader(actorRoleHeader))
			if !auth.Can(role, auth.PermRefundOrders) {
				c.JSON(http.StatusForbidden, gin.H{"error": "permission_denied"})
				return
			}
		}

		o, err := d.orders.Get(ctx, c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}

		updated, err := d.ctrl.Transition(o, target, order.TransitionMeta{Notes: req.Notes})
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if err := d.orders.ApplyTransition(ctx, updated, o.Status); err != nil {
			d.writeDomainError(c, err)
			return
		}

		d.publishEvent(ctx, order.EventStatus, updated, c.GetHeader("X-Request-Id"))
		c.JSON(http.StatusOK, updated)
	})

	r.POST("/orders/:id/cancel", requirePermission(auth.PermCancelOrders), func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CancelRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		o, err := d.orders.Get(ctx, c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}

		updated, err := d.ctrl.Cancel(o, req.Reason)
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if err := d.orders.ApplyTransition(ctx, updated, o.Status); err != nil {
			d.writeDomainError(c, err)
			return
		}

		if err := d.metrics.RecordOrderCancelled(ctx); err != nil {
			d.logger.Error().Err(err).Msg("record cancel metric failed")
		}
		d.publishEvent(ctx, order.EventCancelled, updated, c.GetHeader("X-Request-Id"))
		c.JSON(http.StatusOK, updated)
	})

	r.POST("/orders/:id/payment", requirePermission(auth.PermConfirmCash), func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.PaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		o, err := d.orders.Get(ctx, c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}

		updated, err := d.ctrl.ConfirmCashPayment(o, req.PaidAmount, req.ChangeAmount, req.Method, req.Notes)
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if err := d.orders.ApplyTransition(ctx, updated, o.Status); err != nil {
			d.writeDomainError(c, err)
			return
		}

		// Stock leaves the shelf when payment is confirmed.
		if err := d.products.DecrementOrderItems(ctx, updated.Items); err != nil {
			d.logger.Error().Err(err).Str("order_id", updated.ID).Msg("stock decrement failed")
		}
		if err := d.metrics.RecordOrderPaid(ctx, updated.PaymentMethod, updated.Total); err != nil {
			d.logger.Error().Err(err).Msg("record paid metric failed")
		}
		d.publishEvent(ctx, order.EventPaid, updated, c.GetHeader("X-Request-Id"))
		c.JSON(http.StatusOK, updated)
	})
}
