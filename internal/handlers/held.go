package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baguskharisma/pos-system-sub000/internal/auth"
	"github.com/baguskharisma/pos-system-sub000/internal/validation"
)

func registerHeldOrderRoutes(r *gin.Engine, d *deps) {
	v := validation.New()

	r.POST("/held-orders", requirePermission(auth.PermHoldOrders), func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		liveCart, err := d.buildCart(ctx, req)
		if err != nil {
			d.writeDomainError(c, err)
			return
		}

		held, err := d.checkout.Hold(liveCart)
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if err := d.held.Create(ctx, held); err != nil {
			d.writeDomainError(c, err)
			return
		}

		d.logger.Info().
			Str("held_id", held.ID).
			Str("order_number", held.OrderNumber).
			Int("items", len(held.Cart.Items)).
			Msg("cart held")
		c.JSON(http.StatusCreated, held)
	})

	r.GET("/held-orders", requirePermission(auth.PermHoldOrders), func(c *gin.Context) {
		held, err := d.held.List(c.Request.Context())
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"held_orders": held})
	})

	// Recall hands the snapshot back as the live cart and removes the hold.
	// Replacing a non-empty register cart is confirmed client-side before
	// this call.
	r.POST("/held-orders/:id/recall", requirePermission(auth.PermHoldOrders), func(c *gin.Context) {
		ctx := c.Request.Context()

		held, err := d.held.Get(ctx, c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if held == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "held_order_not_found"})
			return
		}

		recalled := d.checkout.Recall(held)
		if err := d.held.Delete(ctx, held.ID); err != nil {
			d.writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order_number": held.OrderNumber,
			"cart":         recalled,
		})
	})

	r.DELETE("/held-orders/:id", requirePermission(auth.PermHoldOrders), func(c *gin.Context) {
		if err := d.held.Delete(c.Request.Context(), c.Param("id")); err != nil {
			d.writeDomainError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
