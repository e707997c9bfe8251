package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baguskharisma/pos-system-sub000/internal/auth"
	"github.com/baguskharisma/pos-system-sub000/internal/cart"
	"github.com/baguskharisma/pos-system-sub000/internal/validation"
)

func registerCatalogRoutes(r *gin.Engine, d *deps) {
	v := validation.New()

	r.PUT("/products", requirePermission(auth.PermManageCatalog), func(c *gin.Context) {
		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		p := &cart.Product{
			ID:             req.ID,
			Name:           req.Name,
			Price:          req.Price,
			TrackInventory: req.TrackInventory,
			Quantity:       req.Quantity,
		}
		if err := d.products.Put(c.Request.Context(), p); err != nil {
			d.writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/products/:id", requirePermission(auth.PermViewOrders), func(c *gin.Context) {
		p, err := d.products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.writeDomainError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})
}
