package httpserver

import (
	"fmt"
	"net/http"

	"perfumeshop/internal/domain"

	"github.com/gin-gonic/gin"
)

func createCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Create(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "cart created",
			"cart":    cart,
		})
	}
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), c.Param("cid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"payload": cart.Items,
		})
	}
}

type addToCartRequest struct {
	Quantity int `json:"quantity"`
}

func addToCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The body is optional; a missing or unparseable quantity means one
		// unit, matching the API contract.
		var req addToCartRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				req.Quantity = 0
			}
		}
		cart, err := svc.AddProduct(c.Request.Context(), c.Param("cid"), c.Param("pid"), req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "product added to cart",
			"cart":    cart,
		})
	}
}

type setQuantityRequest struct {
	// Pointer so that an explicit zero (remove the line item) is
	// distinguishable from a missing field.
	Quantity *int `json:"quantity"`
}

func setQuantityHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		if req.Quantity == nil {
			writeError(c, fmt.Errorf("quantity required: %w", domain.ErrInvalidInput))
			return
		}
		cart, err := svc.SetQuantity(c.Request.Context(), c.Param("cid"), c.Param("pid"), *req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "quantity updated",
			"cart":    cart,
		})
	}
}

func decrementHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.DecrementOne(c.Request.Context(), c.Param("cid"), c.Param("pid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "product removed",
			"cart":    cart,
		})
	}
}

type replaceCartRequest struct {
	Products []replaceCartItem `json:"products" binding:"required"`
}

type replaceCartItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func replaceCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req replaceCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		items := make([]domain.CartItem, 0, len(req.Products))
		for _, p := range req.Products {
			items = append(items, domain.CartItem{ProductID: p.ProductID, Quantity: p.Quantity})
		}
		cart, err := svc.ReplaceAll(c.Request.Context(), c.Param("cid"), items)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "cart updated",
			"cart":    cart,
		})
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Clear(c.Request.Context(), c.Param("cid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "cart cleared",
			"cart":    cart,
		})
	}
}

// removeEntirelyViewHandler backs the storefront delete button: the whole
// line item goes regardless of quantity, then back to the cart view.
func removeEntirelyViewHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.Param("cid")
		if _, err := svc.RemoveEntirely(c.Request.Context(), cid, c.Param("pid")); err != nil {
			writeViewError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/carts/"+cid)
	}
}

func clearCartViewHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.Param("cid")
		if _, err := svc.Clear(c.Request.Context(), cid); err != nil {
			writeViewError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/carts/"+cid)
	}
}
