package controllers

import (
	"net/http"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/middleware"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart services.CartService
}

func NewCartController(cart services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// GetCart handles GET /api/cart
func (cc *CartController) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	cart, err := cc.Cart.List(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateQuantity handles PATCH /api/cart/:product_id
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID := c.Param("product_id")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart, err := cc.Cart.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/:product_id
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID := c.Param("product_id")

	cart, err := cc.Cart.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
