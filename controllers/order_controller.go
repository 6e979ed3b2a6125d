package controllers

import (
	"net/http"
	"strconv"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/middleware"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	Orders services.OrderService
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetMyOrders handles GET /api/orders
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePaginationParams(c)

	orders, total, err := oc.Orders.GetUserOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetOrderByID handles GET /api/orders/:id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(c *gin.Context) (int, int) {
	const maxLimit = 100
	pageInt, limitInt := 1, 10
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limitInt = l
	}
	return pageInt, limitInt
}
