package controllers

import (
	"net/http"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/middleware"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutController struct {
	Flow     services.CheckoutFlow
	Payments services.PaymentService
	Orders   services.OrderService
	Currency string
}

func NewCheckoutController(flow services.CheckoutFlow, payments services.PaymentService, orders services.OrderService, currency string) *CheckoutController {
	return &CheckoutController{
		Flow:     flow,
		Payments: payments,
		Orders:   orders,
		Currency: currency,
	}
}

// StartSession handles POST /api/checkout/session
func (cc *CheckoutController) StartSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session, err := cc.Flow.Start(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /api/checkout/session
func (cc *CheckoutController) GetSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session, err := cc.Flow.Current(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// AbandonSession handles DELETE /api/checkout/session
func (cc *CheckoutController) AbandonSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := cc.Flow.Abandon(c.Request.Context(), userID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checkout abandoned"})
}

// SubmitAddress handles POST /api/checkout/address
func (cc *CheckoutController) SubmitAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var addr models.ShippingAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address", "details": err.Error()})
		return
	}

	session, err := cc.Flow.SubmitAddress(c.Request.Context(), userID, addr)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// EditAddress handles POST /api/checkout/address/edit
func (cc *CheckoutController) EditAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session, err := cc.Flow.EditAddress(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RetryShippingOptions handles POST /api/checkout/shipping/retry
func (cc *CheckoutController) RetryShippingOptions(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session, err := cc.Flow.RetryOptions(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectShipping handles POST /api/checkout/shipping
func (cc *CheckoutController) SelectShipping(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		OptionID string `json:"option_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}

	session, err := cc.Flow.SelectShipping(c.Request.Context(), userID, optionID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreatePaymentRequest is the direct payment-intent contract. The amount the
// client sends is accepted for shape compatibility but never trusted; the
// server recomputes the charge from the snapshot and shipping option.
type CreatePaymentRequest struct {
	CartItems       []models.CartItem     `json:"cartItems" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	Amount          float64               `json:"amount"`
	Currency        string                `json:"currency"`
	ShippingOption  models.ShippingOption `json:"shippingOption" binding:"required"`
}

// CreatePayment handles POST /api/checkout/payment. When the user has an
// active session that already holds an intent, that intent is returned
// instead of creating a duplicate authorization.
func (cc *CheckoutController) CreatePayment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	if ref, ok := cc.Flow.IntentForUser(userID); ok {
		c.JSON(http.StatusOK, gin.H{
			"clientSecret":    ref.ClientSecret,
			"paymentIntentId": ref.ID,
		})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = cc.Currency
	}

	ref, err := cc.Payments.CreateIntent(c.Request.Context(), userID, req.CartItems, req.ShippingAddress, req.ShippingOption, currency)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret":    ref.ClientSecret,
		"paymentIntentId": ref.ID,
	})
}

// Confirm handles POST /api/checkout/confirm. Session-driven checkouts go
// through the state machine; a bare confirm (e.g. a retry after the session
// was lost) is verified and materialized directly.
func (cc *CheckoutController) Confirm(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if _, err := cc.Flow.Current(c.Request.Context(), userID); err == nil {
		order, err := cc.Flow.BeginConfirmation(c.Request.Context(), userID, req.PaymentIntentID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
		return
	}

	order, err := cc.Orders.ConfirmOrder(c.Request.Context(), userID, req.PaymentIntentID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// RecordDecline handles POST /api/checkout/decline
func (cc *CheckoutController) RecordDecline(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session, err := cc.Flow.RecordDecline(c.Request.Context(), userID, req.Reason)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
