package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/middleware"
	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/services/checkout"
)

// CheckoutHandler exposes the checkout flow to the UI shell.
type CheckoutHandler struct {
	Service checkout.CheckoutService
	Logger  *zap.Logger
}

func NewCheckoutHandler(service checkout.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Service: service, Logger: logger}
}

// StartCheckoutSession loads the booking and opens a session for it.
func (h *CheckoutHandler) StartCheckoutSession(c *gin.Context) {
	var input struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.StartSession(c.Request.Context(), middleware.AuthToken(c), input.BookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// GetCheckoutSession returns the session's current state.
func (h *CheckoutHandler) GetCheckoutSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectPaymentProvider records the provider choice for the session.
func (h *CheckoutHandler) SelectPaymentProvider(c *gin.Context) {
	var input struct {
		Provider models.PaymentProvider `json:"provider" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SelectProvider(c.Request.Context(), c.Param("sessionID"), input.Provider)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// InitializePayment creates the payment intent for the selected provider.
// The response carries the client secret (stripe) or the hosted payment URL
// (bkash) on the session's intent.
func (h *CheckoutHandler) InitializePayment(c *gin.Context) {
	session, err := h.Service.Initialize(c.Request.Context(), middleware.AuthToken(c), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ConfirmCardPayment drives the embedded card confirmation.
func (h *CheckoutHandler) ConfirmCardPayment(c *gin.Context) {
	var input struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.ConfirmCard(c.Request.Context(), middleware.AuthToken(c), c.Param("sessionID"), input.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":      session,
		"confirmation": session.Confirmation,
		"redirect":     "/payment-success?booking_id=" + session.Booking.ID,
	})
}

// WalletReturn handles the user's signal that the wallet payment was
// completed in the other context.
func (h *CheckoutHandler) WalletReturn(c *gin.Context) {
	session, err := h.Service.WalletReturn(c.Request.Context(), middleware.AuthToken(c), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if session.State != models.StateDone {
		c.JSON(http.StatusOK, gin.H{"session": session, "still_waiting": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":      session,
		"confirmation": session.Confirmation,
		"redirect":     "/payment-success?booking_id=" + session.Booking.ID,
	})
}

// CancelCheckoutSession abandons the session.
func (h *CheckoutHandler) CancelCheckoutSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) respondError(c *gin.Context, err error) {
	var ce *checkout.CheckoutError
	if !errors.As(err, &ce) {
		h.Logger.Error("unexpected checkout error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
		return
	}

	body := gin.H{"error": ce.Message}
	if ce.Redirect != "" {
		body["redirect"] = ce.Redirect
	}
	c.JSON(statusFor(ce.Code), body)
}

func statusFor(code string) int {
	switch code {
	case checkout.CodeNotFound, checkout.CodeSessionExpired:
		return http.StatusNotFound
	case checkout.CodeUnauthorized:
		return http.StatusUnauthorized
	case checkout.CodeAlreadyPaid, checkout.CodeInitInFlight, checkout.CodeInvalidState:
		return http.StatusConflict
	case checkout.CodeConfirm:
		return http.StatusPaymentRequired
	case checkout.CodeProviderInit:
		return http.StatusBadRequest
	case checkout.CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
