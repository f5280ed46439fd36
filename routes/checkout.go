package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eiasinprodhan/luxury-real-estate/handlers"
	"github.com/eiasinprodhan/luxury-real-estate/middleware"
)

// RegisterCheckoutRoutes registers all endpoints for the checkout flow.
func RegisterCheckoutRoutes(r *gin.Engine, h *handlers.CheckoutHandler) {
	co := r.Group("/api/checkout")
	co.Use(middleware.AuthTokenMiddleware())
	{
		co.POST("/session", h.StartCheckoutSession)
		co.GET("/session/:sessionID", h.GetCheckoutSession)
		co.PUT("/session/:sessionID/provider", h.SelectPaymentProvider)
		co.POST("/session/:sessionID/initialize", h.InitializePayment)
		co.POST("/session/:sessionID/confirm", h.ConfirmCardPayment)
		co.POST("/session/:sessionID/wallet/return", h.WalletReturn)
		co.DELETE("/session/:sessionID", h.CancelCheckoutSession)
	}
}
