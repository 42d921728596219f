package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DikshantJo/ZwitchNew-sub000/controllers"
	"github.com/DikshantJo/ZwitchNew-sub000/middleware"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/v1")
	{
		initPaymentRoutes(api)
		initAdminRoutes(api)
	}

	return router
}

// initPaymentRoutes registers the public checkout and webhook surface.
// The webhook route authenticates by HMAC signature, not by session.
func initPaymentRoutes(api *gin.RouterGroup) {
	payments := api.Group("/payments")
	{
		payments.POST("/checkout", controllers.InitiateCheckout)
		payments.POST("/verify", controllers.VerifyPaymentCallback)
		payments.POST("/failure", controllers.PaymentCallbackFailure)
	}

	webhooks := api.Group("/webhooks")
	{
		webhooks.POST("/razorpay", controllers.HandleRazorpayWebhook)
	}
}

// initAdminRoutes registers the dashboard surface behind JWT auth.
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("/logout", controllers.AdminLogout)

		protected.GET("/payments", controllers.ListPayments)
		protected.GET("/payments/:payment_id", controllers.GetPaymentDetail)
		protected.POST("/payments/:payment_id/capture", controllers.CapturePayment)
		protected.POST("/payments/:payment_id/refund", controllers.InitiateRefund)
		protected.GET("/refunds/:refund_id", controllers.GetRefundDetail)

		protected.GET("/reports/payments", controllers.GeneratePaymentReport)
		protected.GET("/reports/payments/excel", controllers.DownloadPaymentReportExcel)
		protected.GET("/reports/payments/pdf", controllers.DownloadPaymentReportPDF)

		protected.GET("/gateway/health", controllers.GatewayHealth)
		protected.POST("/payment-links", controllers.CreatePaymentLink)
		protected.POST("/qr-codes", controllers.CreateQRCode)
	}
}
