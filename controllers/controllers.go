package controllers

import (
	"github.com/DikshantJo/ZwitchNew-sub000/config"
	"github.com/DikshantJo/ZwitchNew-sub000/gateway"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
	"github.com/DikshantJo/ZwitchNew-sub000/webhook"
	"github.com/gin-gonic/gin"
)

var (
	appConfig     *config.Config
	gatewayClient *gateway.Client
	orderStore    webhook.Store
	reconciler    *webhook.Reconciler
)

// Init wires the shared gateway client, order store and webhook reconciler.
// Must run after config.InitDB.
func Init(cfg *config.Config) {
	appConfig = cfg
	gatewayClient = gateway.NewClient(cfg.GatewayConfig())
	orderStore = webhook.NewGormStore(config.DB)
	reconciler = webhook.NewReconciler(orderStore, cfg.RazorpayWebhookSecret)

	if !gatewayClient.IsConfigured() {
		utils.LogError("Razorpay credentials are not configured; payment endpoints will reject requests (key id: %s)", utils.MaskSecret(cfg.RazorpayKeyID))
	}
}

// respondGatewayError maps the client error taxonomy onto HTTP responses.
// Transport faults are 502: the outcome upstream is unknown and the caller
// should reconcile via a later fetch or webhook, not assume failure.
func respondGatewayError(c *gin.Context, message string, err error) {
	ge := gateway.AsError(err)
	if ge == nil {
		utils.InternalServerError(c, message, err.Error())
		return
	}
	switch ge.Kind {
	case gateway.KindValidation:
		utils.BadRequest(c, message, ge.Description)
	case gateway.KindAuth:
		utils.InternalServerError(c, "Payment gateway credentials were rejected", nil)
	case gateway.KindTransport:
		utils.BadGateway(c, "Payment gateway is unreachable; the operation outcome is unknown", nil)
	default:
		utils.BadGateway(c, message, ge.Description)
	}
}
