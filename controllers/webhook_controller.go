package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// POST /v1/webhooks/razorpay
//
// The body must be read raw before any JSON binding so the signature is
// checked over the exact bytes the gateway sent.
func HandleRazorpayWebhook(c *gin.Context) {
	utils.LogInfo("HandleRazorpayWebhook called")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Could not read request body"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	res := reconciler.HandleEvent(c.Request.Context(), body, signature)

	utils.LogInfo("Webhook %s result: %s (%s)", res.EventType, res.Code, res.Detail)
	c.JSON(res.HTTPStatus(), gin.H{
		"status":     res.Code,
		"event":      res.EventType,
		"payment_id": res.PaymentID,
		"detail":     res.Detail,
	})
}
