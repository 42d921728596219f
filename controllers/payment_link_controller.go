package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// CreatePaymentLinkRequest represents the payment link request body
type CreatePaymentLinkRequest struct {
	Amount      float64           `json:"amount" binding:"required,gt=0"`
	Currency    string            `json:"currency" binding:"required,len=3"`
	Description string            `json:"description" binding:"required"`
	Notes       map[string]string `json:"notes"`
}

// POST /v1/admin/payment-links
func CreatePaymentLink(c *gin.Context) {
	utils.LogInfo("CreatePaymentLink called")

	var req CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	link, err := gatewayClient.CreatePaymentLink(req.Amount, req.Currency, req.Description, req.Notes)
	if err != nil {
		utils.LogError("Failed to create payment link: %v", err)
		respondGatewayError(c, "Failed to create payment link", err)
		return
	}
	utils.LogInfo("Created payment link %s", link.ID)

	utils.Created(c, "Payment link created successfully", gin.H{
		"id":        link.ID,
		"short_url": link.ShortURL,
		"amount":    link.AmountMinor,
		"currency":  link.Currency,
		"status":    link.Status,
	})
}

// CreateQRCodeRequest represents the QR code request body
type CreateQRCodeRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required,len=3"`
	Description string  `json:"description"`
}

// POST /v1/admin/qr-codes
func CreateQRCode(c *gin.Context) {
	utils.LogInfo("CreateQRCode called")

	var req CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	qr, err := gatewayClient.CreateQRCode(req.Amount, req.Currency, req.Description)
	if err != nil {
		utils.LogError("Failed to create QR code: %v", err)
		respondGatewayError(c, "Failed to create QR code", err)
		return
	}
	utils.LogInfo("Created QR code %s", qr.ID)

	utils.Created(c, "QR code created successfully", gin.H{
		"id":        qr.ID,
		"image_url": qr.ImageURL,
		"status":    qr.Status,
	})
}
