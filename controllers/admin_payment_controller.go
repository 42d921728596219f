package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DikshantJo/ZwitchNew-sub000/config"
	"github.com/DikshantJo/ZwitchNew-sub000/gateway"
	"github.com/DikshantJo/ZwitchNew-sub000/models"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// GET /v1/admin/payments
func ListPayments(c *gin.Context) {
	utils.LogInfo("ListPayments called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.PaymentRecord{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.Add(24*time.Hour))
		}
	}

	query.Count(&pagination.Total)

	var payments []models.PaymentRecord
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&payments).Error; err != nil {
		utils.LogError("Failed to fetch payments: %v", err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}
	utils.LogInfo("Found %d payments", len(payments))

	items := make([]gin.H, len(payments))
	for i, p := range payments {
		items[i] = gin.H{
			"razorpay_payment_id": p.RazorpayPaymentID,
			"razorpay_order_id":   p.RazorpayOrderID,
			"amount":              p.AmountMinor,
			"amount_display":      fmt.Sprintf("%.2f %s", gateway.MajorUnits(p.AmountMinor, p.Currency), p.Currency),
			"currency":            p.Currency,
			"method":              p.Method,
			"status":              p.Status,
			"captured_at":         p.CapturedAt,
			"created_at":          p.CreatedAt,
		}
	}

	utils.SuccessWithPagination(c, "Payments retrieved successfully", gin.H{"payments": items}, pagination.Total, pagination.Page, pagination.Limit)
}

// GET /v1/admin/payments/:payment_id
//
// Merges the local record with the live state fetched from the gateway.
// The remote fetch failing does not hide the local record.
func GetPaymentDetail(c *gin.Context) {
	utils.LogInfo("GetPaymentDetail called")

	paymentID := c.Param("payment_id")
	if paymentID == "" {
		utils.BadRequest(c, "payment_id is required", nil)
		return
	}

	var payment models.PaymentRecord
	if err := config.DB.Where("razorpay_payment_id = ?", paymentID).First(&payment).Error; err != nil {
		utils.LogError("Payment %s not found: %v", paymentID, err)
		utils.NotFound(c, "Payment not found")
		return
	}

	resp := gin.H{"payment": payment}
	if payment.ErrorCode != "" {
		resp["error_message"] = utils.FriendlyPaymentError(payment.ErrorCode)
	}

	remote, err := gatewayClient.GetPaymentDetails(paymentID)
	if err != nil {
		utils.LogError("Failed to fetch remote payment %s: %v", paymentID, err)
		resp["gateway"] = gin.H{"available": false}
	} else {
		resp["gateway"] = gin.H{"available": true, "payment": remote}
	}

	var refunds []models.RefundRecord
	config.DB.Where("razorpay_payment_id = ?", paymentID).Order("created_at DESC").Find(&refunds)
	resp["refunds"] = refunds

	utils.Success(c, "Payment retrieved successfully", resp)
}

// POST /v1/admin/payments/:payment_id/capture
func CapturePayment(c *gin.Context) {
	utils.LogInfo("CapturePayment called")

	paymentID := c.Param("payment_id")

	var payment models.PaymentRecord
	if err := config.DB.Where("razorpay_payment_id = ?", paymentID).First(&payment).Error; err != nil {
		utils.LogError("Payment %s not found: %v", paymentID, err)
		utils.NotFound(c, "Payment not found")
		return
	}

	if payment.Status == models.PaymentStatusCaptured {
		utils.Success(c, "Payment is already captured", gin.H{"payment": payment})
		return
	}
	if payment.Status != models.PaymentStatusAuthorized {
		utils.LogError("Cannot capture payment %s in status %s", paymentID, payment.Status)
		utils.Conflict(c, "Only authorized payments can be captured", gin.H{"status": payment.Status})
		return
	}

	result, err := gatewayClient.CapturePayment(paymentID, gateway.MajorUnits(payment.AmountMinor, payment.Currency), payment.Currency)
	if err != nil {
		utils.LogError("Failed to capture payment %s: %v", paymentID, err)
		respondGatewayError(c, "Failed to capture payment", err)
		return
	}
	utils.LogInfo("Captured payment %s, status: %s", paymentID, result.Status)

	// The capture webhook will also arrive; recording here just makes the
	// dashboard consistent without waiting for it.
	payment.Status = result.Status
	if result.Status == models.PaymentStatusCaptured && payment.CapturedAt == nil {
		now := time.Now().UTC()
		payment.CapturedAt = &now
	}
	if err := config.DB.Save(&payment).Error; err != nil {
		utils.LogError("Failed to update payment %s after capture: %v", paymentID, err)
	}

	utils.Success(c, "Payment captured successfully", gin.H{"payment": payment})
}

// InitiateRefundRequest represents the refund request body
type InitiateRefundRequest struct {
	Amount float64           `json:"amount" binding:"omitempty,gt=0"`
	Notes  map[string]string `json:"notes"`
}

// POST /v1/admin/payments/:payment_id/refund
//
// Amount is optional; omitted means a full refund. Partial refunds above
// the captured amount are rejected by the gateway, not re-checked here.
func InitiateRefund(c *gin.Context) {
	utils.LogInfo("InitiateRefund called")

	paymentID := c.Param("payment_id")

	var req InitiateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var payment models.PaymentRecord
	if err := config.DB.Where("razorpay_payment_id = ?", paymentID).First(&payment).Error; err != nil {
		utils.LogError("Payment %s not found: %v", paymentID, err)
		utils.NotFound(c, "Payment not found")
		return
	}
	if payment.Status != models.PaymentStatusCaptured {
		utils.LogError("Cannot refund payment %s in status %s", paymentID, payment.Status)
		utils.Conflict(c, "Only captured payments can be refunded", gin.H{"status": payment.Status})
		return
	}

	amount := req.Amount
	if amount == 0 {
		amount = gateway.MajorUnits(payment.AmountMinor, payment.Currency)
	}

	result, err := gatewayClient.ProcessRefund(paymentID, amount, payment.Currency, req.Notes)
	if err != nil {
		utils.LogError("Failed to refund payment %s: %v", paymentID, err)
		respondGatewayError(c, "Failed to process refund", err)
		return
	}
	utils.LogInfo("Refund %s created for payment %s, status: %s", result.ID, paymentID, result.Status)

	refund := models.RefundRecord{
		RazorpayRefundID:  result.ID,
		RazorpayPaymentID: paymentID,
		AmountMinor:       result.AmountMinor,
		Status:            result.Status,
		Notes:             flattenNotes(req.Notes),
	}
	if err := config.DB.Create(&refund).Error; err != nil {
		utils.LogError("Failed to record refund %s: %v", result.ID, err)
		utils.InternalServerError(c, "Refund was created at the gateway but could not be recorded", err.Error())
		return
	}

	var order models.Order
	lookupErr := config.DB.
		Joins("JOIN payment_orders ON payment_orders.order_id = orders.id").
		Where("payment_orders.razorpay_order_id = ?", payment.RazorpayOrderID).
		First(&order).Error
	if lookupErr == nil && order.CustomerEmail != "" {
		go utils.SendRefundNotification(
			order.CustomerEmail,
			result.ID,
			fmt.Sprintf("%.2f %s", gateway.MajorUnits(result.AmountMinor, payment.Currency), payment.Currency),
		)
	}

	utils.Created(c, "Refund initiated successfully", gin.H{"refund": refund})
}

// GET /v1/admin/refunds/:refund_id
func GetRefundDetail(c *gin.Context) {
	utils.LogInfo("GetRefundDetail called")

	refundID := c.Param("refund_id")

	var refund models.RefundRecord
	if err := config.DB.Where("razorpay_refund_id = ?", refundID).First(&refund).Error; err != nil {
		utils.LogError("Refund %s not found: %v", refundID, err)
		utils.NotFound(c, "Refund not found")
		return
	}

	resp := gin.H{"refund": refund}
	remote, err := gatewayClient.GetRefundDetails(refundID)
	if err != nil {
		utils.LogError("Failed to fetch remote refund %s: %v", refundID, err)
		resp["gateway"] = gin.H{"available": false}
	} else {
		resp["gateway"] = gin.H{"available": true, "refund": remote}
	}

	utils.Success(c, "Refund retrieved successfully", resp)
}

func flattenNotes(notes map[string]string) string {
	if len(notes) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(notes))
	for k, v := range notes {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, "; ")
}
