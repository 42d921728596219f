package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DikshantJo/ZwitchNew-sub000/config"
	"github.com/DikshantJo/ZwitchNew-sub000/gateway"
	"github.com/DikshantJo/ZwitchNew-sub000/models"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
	"github.com/DikshantJo/ZwitchNew-sub000/webhook"
)

// POST /v1/payments/checkout
func InitiateCheckout(c *gin.Context) {
	utils.LogInfo("InitiateCheckout called")

	var req struct {
		Amount        float64           `json:"amount" binding:"required,gt=0"`
		Currency      string            `json:"currency" binding:"required,len=3"`
		CustomerEmail string            `json:"customer_email" binding:"omitempty,email"`
		Notes         map[string]string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request: %v", err)
		utils.BadRequest(c, "Invalid request. amount and currency are required", err.Error())
		return
	}

	if !gatewayClient.IsConfigured() {
		utils.LogError("Checkout rejected: gateway not configured")
		utils.InternalServerError(c, "Payment gateway is not configured", nil)
		return
	}

	receipt := "rcpt_" + uuid.New().String()
	order := models.Order{
		Receipt:       receipt,
		AmountMinor:   gateway.MinorUnits(req.Amount, req.Currency),
		Currency:      req.Currency,
		Status:        models.OrderStatusPending,
		CustomerEmail: req.CustomerEmail,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		utils.LogError("Failed to create order for receipt %s: %v", receipt, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}
	utils.LogInfo("Created order ID: %d receipt: %s", order.ID, receipt)

	rzOrder, err := gatewayClient.CreateOrder(req.Amount, req.Currency, receipt, req.Notes)
	if err != nil {
		utils.LogError("Failed to create gateway order for receipt %s: %v", receipt, err)
		respondGatewayError(c, "Failed to create payment order", err)
		return
	}
	utils.LogInfo("Created gateway order %s for order ID: %d", rzOrder.ID, order.ID)

	paymentOrder := models.PaymentOrder{
		OrderID:         order.ID,
		RazorpayOrderID: rzOrder.ID,
		AmountMinor:     rzOrder.AmountMinor,
		Currency:        rzOrder.Currency,
		Receipt:         receipt,
		Status:          models.PaymentOrderStatusCreated,
		Notes:           req.Notes,
	}
	if err := config.DB.Create(&paymentOrder).Error; err != nil {
		utils.LogError("Failed to record gateway order %s: %v", rzOrder.ID, err)
		utils.InternalServerError(c, "Failed to record payment order", err.Error())
		return
	}

	utils.Created(c, "Checkout initiated", gin.H{
		"order_id":          order.ID,
		"receipt":           receipt,
		"razorpay_order_id": rzOrder.ID,
		"amount":            rzOrder.AmountMinor,
		"currency":          rzOrder.Currency,
		"amount_display":    fmt.Sprintf("%.2f", gateway.MajorUnits(rzOrder.AmountMinor, rzOrder.Currency)),
		"key":               gatewayClient.KeyID(),
	})
}

// POST /v1/payments/verify
//
// Success leg of the browser checkout. The signature proves the callback
// came from the gateway, but the payment's authoritative state is still
// re-fetched from the API before any local state changes.
func VerifyPaymentCallback(c *gin.Context) {
	utils.LogInfo("VerifyPaymentCallback called")

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !utils.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, appConfig.RazorpayKeySecret) {
		utils.LogError("Payment signature verification failed for order %s payment %s", req.RazorpayOrderID, req.RazorpayPaymentID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}
	utils.LogInfo("Payment signature verified for order %s", req.RazorpayOrderID)

	payment, err := gatewayClient.GetPaymentDetails(req.RazorpayPaymentID)
	if err != nil {
		utils.LogError("Failed to fetch payment %s after callback: %v", req.RazorpayPaymentID, err)
		respondGatewayError(c, "Could not confirm the payment with the gateway", err)
		return
	}

	var completedOrder models.Order
	err = orderStore.ReconcileOrder(c.Request.Context(), req.RazorpayOrderID, func(tx webhook.Tx, order *models.Order, po *models.PaymentOrder) error {
		if payment.Currency != order.Currency {
			return utils.ConflictError(fmt.Sprintf("payment currency %s does not match order currency %s", payment.Currency, order.Currency), nil)
		}
		if payment.AmountMinor != order.AmountMinor {
			return utils.ConflictError(fmt.Sprintf("payment amount %d does not match order amount %d", payment.AmountMinor, order.AmountMinor), nil)
		}

		record, err := tx.PaymentByRemoteID(payment.ID)
		if errors.Is(err, webhook.ErrNotFound) {
			record = &models.PaymentRecord{
				RazorpayPaymentID: payment.ID,
				RazorpayOrderID:   req.RazorpayOrderID,
			}
		} else if err != nil {
			return err
		}

		record.AmountMinor = payment.AmountMinor
		record.Currency = payment.Currency
		record.Method = payment.Method
		record.Bank = payment.Bank
		record.WalletName = payment.WalletName
		record.VPA = payment.VPA
		record.CardID = payment.CardID
		record.EMIMonths = payment.EMIMonths
		if record.Status != models.PaymentStatusCaptured {
			record.Status = payment.Status
		}
		if payment.Status == models.PaymentStatusCaptured && record.CapturedAt == nil {
			now := time.Now().UTC()
			record.CapturedAt = &now
		}
		if err := tx.SavePayment(record); err != nil {
			return utils.WrapError(err, "save payment record")
		}

		if payment.Status == models.PaymentStatusCaptured {
			if po.Status != models.PaymentOrderStatusPaid {
				po.Status = models.PaymentOrderStatusPaid
				if err := tx.SavePaymentOrder(po); err != nil {
					return err
				}
			}
			if order.CanTransition(models.OrderStatusProcessing) {
				order.Status = models.OrderStatusProcessing
				order.PaymentMethod = payment.Method
				if err := tx.SaveOrder(order); err != nil {
					return err
				}
			}
		} else if po.Status == models.PaymentOrderStatusCreated {
			po.Status = models.PaymentOrderStatusAttempted
			if err := tx.SavePaymentOrder(po); err != nil {
				return err
			}
		}

		completedOrder = *order
		return nil
	})
	if err != nil {
		if errors.Is(err, webhook.ErrNotFound) {
			utils.LogError("No local order for gateway order %s", req.RazorpayOrderID)
			utils.NotFound(c, "Order not found")
			return
		}
		utils.LogError("Failed to reconcile callback for order %s: %v", req.RazorpayOrderID, err)
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Conflict(c, "Payment could not be reconciled", appErr.Message)
			return
		}
		utils.InternalServerError(c, "Payment could not be reconciled", err.Error())
		return
	}

	if payment.Status == models.PaymentStatusCaptured && completedOrder.CustomerEmail != "" {
		go utils.SendPaymentConfirmation(
			completedOrder.CustomerEmail,
			completedOrder.Receipt,
			fmt.Sprintf("%.2f %s", gateway.MajorUnits(completedOrder.AmountMinor, completedOrder.Currency), completedOrder.Currency),
		)
	}

	utils.LogInfo("Payment %s reconciled for order %s, status: %s", payment.ID, req.RazorpayOrderID, payment.Status)
	utils.Success(c, "Thank you for your payment!", gin.H{
		"order_id":       completedOrder.ID,
		"receipt":        completedOrder.Receipt,
		"order_status":   completedOrder.Status,
		"payment_id":     payment.ID,
		"payment_status": payment.Status,
		"amount_display": fmt.Sprintf("%.2f %s", gateway.MajorUnits(completedOrder.AmountMinor, completedOrder.Currency), completedOrder.Currency),
	})
}

// POST /v1/payments/failure
//
// Failure leg of the browser checkout. Records the attempt and hands the
// shopper a friendly message; the order stays retryable.
func PaymentCallbackFailure(c *gin.Context) {
	utils.LogInfo("PaymentCallbackFailure called")

	var req struct {
		RazorpayOrderID  string `json:"razorpay_order_id"`
		ErrorCode        string `json:"error_code" binding:"required"`
		ErrorDescription string `json:"error_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid failure callback: %v", err)
		utils.BadRequest(c, "Invalid request. error_code is required", err.Error())
		return
	}
	utils.LogError("Checkout failed for order %s: %s - %s", req.RazorpayOrderID, req.ErrorCode, req.ErrorDescription)

	if req.RazorpayOrderID != "" {
		err := config.DB.Model(&models.PaymentOrder{}).
			Where("razorpay_order_id = ? AND status = ?", req.RazorpayOrderID, models.PaymentOrderStatusCreated).
			Update("status", models.PaymentOrderStatusAttempted).Error
		if err != nil {
			utils.LogError("Failed to mark order %s attempted: %v", req.RazorpayOrderID, err)
		}
	}

	utils.Success(c, "Payment failure recorded", gin.H{
		"message": utils.FriendlyPaymentError(req.ErrorCode),
		"retry":   true,
	})
}
