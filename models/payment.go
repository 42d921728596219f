package models

import (
	"time"
)

// Payment status constants, mirroring the gateway's payment lifecycle.
const (
	PaymentStatusCreated    = "created"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusCaptured   = "captured"
	PaymentStatusFailed     = "failed"
	PaymentStatusPending    = "pending"
)

// Payment method constants.
const (
	PaymentMethodCard       = "card"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodWallet     = "wallet"
	PaymentMethodUPI        = "upi"
	PaymentMethodEMI        = "emi"
)

// PaymentRecord mirrors a Razorpay payment. The unique index on
// RazorpayPaymentID is the idempotency key: a replayed webhook updates the
// existing row in place instead of creating a duplicate.
type PaymentRecord struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	RazorpayPaymentID string     `gorm:"uniqueIndex" json:"razorpay_payment_id"`
	RazorpayOrderID   string     `gorm:"index" json:"razorpay_order_id"`
	AmountMinor       int64      `json:"amount_minor"`
	Currency          string     `json:"currency"`
	Method            string     `json:"method"` // card, netbanking, wallet, upi, emi
	Status            string     `json:"status"` // created, authorized, captured, failed, pending
	Bank              string     `json:"bank,omitempty"`
	WalletName        string     `json:"wallet_name,omitempty"`
	VPA               string     `json:"vpa,omitempty"`
	CardID            string     `json:"card_id,omitempty"`
	EMIMonths         int        `json:"emi_months,omitempty"`
	ErrorCode         string     `json:"error_code,omitempty"`
	ErrorDescription  string     `json:"error_description,omitempty"`
	CapturedAt        *time.Time `json:"captured_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
