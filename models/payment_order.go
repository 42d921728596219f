package models

import (
	"time"
)

// PaymentOrder status constants, mirroring the gateway's order lifecycle.
const (
	PaymentOrderStatusCreated   = "created"
	PaymentOrderStatusAttempted = "attempted"
	PaymentOrderStatusPaid      = "paid"
)

// PaymentOrder mirrors a Razorpay order created at checkout. Rows are never
// deleted; they are the audit trail for every payment attempt.
type PaymentOrder struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	OrderID         uint              `json:"order_id"`
	RazorpayOrderID string            `gorm:"uniqueIndex" json:"razorpay_order_id"`
	AmountMinor     int64             `json:"amount_minor"`
	Currency        string            `json:"currency"`
	Receipt         string            `json:"receipt"`
	Status          string            `json:"status"` // created, attempted, paid
	Notes           map[string]string `gorm:"serializer:json" json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
