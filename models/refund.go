package models

import (
	"time"
)

// Refund status constants.
const (
	RefundStatusCreated   = "created"
	RefundStatusPending   = "pending"
	RefundStatusProcessed = "processed"
	RefundStatusFailed    = "failed"
)

// RefundRecord mirrors a Razorpay refund, keyed by the remote refund id.
// Once Status reaches processed or failed the row is not updated again.
type RefundRecord struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	RazorpayRefundID  string    `gorm:"uniqueIndex" json:"razorpay_refund_id"`
	RazorpayPaymentID string    `gorm:"index" json:"razorpay_payment_id"`
	AmountMinor       int64     `json:"amount_minor"`
	Status            string    `json:"status"` // created, pending, processed, failed
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsTerminal reports whether the refund has reached a final state.
func (r *RefundRecord) IsTerminal() bool {
	return r.Status == RefundStatusProcessed || r.Status == RefundStatusFailed
}
