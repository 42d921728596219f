package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is the local commerce order a checkout is collecting payment for.
// Reconciliation is the only writer of Status once payment has been initiated.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Receipt       string    `gorm:"uniqueIndex" json:"receipt"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsTerminal reports whether the order has reached a final state.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// CanTransition reports whether the order may move to the given status.
// pending -> processing -> completed, or pending/processing -> cancelled.
// Nothing leaves completed or cancelled.
func (o *Order) CanTransition(to string) bool {
	if o.Status == to {
		return false
	}
	switch o.Status {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCompleted || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	}
	return false
}
