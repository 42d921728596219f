package gateway

import (
	"time"
)

// OrderResult is the normalized view of a gateway order entity.
type OrderResult struct {
	ID          string            `json:"id"`
	AmountMinor int64             `json:"amount"`
	AmountPaid  int64             `json:"amount_paid"`
	AmountDue   int64             `json:"amount_due"`
	Currency    string            `json:"currency"`
	Receipt     string            `json:"receipt"`
	Status      string            `json:"status"` // created, attempted, paid
	Attempts    int               `json:"attempts"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// PaymentResult is the normalized view of a gateway payment entity.
type PaymentResult struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	AmountMinor int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Method      string     `json:"method"`
	Status      string     `json:"status"`
	Email       string     `json:"email,omitempty"`
	Contact     string     `json:"contact,omitempty"`
	Bank        string     `json:"bank,omitempty"`
	WalletName  string     `json:"wallet,omitempty"`
	VPA         string     `json:"vpa,omitempty"`
	CardID      string     `json:"card_id,omitempty"`
	EMIMonths   int        `json:"emi_months,omitempty"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
}

// RefundResult is the normalized view of a gateway refund entity.
type RefundResult struct {
	ID          string `json:"id"`
	PaymentID   string `json:"payment_id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// PaymentLinkResult is the normalized view of a gateway payment link.
type PaymentLinkResult struct {
	ID          string `json:"id"`
	ShortURL    string `json:"short_url"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// QRCodeResult is the normalized view of a gateway QR code.
type QRCodeResult struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	Status   string `json:"status"`
}

// ConnectivityResult reports the outcome of a gateway health probe.
type ConnectivityResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Map readers. The SDK hands back decoded JSON as map[string]interface{}
// with numbers as float64; these keep the shape-poking in one place.

func mapString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func mapInt64(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func mapNotes(m map[string]interface{}, key string) map[string]string {
	raw, ok := m[key].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	notes := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			notes[k] = s
		}
	}
	return notes
}

func mapTime(m map[string]interface{}, key string) *time.Time {
	ts := mapInt64(m, key)
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

func orderResultFromMap(m map[string]interface{}) OrderResult {
	return OrderResult{
		ID:          mapString(m, "id"),
		AmountMinor: mapInt64(m, "amount"),
		AmountPaid:  mapInt64(m, "amount_paid"),
		AmountDue:   mapInt64(m, "amount_due"),
		Currency:    mapString(m, "currency"),
		Receipt:     mapString(m, "receipt"),
		Status:      mapString(m, "status"),
		Attempts:    int(mapInt64(m, "attempts")),
		Notes:       mapNotes(m, "notes"),
	}
}

func paymentResultFromMap(m map[string]interface{}) PaymentResult {
	res := PaymentResult{
		ID:          mapString(m, "id"),
		OrderID:     mapString(m, "order_id"),
		AmountMinor: mapInt64(m, "amount"),
		Currency:    mapString(m, "currency"),
		Method:      mapString(m, "method"),
		Status:      mapString(m, "status"),
		Email:       mapString(m, "email"),
		Contact:     mapString(m, "contact"),
		Bank:        mapString(m, "bank"),
		WalletName:  mapString(m, "wallet"),
		VPA:         mapString(m, "vpa"),
		CardID:      mapString(m, "card_id"),
		EMIMonths:   int(mapInt64(m, "emi_duration")),
	}
	if res.Status == "captured" {
		res.CapturedAt = mapTime(m, "created_at")
	}
	return res
}

func refundResultFromMap(m map[string]interface{}) RefundResult {
	return RefundResult{
		ID:          mapString(m, "id"),
		PaymentID:   mapString(m, "payment_id"),
		AmountMinor: mapInt64(m, "amount"),
		Currency:    mapString(m, "currency"),
		Status:      mapString(m, "status"),
	}
}
