package webhook

import (
	"encoding/json"
	"errors"
)

// Event types this service reconciles. Anything else is acknowledged and
// ignored so new remote event types never bounce deliveries.
const (
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentCaptured   = "payment.captured"
	EventPaymentFailed     = "payment.failed"
	EventOrderPaid         = "order.paid"
	EventRefundProcessed   = "refund.processed"
)

// Event is one inbound webhook delivery. It lives only for the duration of
// the request; RawBody keeps the exact bytes the signature was computed over.
type Event struct {
	Type      string
	Payload   payload
	RawBody   []byte
	Signature string
}

type payload struct {
	Payment *entityWrapper `json:"payment,omitempty"`
	Order   *entityWrapper `json:"order,omitempty"`
	Refund  *entityWrapper `json:"refund,omitempty"`
}

type entityWrapper struct {
	Entity Entity `json:"entity"`
}

// Entity carries the fields of the payment/order/refund entity this service
// acts on. Amounts are in the gateway's minor units.
type Entity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	PaymentID        string `json:"payment_id"`
	AmountMinor      int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Method           string `json:"method"`
	Bank             string `json:"bank"`
	WalletName       string `json:"wallet"`
	VPA              string `json:"vpa"`
	CardID           string `json:"card_id"`
	EMIMonths        int    `json:"emi_duration"`
	Email            string `json:"email"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Receipt          string `json:"receipt"`
}

type envelope struct {
	Event   string  `json:"event"`
	Payload payload `json:"payload"`
}

var errBadPayload = errors.New("webhook payload is not a valid event envelope")

// ParseEvent decodes the webhook envelope without canonicalizing the raw
// bytes; RawBody keeps them untouched for signature verification.
func ParseEvent(rawBody []byte, signature string) (*Event, error) {
	var env envelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return nil, errBadPayload
	}
	if env.Event == "" {
		return nil, errBadPayload
	}
	return &Event{
		Type:      env.Event,
		Payload:   env.Payload,
		RawBody:   rawBody,
		Signature: signature,
	}, nil
}

// PaymentEntity returns the payment entity of the event, if present.
func (e *Event) PaymentEntity() *Entity {
	if e.Payload.Payment == nil {
		return nil
	}
	return &e.Payload.Payment.Entity
}

// OrderEntity returns the order entity of the event, if present.
func (e *Event) OrderEntity() *Entity {
	if e.Payload.Order == nil {
		return nil
	}
	return &e.Payload.Order.Entity
}

// RefundEntity returns the refund entity of the event, if present.
func (e *Event) RefundEntity() *Entity {
	if e.Payload.Refund == nil {
		return nil
	}
	return &e.Payload.Refund.Entity
}
