package webhook

import (
	"net/http"
)

// Code is the reconciliation outcome reported to the HTTP layer.
type Code string

const (
	// ResultProcessed means the event was applied and state changed.
	ResultProcessed Code = "processed"
	// ResultIgnored covers unknown event types and idempotent replays.
	// Both are acknowledged with 200 so the sender stops retrying.
	ResultIgnored Code = "ignored"
	// ResultInvalidSignature means the delivery failed HMAC verification.
	ResultInvalidSignature Code = "invalid_signature"
	// ResultBadPayload means the body was not a parseable event envelope.
	ResultBadPayload Code = "bad_payload"
	// ResultOrderNotFound means the referenced gateway order is unknown here.
	ResultOrderNotFound Code = "order_not_found"
	// ResultPaymentNotFound means a refund event referenced a payment that
	// was never recorded here.
	ResultPaymentNotFound Code = "payment_not_found"
	// ResultAmountMismatch means the event's amount disagrees with the order.
	ResultAmountMismatch Code = "amount_mismatch"
	// ResultCurrencyMismatch means the event's currency disagrees with the order.
	ResultCurrencyMismatch Code = "currency_mismatch"
	// ResultInternalError means persistence failed; the sender should retry.
	ResultInternalError Code = "internal_error"
)

// Result is what HandleEvent returns. Detail is safe to log and echo; it
// never contains secrets.
type Result struct {
	Code      Code
	EventType string
	PaymentID string
	OrderID   string
	Detail    string
}

// HTTPStatus maps the outcome to the response status the webhook sender
// keys its retry behavior on.
func (r Result) HTTPStatus() int {
	switch r.Code {
	case ResultProcessed, ResultIgnored:
		return http.StatusOK
	case ResultInvalidSignature, ResultBadPayload, ResultAmountMismatch, ResultCurrencyMismatch:
		return http.StatusBadRequest
	case ResultOrderNotFound, ResultPaymentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
