package utils

// Friendly messages for the error codes Razorpay hands back on a failed
// checkout. Shown to the shopper on the retry page; the raw code and
// description still go to the logs.
var paymentErrorMessages = map[string]string{
	"BAD_REQUEST_ERROR":   "The payment could not be processed. Please check your details and try again.",
	"GATEWAY_ERROR":       "The payment gateway is having trouble right now. Please try again in a few minutes.",
	"SERVER_ERROR":        "Something went wrong while processing your payment. You have not been charged.",
	"PAYMENT_DECLINED":    "Your bank declined the payment. Please try another payment method.",
	"PAYMENT_CANCELLED":   "The payment was cancelled before it completed.",
	"PAYMENT_TIMED_OUT":   "The payment took too long and was not completed. Please try again.",
	"INSUFFICIENT_FUNDS":  "The payment was declined due to insufficient funds.",
	"CARD_EXPIRED":        "The card used for this payment has expired.",
	"INVALID_CVV":         "The card security code did not match. Please re-enter your card details.",
	"WEEKLY_LIMIT_PASSED": "This payment exceeds your bank's transaction limit.",
}

const defaultPaymentErrorMessage = "The payment did not go through. You have not been charged; please try again."

// FriendlyPaymentError maps a gateway error code to shopper-facing text.
func FriendlyPaymentError(code string) string {
	if msg, ok := paymentErrorMessages[code]; ok {
		return msg
	}
	return defaultPaymentErrorMessage
}
