package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyPaymentErrorKnownCodes(t *testing.T) {
	assert.NotEmpty(t, FriendlyPaymentError("PAYMENT_DECLINED"))
	assert.NotEqual(t, FriendlyPaymentError("PAYMENT_DECLINED"), FriendlyPaymentError("INSUFFICIENT_FUNDS"))
}

func TestFriendlyPaymentErrorFallback(t *testing.T) {
	msg := FriendlyPaymentError("SOMETHING_NEW")
	assert.NotEmpty(t, msg)
	// Raw gateway codes are never shown to shoppers.
	assert.NotContains(t, msg, "SOMETHING_NEW")
	assert.Equal(t, msg, FriendlyPaymentError(""))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("abc"))
	assert.Equal(t, "rzp_****", MaskSecret("rzp_test_1234567890"))
}
