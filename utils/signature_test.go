package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func webhookSign(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyPaymentSignatureRoundTrip(t *testing.T) {
	secret := "test_secret"
	sig := SignPaymentCallback("order_1", "pay_1", secret)
	assert.True(t, VerifyPaymentSignature("order_1", "pay_1", sig, secret))
}

func TestVerifyPaymentSignatureRejectsTampering(t *testing.T) {
	secret := "test_secret"
	sig := SignPaymentCallback("order_1", "pay_1", secret)

	assert.False(t, VerifyPaymentSignature("order_2", "pay_1", sig, secret), "tampered order id")
	assert.False(t, VerifyPaymentSignature("order_1", "pay_2", sig, secret), "tampered payment id")
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", sig, "other_secret"), "tampered secret")

	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", string(tampered), secret), "tampered signature")
}

func TestVerifyPaymentSignatureFailsClosed(t *testing.T) {
	sig := SignPaymentCallback("order_1", "pay_1", "s")
	assert.False(t, VerifyPaymentSignature("", "pay_1", sig, "s"))
	assert.False(t, VerifyPaymentSignature("order_1", "", sig, "s"))
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "", "s"))
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", sig, ""))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec"
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)

	sig := webhookSign(body, secret)
	assert.True(t, VerifyWebhookSignature(body, sig, secret))

	// Any byte change in the body breaks verification; there is no
	// canonicalization step.
	reordered := []byte(`{"payload":{"payment":{"entity":{"id":"pay_1"}}},"event":"payment.captured"}`)
	assert.False(t, VerifyWebhookSignature(reordered, sig, secret))

	flipped := append([]byte(nil), body...)
	flipped[len(flipped)-1] ^= 0x01
	assert.False(t, VerifyWebhookSignature(flipped, sig, secret))

	assert.False(t, VerifyWebhookSignature(nil, sig, secret))
	assert.False(t, VerifyWebhookSignature(body, "", secret))
	assert.False(t, VerifyWebhookSignature(body, sig, ""))
}
