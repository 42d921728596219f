package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DikshantJo/ZwitchNew-sub000/webhook"
)

const webhookTestSecret = "whsec_controller_test"

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookTestSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// The store is only reached after signature and payload checks pass,
	// so these handler-level tests never need a database.
	reconciler = webhook.NewReconciler(webhook.NewGormStore(nil), webhookTestSecret)

	router := gin.New()
	router.POST("/v1/webhooks/razorpay", HandleRazorpayWebhook)
	return router
}

func postWebhook(t *testing.T, router *gin.Engine, body []byte, signature string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/razorpay", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	router := newWebhookTestRouter()

	body := []byte(`{"event":"payment.captured","payload":{}}`)
	w, resp := postWebhook(t, router, body, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(webhook.ResultInvalidSignature), resp["status"])
}

func TestWebhookRejectsTamperedBody(t *testing.T) {
	router := newWebhookTestRouter()

	body := []byte(`{"event":"payment.captured","payload":{}}`)
	sig := signBody(body)
	tampered := []byte(`{"event":"payment.captured","payload":{"x":1}}`)

	w, resp := postWebhook(t, router, tampered, sig)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(webhook.ResultInvalidSignature), resp["status"])
}

func TestWebhookAcknowledgesUnknownEventType(t *testing.T) {
	router := newWebhookTestRouter()

	body := []byte(`{"event":"invoice.expired","payload":{}}`)
	w, resp := postWebhook(t, router, body, signBody(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(webhook.ResultIgnored), resp["status"])
	assert.Equal(t, "invoice.expired", resp["event"])
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	router := newWebhookTestRouter()

	body := []byte(`{"event":`)
	w, resp := postWebhook(t, router, body, signBody(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(webhook.ResultBadPayload), resp["status"])
}
