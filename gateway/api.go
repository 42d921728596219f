package gateway

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// api is the slice of the Razorpay SDK the client uses. Tests substitute a
// stub gateway; production wires the real SDK through sdkAPI.
type api interface {
	createOrder(data map[string]interface{}) (map[string]interface{}, error)
	fetchOrder(orderID string) (map[string]interface{}, error)
	listOrders(options map[string]interface{}) (map[string]interface{}, error)
	fetchPayment(paymentID string) (map[string]interface{}, error)
	capturePayment(paymentID string, amountMinor int, data map[string]interface{}) (map[string]interface{}, error)
	refundPayment(paymentID string, amountMinor int, data map[string]interface{}) (map[string]interface{}, error)
	fetchRefund(refundID string) (map[string]interface{}, error)
	createPaymentLink(data map[string]interface{}) (map[string]interface{}, error)
	createQRCode(data map[string]interface{}) (map[string]interface{}, error)
}

type sdkAPI struct {
	rz *razorpay.Client
}

func newSDKAPI(cfg Config) *sdkAPI {
	rz := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	if cfg.TimeoutSeconds > 0 {
		// The SDK takes the timeout as int16 seconds.
		rz.SetTimeout(int16(cfg.TimeoutSeconds))
	}
	return &sdkAPI{rz: rz}
}

func (s *sdkAPI) createOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return s.rz.Order.Create(data, nil)
}

func (s *sdkAPI) fetchOrder(orderID string) (map[string]interface{}, error) {
	return s.rz.Order.Fetch(orderID, nil, nil)
}

func (s *sdkAPI) listOrders(options map[string]interface{}) (map[string]interface{}, error) {
	return s.rz.Order.All(options, nil)
}

func (s *sdkAPI) fetchPayment(paymentID string) (map[string]interface{}, error) {
	return s.rz.Payment.Fetch(paymentID, nil, nil)
}

func (s *sdkAPI) capturePayment(paymentID string, amountMinor int, data map[string]interface{}) (map[string]interface{}, error) {
	return s.rz.Payment.Capture(paymentID, amountMinor, data, nil)
}

func (s *sdkAPI) refundPayment(paymentID string, amountMinor int, data map[string]interface{}) (map[string]interface{}, error) {
	return s.rz.Payment.Refund(paymentID, amountMinor, data, nil)
}

func (s *sdkAPI) fetchRefund(refundID string) (map[string]interface{}, error) {
	return s.rz.Refund.Fetch(refundID, nil, nil)
}

func (s *sdkAPI) createPaymentLink(data map[string]interface{}) (map[string]interface{}, error) {
	return s.rz.PaymentLink.Create(data, nil)
}

func (s *sdkAPI) createQRCode(data map[string]interface{}) (map[string]interface{}, error) {
	return s.rz.QrCode.Create(data, nil)
}
