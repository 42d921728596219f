package gateway

import (
	"fmt"
)

// Client is a thin wrapper over the Razorpay SDK. Every operation is a
// single synchronous request; the client never retries internally, callers
// decide that based on the error Kind.
type Client struct {
	cfg Config
	api api
}

// NewClient builds a client for the configured gateway account.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, api: newSDKAPI(cfg)}
}

// IsConfigured reports whether the client holds usable credentials.
func (c *Client) IsConfigured() bool {
	return c.cfg.IsConfigured()
}

// KeyID returns the public key id handed to the browser checkout widget.
func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

func (c *Client) checkConfigured(op string) *Error {
	if !c.cfg.IsConfigured() {
		return &Error{Kind: KindAuth, Op: op, Description: "gateway credentials not configured"}
	}
	return nil
}

// CreateOrder creates a gateway order for the given major-unit amount.
// The amount is converted to minor units before transmission.
func (c *Client) CreateOrder(amount float64, currency, receipt string, notes map[string]string) (OrderResult, error) {
	const op = "create order"
	if err := c.checkConfigured(op); err != nil {
		return OrderResult{}, err
	}
	if !c.cfg.AcceptsCurrency(currency) {
		return OrderResult{}, &Error{Kind: KindValidation, Op: op,
			Description: fmt.Sprintf("currency %s is not enabled for this account", currency)}
	}
	if c.cfg.MinOrderAmount > 0 && amount < c.cfg.MinOrderAmount {
		return OrderResult{}, &Error{Kind: KindValidation, Op: op,
			Description: fmt.Sprintf("amount %.2f is below the minimum order amount %.2f", amount, c.cfg.MinOrderAmount)}
	}
	if c.cfg.MaxOrderAmount > 0 && amount > c.cfg.MaxOrderAmount {
		return OrderResult{}, &Error{Kind: KindValidation, Op: op,
			Description: fmt.Sprintf("amount %.2f is above the maximum order amount %.2f", amount, c.cfg.MaxOrderAmount)}
	}

	data := map[string]interface{}{
		"amount":          MinorUnits(amount, currency),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		noteData := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}

	res, err := c.api.createOrder(data)
	if err != nil {
		return OrderResult{}, classify(op, err)
	}
	return orderResultFromMap(res), nil
}

// GetOrderDetails fetches a gateway order by its remote id.
func (c *Client) GetOrderDetails(orderID string) (OrderResult, error) {
	const op = "fetch order"
	if err := c.checkConfigured(op); err != nil {
		return OrderResult{}, err
	}
	res, err := c.api.fetchOrder(orderID)
	if err != nil {
		return OrderResult{}, classify(op, err)
	}
	return orderResultFromMap(res), nil
}

// GetPaymentDetails fetches a gateway payment by its remote id.
func (c *Client) GetPaymentDetails(paymentID string) (PaymentResult, error) {
	const op = "fetch payment"
	if err := c.checkConfigured(op); err != nil {
		return PaymentResult{}, err
	}
	res, err := c.api.fetchPayment(paymentID)
	if err != nil {
		return PaymentResult{}, classify(op, err)
	}
	return paymentResultFromMap(res), nil
}

// CapturePayment captures an authorized payment for the given major-unit
// amount.
func (c *Client) CapturePayment(paymentID string, amount float64, currency string) (PaymentResult, error) {
	const op = "capture payment"
	if err := c.checkConfigured(op); err != nil {
		return PaymentResult{}, err
	}
	data := map[string]interface{}{"currency": currency}
	res, err := c.api.capturePayment(paymentID, int(MinorUnits(amount, currency)), data)
	if err != nil {
		return PaymentResult{}, classify(op, err)
	}
	return paymentResultFromMap(res), nil
}

// ProcessRefund initiates a refund against a captured payment.
func (c *Client) ProcessRefund(paymentID string, amount float64, currency string, notes map[string]string) (RefundResult, error) {
	const op = "process refund"
	if err := c.checkConfigured(op); err != nil {
		return RefundResult{}, err
	}
	data := map[string]interface{}{}
	if len(notes) > 0 {
		noteData := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}
	res, err := c.api.refundPayment(paymentID, int(MinorUnits(amount, currency)), data)
	if err != nil {
		return RefundResult{}, classify(op, err)
	}
	return refundResultFromMap(res), nil
}

// GetRefundDetails fetches a gateway refund by its remote id.
func (c *Client) GetRefundDetails(refundID string) (RefundResult, error) {
	const op = "fetch refund"
	if err := c.checkConfigured(op); err != nil {
		return RefundResult{}, err
	}
	res, err := c.api.fetchRefund(refundID)
	if err != nil {
		return RefundResult{}, classify(op, err)
	}
	return refundResultFromMap(res), nil
}

// CreatePaymentLink creates a hosted payment link for the given amount.
func (c *Client) CreatePaymentLink(amount float64, currency, description string, notes map[string]string) (PaymentLinkResult, error) {
	const op = "create payment link"
	if err := c.checkConfigured(op); err != nil {
		return PaymentLinkResult{}, err
	}
	if !c.cfg.AcceptsCurrency(currency) {
		return PaymentLinkResult{}, &Error{Kind: KindValidation, Op: op,
			Description: fmt.Sprintf("currency %s is not enabled for this account", currency)}
	}
	data := map[string]interface{}{
		"amount":      MinorUnits(amount, currency),
		"currency":    currency,
		"description": description,
	}
	if len(notes) > 0 {
		noteData := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}
	res, err := c.api.createPaymentLink(data)
	if err != nil {
		return PaymentLinkResult{}, classify(op, err)
	}
	return PaymentLinkResult{
		ID:          mapString(res, "id"),
		ShortURL:    mapString(res, "short_url"),
		AmountMinor: mapInt64(res, "amount"),
		Currency:    mapString(res, "currency"),
		Status:      mapString(res, "status"),
	}, nil
}

// CreateQRCode creates a UPI QR code accepting a single payment of the
// given amount.
func (c *Client) CreateQRCode(amount float64, currency, description string) (QRCodeResult, error) {
	const op = "create qr code"
	if err := c.checkConfigured(op); err != nil {
		return QRCodeResult{}, err
	}
	data := map[string]interface{}{
		"type":           "upi_qr",
		"usage":          "single_use",
		"fixed_amount":   true,
		"payment_amount": MinorUnits(amount, currency),
		"description":    description,
	}
	res, err := c.api.createQRCode(data)
	if err != nil {
		return QRCodeResult{}, classify(op, err)
	}
	return QRCodeResult{
		ID:       mapString(res, "id"),
		ImageURL: mapString(res, "image_url"),
		Status:   mapString(res, "status"),
	}, nil
}

// TestConnectivity issues a lightweight read-only call and classifies the
// outcome, distinguishing credential problems from network faults.
func (c *Client) TestConnectivity() ConnectivityResult {
	const op = "connectivity check"
	if !c.cfg.IsConfigured() {
		return ConnectivityResult{Success: false, Message: "gateway credentials not configured"}
	}
	_, err := c.api.listOrders(map[string]interface{}{"count": 1})
	if err == nil {
		return ConnectivityResult{Success: true, Message: "gateway reachable and credentials accepted"}
	}
	ge := classify(op, err)
	switch ge.Kind {
	case KindAuth:
		return ConnectivityResult{Success: false, Message: "gateway reachable but credentials were rejected"}
	case KindTransport:
		return ConnectivityResult{Success: false, Message: fmt.Sprintf("gateway unreachable: %v", ge.Err)}
	default:
		return ConnectivityResult{Success: false, Message: ge.Error()}
	}
}

// newTestClient wires a stub gateway in place of the SDK. Used by tests.
func newTestClient(cfg Config, stub api) *Client {
	return &Client{cfg: cfg, api: stub}
}
