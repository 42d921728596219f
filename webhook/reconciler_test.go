package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DikshantJo/ZwitchNew-sub000/models"
)

const testSecret = "whsec_test"

func sign(body []byte) string {
	h := hmac.New(sha256.New, []byte(testSecret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// fakeStore is an in-memory Store with transactional semantics: writes
// staged inside fn are discarded when fn returns an error.
type fakeStore struct {
	orders        map[uint]*models.Order
	paymentOrders map[string]*models.PaymentOrder
	payments      map[string]*models.PaymentRecord
	refunds       map[string]*models.RefundRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:        map[uint]*models.Order{},
		paymentOrders: map[string]*models.PaymentOrder{},
		payments:      map[string]*models.PaymentRecord{},
		refunds:       map[string]*models.RefundRecord{},
	}
}

func (f *fakeStore) addOrder(rzOrderID string, amountMinor int64, currency, status string) {
	id := uint(len(f.orders) + 1)
	f.orders[id] = &models.Order{ID: id, Receipt: fmt.Sprintf("rcpt_%d", id), AmountMinor: amountMinor, Currency: currency, Status: status}
	f.paymentOrders[rzOrderID] = &models.PaymentOrder{
		ID: id, OrderID: id, RazorpayOrderID: rzOrderID,
		AmountMinor: amountMinor, Currency: currency,
		Status: models.PaymentOrderStatusCreated,
	}
}

func (f *fakeStore) ReconcileOrder(_ context.Context, razorpayOrderID string, fn func(tx Tx, order *models.Order, po *models.PaymentOrder) error) error {
	po, ok := f.paymentOrders[razorpayOrderID]
	if !ok {
		return ErrNotFound
	}
	order, ok := f.orders[po.OrderID]
	if !ok {
		return ErrNotFound
	}

	orderCopy := *order
	poCopy := *po
	tx := &fakeTx{store: f, stagedPayments: map[string]*models.PaymentRecord{}, stagedRefunds: map[string]*models.RefundRecord{}}
	if err := fn(tx, &orderCopy, &poCopy); err != nil {
		return err
	}

	*order = orderCopy
	*po = poCopy
	tx.commit()
	return nil
}

func (f *fakeStore) ReconcileRefund(_ context.Context, fn func(tx Tx) error) error {
	tx := &fakeTx{store: f, stagedPayments: map[string]*models.PaymentRecord{}, stagedRefunds: map[string]*models.RefundRecord{}}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type fakeTx struct {
	store          *fakeStore
	stagedPayments map[string]*models.PaymentRecord
	stagedRefunds  map[string]*models.RefundRecord
}

func (t *fakeTx) commit() {
	for id, p := range t.stagedPayments {
		t.store.payments[id] = p
	}
	for id, r := range t.stagedRefunds {
		t.store.refunds[id] = r
	}
}

func (t *fakeTx) PaymentByRemoteID(paymentID string) (*models.PaymentRecord, error) {
	if p, ok := t.stagedPayments[paymentID]; ok {
		cp := *p
		return &cp, nil
	}
	if p, ok := t.store.payments[paymentID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (t *fakeTx) RefundByRemoteID(refundID string) (*models.RefundRecord, error) {
	if r, ok := t.stagedRefunds[refundID]; ok {
		cp := *r
		return &cp, nil
	}
	if r, ok := t.store.refunds[refundID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (t *fakeTx) SaveOrder(*models.Order) error { return nil } // committed via copy-back

func (t *fakeTx) SavePaymentOrder(*models.PaymentOrder) error { return nil }

func (t *fakeTx) SavePayment(p *models.PaymentRecord) error {
	cp := *p
	t.stagedPayments[p.RazorpayPaymentID] = &cp
	return nil
}

func (t *fakeTx) SaveRefund(r *models.RefundRecord) error {
	cp := *r
	t.stagedRefunds[r.RazorpayRefundID] = &cp
	return nil
}

func capturedBody(paymentID, orderID string, amount int64, currency string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"%s","order_id":"%s","status":"captured","amount":%d,"currency":"%s","method":"upi","vpa":"shopper@upi"}}}}`,
		paymentID, orderID, amount, currency))
}

func TestHandleEventInvalidSignature(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	body := capturedBody("pay_1", "order_1", 100000, "INR")
	otherBody := capturedBody("pay_1", "order_1", 50000, "INR")

	// Signature computed over a different body than the one delivered.
	res := rec.HandleEvent(context.Background(), body, sign(otherBody))
	assert.Equal(t, ResultInvalidSignature, res.Code)
	assert.Equal(t, 400, res.HTTPStatus())
	assert.Empty(t, store.payments)
	assert.Equal(t, models.OrderStatusPending, store.orders[1].Status)

	res = rec.HandleEvent(context.Background(), body, "")
	assert.Equal(t, ResultInvalidSignature, res.Code)
}

func TestHandleEventBadPayload(t *testing.T) {
	rec := NewReconciler(newFakeStore(), testSecret)

	body := []byte(`{"not":"an event"}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultBadPayload, res.Code)

	body = []byte(`{{{`)
	res = rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultBadPayload, res.Code)
}

func TestHandleEventUnknownTypeIgnored(t *testing.T) {
	rec := NewReconciler(newFakeStore(), testSecret)

	body := []byte(`{"event":"invoice.expired","payload":{}}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultIgnored, res.Code)
	assert.Equal(t, 200, res.HTTPStatus())
}

func TestPaymentCapturedHappyPath(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	body := capturedBody("pay_1", "order_1", 100000, "INR")
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultProcessed, res.Code)
	assert.Equal(t, "pay_1", res.PaymentID)

	order := store.orders[1]
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "upi", order.PaymentMethod)
	assert.Equal(t, models.PaymentOrderStatusPaid, store.paymentOrders["order_1"].Status)

	payment := store.payments["pay_1"]
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusCaptured, payment.Status)
	assert.Equal(t, "shopper@upi", payment.VPA)
	require.NotNil(t, payment.CapturedAt)
}

func TestPaymentCapturedReplayIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	body := capturedBody("pay_1", "order_1", 100000, "INR")
	res := rec.HandleEvent(context.Background(), body, sign(body))
	require.Equal(t, ResultProcessed, res.Code)

	firstCapturedAt := store.payments["pay_1"].CapturedAt

	res = rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultIgnored, res.Code)
	assert.Equal(t, 200, res.HTTPStatus())

	assert.Len(t, store.payments, 1, "replay must not create a second PaymentRecord")
	assert.Equal(t, models.OrderStatusProcessing, store.orders[1].Status)
	assert.Equal(t, firstCapturedAt, store.payments["pay_1"].CapturedAt)
}

func TestPaymentCapturedAmountMismatch(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	// Order is 1000.00 INR, webhook claims 500.00 INR.
	body := capturedBody("pay_1", "order_1", 50000, "INR")
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultAmountMismatch, res.Code)
	assert.Equal(t, 400, res.HTTPStatus())
	assert.Empty(t, store.payments)
	assert.Equal(t, models.OrderStatusPending, store.orders[1].Status)
}

func TestPaymentCapturedCurrencyMismatch(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	body := capturedBody("pay_1", "order_1", 100000, "USD")
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultCurrencyMismatch, res.Code)
	assert.Empty(t, store.payments)
	assert.Equal(t, models.OrderStatusPending, store.orders[1].Status)
}

func TestPaymentCapturedUnknownOrder(t *testing.T) {
	rec := NewReconciler(newFakeStore(), testSecret)

	body := capturedBody("pay_1", "order_missing", 100000, "INR")
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultOrderNotFound, res.Code)
	assert.Equal(t, 404, res.HTTPStatus())
}

func TestOrderPaidCompletesOrder(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusProcessing)
	rec := NewReconciler(store, testSecret)

	body := []byte(`{"event":"order.paid","payload":{"order":{"entity":{"id":"order_1","amount":100000,"currency":"INR","status":"paid"}},"payment":{"entity":{"id":"pay_1","order_id":"order_1","amount":100000,"currency":"INR","method":"card","card_id":"card_77"}}}}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultProcessed, res.Code)
	assert.Equal(t, models.OrderStatusCompleted, store.orders[1].Status)
	assert.Equal(t, models.PaymentOrderStatusPaid, store.paymentOrders["order_1"].Status)
	payment := store.payments["pay_1"]
	require.NotNil(t, payment)
	assert.Equal(t, "card_77", payment.CardID)

	// Replay.
	res = rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultIgnored, res.Code)
	assert.Equal(t, models.OrderStatusCompleted, store.orders[1].Status)
}

func TestCompletedOrderNeverRegresses(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusCompleted)
	rec := NewReconciler(store, testSecret)

	// A late capture event with a fresh payment id must not move the order
	// back to processing.
	body := capturedBody("pay_late", "order_1", 100000, "INR")
	res := rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultProcessed, res.Code)
	assert.Equal(t, models.OrderStatusCompleted, store.orders[1].Status)

	// And a late failure event leaves it completed too.
	failed := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_x","order_id":"order_1","status":"failed","error_code":"BAD_REQUEST_ERROR"}}}}`)
	res = rec.HandleEvent(context.Background(), failed, sign(failed))
	assert.Equal(t, ResultProcessed, res.Code)
	assert.Equal(t, models.OrderStatusCompleted, store.orders[1].Status)
}

func TestPaymentFailedCancelsOrder(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","status":"failed","amount":100000,"currency":"INR","error_code":"BAD_REQUEST_ERROR","error_description":"Payment failed"}}}}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultProcessed, res.Code)
	assert.Equal(t, models.OrderStatusCancelled, store.orders[1].Status)
	payment := store.payments["pay_1"]
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "BAD_REQUEST_ERROR", payment.ErrorCode)

	// Replaying the failure is idempotent.
	res = rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultIgnored, res.Code)
	assert.Equal(t, models.OrderStatusCancelled, store.orders[1].Status)
}

func TestPaymentAuthorizedRecordsAttempt(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusPending)
	rec := NewReconciler(store, testSecret)

	body := []byte(`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","status":"authorized","amount":100000,"currency":"INR","method":"card"}}}}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultProcessed, res.Code)
	// Authorization alone does not move the order; capture is outstanding.
	assert.Equal(t, models.OrderStatusPending, store.orders[1].Status)
	assert.Equal(t, models.PaymentOrderStatusAttempted, store.paymentOrders["order_1"].Status)
	assert.Equal(t, models.PaymentStatusAuthorized, store.payments["pay_1"].Status)

	// Capture then supersedes it; a replayed authorized event afterwards
	// must not walk the payment backwards.
	capture := capturedBody("pay_1", "order_1", 100000, "INR")
	res = rec.HandleEvent(context.Background(), capture, sign(capture))
	require.Equal(t, ResultProcessed, res.Code)

	res = rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultIgnored, res.Code)
	assert.Equal(t, models.PaymentStatusCaptured, store.payments["pay_1"].Status)
}

func TestRefundProcessed(t *testing.T) {
	store := newFakeStore()
	store.addOrder("order_1", 100000, "INR", models.OrderStatusCompleted)
	store.payments["pay_1"] = &models.PaymentRecord{
		RazorpayPaymentID: "pay_1", RazorpayOrderID: "order_1",
		AmountMinor: 100000, Currency: "INR", Status: models.PaymentStatusCaptured,
	}
	rec := NewReconciler(store, testSecret)

	body := []byte(`{"event":"refund.processed","payload":{"refund":{"entity":{"id":"rfnd_1","payment_id":"pay_1","amount":100000,"status":"processed"}}}}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultProcessed, res.Code)
	refund := store.refunds["rfnd_1"]
	require.NotNil(t, refund)
	assert.Equal(t, models.RefundStatusProcessed, refund.Status)
	assert.Equal(t, int64(100000), refund.AmountMinor)

	// Refund bookkeeping never changes the order's primary state.
	assert.Equal(t, models.OrderStatusCompleted, store.orders[1].Status)

	// Replay against the terminal refund is ignored.
	res = rec.HandleEvent(context.Background(), body, sign(body))
	assert.Equal(t, ResultIgnored, res.Code)
	assert.Len(t, store.refunds, 1)
}

func TestRefundProcessedUnknownPayment(t *testing.T) {
	rec := NewReconciler(newFakeStore(), testSecret)

	body := []byte(`{"event":"refund.processed","payload":{"refund":{"entity":{"id":"rfnd_1","payment_id":"pay_missing","amount":100,"status":"processed"}}}}`)
	res := rec.HandleEvent(context.Background(), body, sign(body))

	assert.Equal(t, ResultPaymentNotFound, res.Code)
	assert.Equal(t, "pay_missing", res.PaymentID)
	assert.Equal(t, 404, res.HTTPStatus())
}
