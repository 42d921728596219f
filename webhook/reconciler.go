package webhook

import (
	"context"
	"errors"
	"time"

	"github.com/DikshantJo/ZwitchNew-sub000/models"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// Sentinels carried out of the reconciliation transaction so the outcome
// can be mapped to a Result. Each rolls the transaction back; validation
// failures never leave partial writes behind.
var (
	errAlreadyProcessed = errors.New("event already applied for this payment id")
	errAmountMismatch   = errors.New("event amount does not match order amount")
	errCurrencyMismatch = errors.New("event currency does not match order currency")
	errPaymentNotFound  = errors.New("no local payment for this event")
)

// Reconciler applies webhook events to local payment state. One instance is
// shared by all requests; it holds no per-request state.
type Reconciler struct {
	store         Store
	webhookSecret string
}

// NewReconciler builds a reconciler over the given store. The secret is the
// webhook signing secret configured in the gateway dashboard, not the API
// key secret.
func NewReconciler(store Store, webhookSecret string) *Reconciler {
	return &Reconciler{store: store, webhookSecret: webhookSecret}
}

// HandleEvent verifies, parses and applies one webhook delivery. It never
// mutates state on a failed validation, and replaying an already-applied
// event is a no-op reported as ResultIgnored.
func (r *Reconciler) HandleEvent(ctx context.Context, rawBody []byte, signature string) Result {
	if !utils.VerifyWebhookSignature(rawBody, signature, r.webhookSecret) {
		utils.LogError("Webhook rejected: signature verification failed")
		return Result{Code: ResultInvalidSignature, Detail: "signature verification failed"}
	}

	event, err := ParseEvent(rawBody, signature)
	if err != nil {
		utils.LogError("Webhook rejected: %v", err)
		return Result{Code: ResultBadPayload, Detail: err.Error()}
	}
	utils.LogInfo("Webhook received: %s", event.Type)

	switch event.Type {
	case EventPaymentAuthorized:
		return r.applyPayment(ctx, event, models.PaymentStatusAuthorized)
	case EventPaymentCaptured:
		return r.applyPayment(ctx, event, models.PaymentStatusCaptured)
	case EventOrderPaid:
		return r.applyOrderPaid(ctx, event)
	case EventPaymentFailed:
		return r.applyPaymentFailed(ctx, event)
	case EventRefundProcessed:
		return r.applyRefundProcessed(ctx, event)
	default:
		// Unknown event types are acknowledged so the sender does not
		// retry them forever.
		utils.LogInfo("Webhook ignored: unhandled event type %s", event.Type)
		return Result{Code: ResultIgnored, EventType: event.Type, Detail: "event type not handled"}
	}
}

// applyPayment handles payment.authorized and payment.captured.
// Captured moves the order to processing; authorized only records the
// payment attempt while capture is still outstanding.
func (r *Reconciler) applyPayment(ctx context.Context, event *Event, paymentStatus string) Result {
	ent := event.PaymentEntity()
	if ent == nil || ent.ID == "" || ent.OrderID == "" {
		return Result{Code: ResultBadPayload, EventType: event.Type, Detail: "payment entity missing id or order_id"}
	}

	res := Result{EventType: event.Type, PaymentID: ent.ID, OrderID: ent.OrderID}
	err := r.store.ReconcileOrder(ctx, ent.OrderID, func(tx Tx, order *models.Order, po *models.PaymentOrder) error {
		if ent.Currency != order.Currency {
			return errCurrencyMismatch
		}
		if ent.AmountMinor != order.AmountMinor {
			return errAmountMismatch
		}

		payment, err := tx.PaymentByRemoteID(ent.ID)
		switch {
		case err == nil:
			if payment.Status == paymentStatus {
				return errAlreadyProcessed
			}
			if payment.Status == models.PaymentStatusCaptured && paymentStatus == models.PaymentStatusAuthorized {
				// Captured already superseded authorized; out-of-order
				// delivery must not walk the payment backwards.
				return errAlreadyProcessed
			}
		case errors.Is(err, ErrNotFound):
			payment = &models.PaymentRecord{
				RazorpayPaymentID: ent.ID,
				RazorpayOrderID:   ent.OrderID,
			}
		default:
			return err
		}

		payment.AmountMinor = ent.AmountMinor
		payment.Currency = ent.Currency
		payment.Status = paymentStatus
		applyMethodDetails(payment, ent)
		if paymentStatus == models.PaymentStatusCaptured {
			now := time.Now().UTC()
			payment.CapturedAt = &now
		}
		if err := tx.SavePayment(payment); err != nil {
			return err
		}

		switch paymentStatus {
		case models.PaymentStatusAuthorized:
			if po.Status == models.PaymentOrderStatusCreated {
				po.Status = models.PaymentOrderStatusAttempted
				if err := tx.SavePaymentOrder(po); err != nil {
					return err
				}
			}
		case models.PaymentStatusCaptured:
			if po.Status != models.PaymentOrderStatusPaid {
				po.Status = models.PaymentOrderStatusPaid
				if err := tx.SavePaymentOrder(po); err != nil {
					return err
				}
			}
			if order.CanTransition(models.OrderStatusProcessing) {
				order.Status = models.OrderStatusProcessing
				order.PaymentMethod = ent.Method
				if err := tx.SaveOrder(order); err != nil {
					return err
				}
			}
		}
		return nil
	})
	return r.finish(res, err)
}

// applyOrderPaid handles order.paid, the terminal confirmation that the
// gateway order is fully paid.
func (r *Reconciler) applyOrderPaid(ctx context.Context, event *Event) Result {
	ent := event.OrderEntity()
	if ent == nil || ent.ID == "" {
		return Result{Code: ResultBadPayload, EventType: event.Type, Detail: "order entity missing id"}
	}
	payEnt := event.PaymentEntity()

	res := Result{EventType: event.Type, OrderID: ent.ID}
	if payEnt != nil {
		res.PaymentID = payEnt.ID
	}
	err := r.store.ReconcileOrder(ctx, ent.ID, func(tx Tx, order *models.Order, po *models.PaymentOrder) error {
		if ent.Currency != "" && ent.Currency != order.Currency {
			return errCurrencyMismatch
		}
		if ent.AmountMinor != 0 && ent.AmountMinor != order.AmountMinor {
			return errAmountMismatch
		}
		if order.Status == models.OrderStatusCompleted {
			return errAlreadyProcessed
		}
		if !order.CanTransition(models.OrderStatusCompleted) {
			return errAlreadyProcessed
		}

		if payEnt != nil && payEnt.ID != "" {
			payment, err := tx.PaymentByRemoteID(payEnt.ID)
			if errors.Is(err, ErrNotFound) {
				payment = &models.PaymentRecord{
					RazorpayPaymentID: payEnt.ID,
					RazorpayOrderID:   ent.ID,
					AmountMinor:       payEnt.AmountMinor,
					Currency:          payEnt.Currency,
				}
			} else if err != nil {
				return err
			}
			if payment.Status != models.PaymentStatusCaptured {
				payment.Status = models.PaymentStatusCaptured
				now := time.Now().UTC()
				payment.CapturedAt = &now
			}
			applyMethodDetails(payment, payEnt)
			if err := tx.SavePayment(payment); err != nil {
				return err
			}
			order.PaymentMethod = payEnt.Method
		}

		if po.Status != models.PaymentOrderStatusPaid {
			po.Status = models.PaymentOrderStatusPaid
			if err := tx.SavePaymentOrder(po); err != nil {
				return err
			}
		}
		order.Status = models.OrderStatusCompleted
		return tx.SaveOrder(order)
	})
	return r.finish(res, err)
}

// applyPaymentFailed records the failure and cancels the order unless it
// already reached a terminal state.
func (r *Reconciler) applyPaymentFailed(ctx context.Context, event *Event) Result {
	ent := event.PaymentEntity()
	if ent == nil || ent.ID == "" || ent.OrderID == "" {
		return Result{Code: ResultBadPayload, EventType: event.Type, Detail: "payment entity missing id or order_id"}
	}

	res := Result{EventType: event.Type, PaymentID: ent.ID, OrderID: ent.OrderID}
	err := r.store.ReconcileOrder(ctx, ent.OrderID, func(tx Tx, order *models.Order, po *models.PaymentOrder) error {
		payment, err := tx.PaymentByRemoteID(ent.ID)
		switch {
		case err == nil:
			if payment.Status == models.PaymentStatusFailed {
				return errAlreadyProcessed
			}
			if payment.Status == models.PaymentStatusCaptured {
				// A captured payment cannot retroactively fail.
				return errAlreadyProcessed
			}
		case errors.Is(err, ErrNotFound):
			payment = &models.PaymentRecord{
				RazorpayPaymentID: ent.ID,
				RazorpayOrderID:   ent.OrderID,
			}
		default:
			return err
		}

		payment.AmountMinor = ent.AmountMinor
		payment.Currency = ent.Currency
		payment.Status = models.PaymentStatusFailed
		payment.ErrorCode = ent.ErrorCode
		payment.ErrorDescription = ent.ErrorDescription
		applyMethodDetails(payment, ent)
		if err := tx.SavePayment(payment); err != nil {
			return err
		}

		if po.Status == models.PaymentOrderStatusCreated {
			po.Status = models.PaymentOrderStatusAttempted
			if err := tx.SavePaymentOrder(po); err != nil {
				return err
			}
		}
		if order.IsTerminal() {
			// Completed stays completed; a late failure event for an
			// already-cancelled order is an idempotent no-op.
			return nil
		}
		order.Status = models.OrderStatusCancelled
		return tx.SaveOrder(order)
	})
	return r.finish(res, err)
}

// applyRefundProcessed records refund bookkeeping. It never alters the
// order's primary state.
func (r *Reconciler) applyRefundProcessed(ctx context.Context, event *Event) Result {
	ent := event.RefundEntity()
	if ent == nil || ent.ID == "" || ent.PaymentID == "" {
		return Result{Code: ResultBadPayload, EventType: event.Type, Detail: "refund entity missing id or payment_id"}
	}

	res := Result{EventType: event.Type, PaymentID: ent.PaymentID}
	err := r.store.ReconcileRefund(ctx, func(tx Tx) error {
		if _, err := tx.PaymentByRemoteID(ent.PaymentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				// A retry after the payment webhook lands will succeed.
				return errPaymentNotFound
			}
			return err
		}

		refund, err := tx.RefundByRemoteID(ent.ID)
		switch {
		case err == nil:
			if refund.IsTerminal() {
				return errAlreadyProcessed
			}
		case errors.Is(err, ErrNotFound):
			refund = &models.RefundRecord{
				RazorpayRefundID:  ent.ID,
				RazorpayPaymentID: ent.PaymentID,
			}
		default:
			return err
		}

		refund.AmountMinor = ent.AmountMinor
		refund.Status = models.RefundStatusProcessed
		return tx.SaveRefund(refund)
	})
	return r.finish(res, err)
}

// finish maps the transaction outcome onto the Result and logs it.
func (r *Reconciler) finish(res Result, err error) Result {
	switch {
	case err == nil:
		res.Code = ResultProcessed
		utils.LogInfo("Webhook applied: %s payment=%s order=%s", res.EventType, res.PaymentID, res.OrderID)
	case errors.Is(err, errAlreadyProcessed):
		res.Code = ResultIgnored
		res.Detail = "event already applied"
		utils.LogInfo("Webhook replay ignored: %s payment=%s order=%s", res.EventType, res.PaymentID, res.OrderID)
	case errors.Is(err, errAmountMismatch):
		res.Code = ResultAmountMismatch
		res.Detail = err.Error()
		utils.LogError("Webhook amount mismatch: %s order=%s", res.EventType, res.OrderID)
	case errors.Is(err, errCurrencyMismatch):
		res.Code = ResultCurrencyMismatch
		res.Detail = err.Error()
		utils.LogError("Webhook currency mismatch: %s order=%s", res.EventType, res.OrderID)
	case errors.Is(err, errPaymentNotFound):
		res.Code = ResultPaymentNotFound
		res.Detail = "no local payment for this event"
		utils.LogError("Webhook payment not found: %s payment=%s", res.EventType, res.PaymentID)
	case errors.Is(err, ErrNotFound):
		res.Code = ResultOrderNotFound
		res.Detail = "no local order for this event"
		utils.LogError("Webhook order not found: %s order=%s payment=%s", res.EventType, res.OrderID, res.PaymentID)
	default:
		res.Code = ResultInternalError
		res.Detail = err.Error()
		utils.LogError("Webhook reconciliation failed: %s: %v", res.EventType, err)
	}
	return res
}

func applyMethodDetails(p *models.PaymentRecord, ent *Entity) {
	if ent.Method != "" {
		p.Method = ent.Method
	}
	if ent.Bank != "" {
		p.Bank = ent.Bank
	}
	if ent.WalletName != "" {
		p.WalletName = ent.WalletName
	}
	if ent.VPA != "" {
		p.VPA = ent.VPA
	}
	if ent.CardID != "" {
		p.CardID = ent.CardID
	}
	if ent.EMIMonths > 0 {
		p.EMIMonths = ent.EMIMonths
	}
}
