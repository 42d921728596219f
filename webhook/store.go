package webhook

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DikshantJo/ZwitchNew-sub000/models"
)

// ErrNotFound is returned by store lookups when no row matches.
var ErrNotFound = errors.New("webhook: record not found")

// Tx exposes the lookups and writes a reconciliation step may perform.
// All calls inside one reconciliation share a single transaction.
type Tx interface {
	PaymentByRemoteID(paymentID string) (*models.PaymentRecord, error)
	RefundByRemoteID(refundID string) (*models.RefundRecord, error)
	SaveOrder(order *models.Order) error
	SavePaymentOrder(po *models.PaymentOrder) error
	SavePayment(p *models.PaymentRecord) error
	SaveRefund(r *models.RefundRecord) error
}

// Store serializes reconciliation per order and makes each event's
// mutations atomic.
type Store interface {
	// ReconcileOrder locks the payment order identified by the remote order
	// id together with its local order, then runs fn. fn's writes commit as
	// one unit; any error rolls everything back. Returns ErrNotFound when
	// the remote order id is unknown.
	ReconcileOrder(ctx context.Context, razorpayOrderID string, fn func(tx Tx, order *models.Order, po *models.PaymentOrder) error) error
	// ReconcileRefund runs fn in a transaction without an order lock.
	// Refund bookkeeping never touches order state.
	ReconcileRefund(ctx context.Context, fn func(tx Tx) error) error
}

// GormStore is the production Store backed by the shared gorm handle.
// Row-level FOR UPDATE locks serialize concurrent deliveries per order so
// two webhooks for the same order cannot interleave and lose an update.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ReconcileOrder(ctx context.Context, razorpayOrderID string, fn func(tx Tx, order *models.Order, po *models.PaymentOrder) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po models.PaymentOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("razorpay_order_id = ?", razorpayOrderID).
			First(&po).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var order models.Order
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, po.OrderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return fn(&gormTx{tx: tx}, &order, &po)
	})
}

func (s *GormStore) ReconcileRefund(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

type gormTx struct {
	tx *gorm.DB
}

func (g *gormTx) PaymentByRemoteID(paymentID string) (*models.PaymentRecord, error) {
	var p models.PaymentRecord
	err := g.tx.Where("razorpay_payment_id = ?", paymentID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (g *gormTx) RefundByRemoteID(refundID string) (*models.RefundRecord, error) {
	var r models.RefundRecord
	err := g.tx.Where("razorpay_refund_id = ?", refundID).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (g *gormTx) SaveOrder(order *models.Order) error {
	return g.tx.Save(order).Error
}

func (g *gormTx) SavePaymentOrder(po *models.PaymentOrder) error {
	return g.tx.Save(po).Error
}

func (g *gormTx) SavePayment(p *models.PaymentRecord) error {
	return g.tx.Save(p).Error
}

func (g *gormTx) SaveRefund(r *models.RefundRecord) error {
	return g.tx.Save(r).Error
}
