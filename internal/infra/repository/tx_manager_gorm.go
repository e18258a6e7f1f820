package repository

import (
	"context"

	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentReceiptRepository
	shipments  repo.ShipmentRepository
	products   repo.ProductRepository
	settings   repo.SettingRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository            { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository    { return r.orderItems }
func (r *txReposGorm) Payments() repo.PaymentReceiptRepository { return r.payments }
func (r *txReposGorm) Shipments() repo.ShipmentRepository      { return r.shipments }
func (r *txReposGorm) Products() repo.ProductRepository        { return r.products }
func (r *txReposGorm) Settings() repo.SettingRepository        { return r.settings }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository      { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repos are rebuilt on the tx handle
		r := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			payments:   NewPaymentReceiptGormRepository(tx),
			shipments:  NewShipmentGormRepository(tx),
			products:   NewProductGormRepository(tx),
			settings:   NewSettingGormRepository(tx),
			auditLogs:  NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
