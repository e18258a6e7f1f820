package repository

import (
	"context"
	"time"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) error

	// SetDerived writes the order hash and invoice id back onto the row.
	// Both are pure functions of the order id, so rewriting is harmless.
	SetDerived(ctx context.Context, orderID string, orderHash string, invoiceID string) error

	// MarkPaid flips pending->paid and records the payment tx hash in one
	// compare-and-set update. Returns false when the order was not pending,
	// which is the already-paid guard under concurrent verification.
	MarkPaid(ctx context.Context, orderID string, txHash string) (bool, error)

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
