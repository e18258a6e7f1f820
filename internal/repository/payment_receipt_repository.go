package repository

import (
	"context"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
)

type PaymentReceiptRepository interface {
	Create(ctx context.Context, receipt model.PaymentReceipt) error
	CountByOrderID(ctx context.Context, orderID string) (int64, error)
}
