package repository

import (
	"context"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"

	"gorm.io/gorm"
)

type PaymentReceiptGormRepository struct {
	db *gorm.DB
}

func NewPaymentReceiptGormRepository(db *gorm.DB) *PaymentReceiptGormRepository {
	return &PaymentReceiptGormRepository{db: db}
}

func (r *PaymentReceiptGormRepository) Create(ctx context.Context, receipt model.PaymentReceipt) error {
	return r.db.WithContext(ctx).Create(&receipt).Error
}

func (r *PaymentReceiptGormRepository) CountByOrderID(ctx context.Context, orderID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PaymentReceipt{}).
		Where("order_id = ?", orderID).
		Count(&n).Error
	return n, err
}
