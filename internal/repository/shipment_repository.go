package repository

import (
	"context"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
)

type ShipmentRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (model.Shipment, error)
	Create(ctx context.Context, s model.Shipment) (model.Shipment, error)
	Update(ctx context.Context, s model.Shipment) error
}
