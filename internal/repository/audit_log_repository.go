package repository

import (
	"context"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
}
