package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/events"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"go.uber.org/zap"
)

type ShipmentUsecase struct {
	orders    repo.OrderRepository
	shipments repo.ShipmentRepository
	tx        repo.TransactionManager
	events    EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

func NewShipmentUsecase(
	orders repo.OrderRepository,
	shipments repo.ShipmentRepository,
	tx repo.TransactionManager,
	events EventPublisher,
	log *zap.Logger,
) *ShipmentUsecase {
	return &ShipmentUsecase{
		orders:    orders,
		shipments: shipments,
		tx:        tx,
		events:    events,
		log:       log,
		now:       time.Now,
	}
}

type SetShipmentInput struct {
	CourierName    string               `json:"courier_name"`
	TrackingNumber string               `json:"tracking_number"`
	Status         model.ShipmentStatus `json:"status"`
}

// SetShipment upserts the order's shipment record. ShippedAt and
// DeliveredAt stamp once, on the first transition into their status, and a
// later update never clears or rewrites them. Moving straight to delivered
// without ever passing through shipped leaves ShippedAt empty; timestamps
// record what was observed, not what should have happened. The status flip
// to shipped also flips the order, and both writes plus the audit row
// commit together.
func (u *ShipmentUsecase) SetShipment(ctx context.Context, adminID int64, orderID string, in SetShipmentInput) (model.Shipment, error) {
	switch in.Status {
	case model.ShipmentStatusProcessing, model.ShipmentStatusShipped,
		model.ShipmentStatusInTransit, model.ShipmentStatusDelivered:
	default:
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Shipment{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var result model.Shipment
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Shipments().FindByOrderID(ctx, orderID)
		created := false
		if err == repo.ErrNotFound {
			s = model.Shipment{OrderID: orderID, Status: model.ShipmentStatusProcessing}
			created = true
		} else if err != nil {
			return err
		}
		before := s

		if in.CourierName != "" {
			s.CourierName = in.CourierName
		}
		if in.TrackingNumber != "" {
			s.TrackingNumber = in.TrackingNumber
		}
		s.Status = in.Status

		ts := u.now()
		if in.Status == model.ShipmentStatusShipped && s.ShippedAt == nil {
			s.ShippedAt = &ts
		}
		if in.Status == model.ShipmentStatusDelivered && s.DeliveredAt == nil {
			s.DeliveredAt = &ts
		}

		if created {
			s, err = r.Shipments().Create(ctx, s)
			if err != nil {
				return err
			}
		} else if err := r.Shipments().Update(ctx, s); err != nil {
			return err
		}

		if in.Status == model.ShipmentStatusShipped && order.Status == model.OrderStatusPaid {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusShipped); err != nil {
				return err
			}
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionUpdateShipment,
			ResourceType: model.AuditResourceShipment,
			ResourceID:   orderID,
			BeforeJSON:   mustJSON(before),
			AfterJSON:    mustJSON(s),
		}); err != nil {
			return err
		}

		result = s
		return nil
	})
	if err != nil {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.publish(ctx, orderID, map[string]interface{}{
		"type":     "shipment_updated",
		"order_id": orderID,
		"admin_id": adminID,
		"status":   string(in.Status),
	})

	return result, nil
}

// GetByOrder returns the shipment for the caller's own order; 404 hides
// both missing orders and other users' orders.
func (u *ShipmentUsecase) GetByOrder(ctx context.Context, userID int64, orderID string) (model.Shipment, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Shipment{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return model.Shipment{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	s, err := u.shipments.FindByOrderID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Shipment{}, NewHTTPError(http.StatusNotFound, "shipment not found")
	}
	if err != nil {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *ShipmentUsecase) publish(ctx context.Context, key string, event map[string]interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, events.TopicShipmentEvents, key, event); err != nil {
		u.log.Warn("event publish failed", zap.String("topic", events.TopicShipmentEvents), zap.Error(err))
	}
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
