package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderStatusUsecaseForTest(orders *OrderRepoMock, audits *AuditLogRepoMock) *OrderUsecase {
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, audits: audits}}
	return NewOrderUsecase(tx, orders, &OrderItemRepoMock{}, &ShipmentRepoMock{}, &SettingRepoMock{}, &ProductRepoMock{}, nil, zap.NewNop())
}

func TestUpdateStatusRejectsChangesToShippedOrder(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderStatusShipped

	orders := &OrderRepoMock{}
	audits := &AuditLogRepoMock{}
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	uc := newOrderStatusUsecaseForTest(orders, audits)
	err := uc.UpdateStatus(context.Background(), 1, order.ID, model.OrderStatusPending)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectsChangesToCancelledOrder(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderStatusCancelled

	orders := &OrderRepoMock{}
	audits := &AuditLogRepoMock{}
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	uc := newOrderStatusUsecaseForTest(orders, audits)
	err := uc.UpdateStatus(context.Background(), 1, order.ID, model.OrderStatusPaid)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectsPaidToPending(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderStatusPaid

	orders := &OrderRepoMock{}
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	uc := newOrderStatusUsecaseForTest(orders, &AuditLogRepoMock{})
	err := uc.UpdateStatus(context.Background(), 1, order.ID, model.OrderStatusPending)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "paid orders cannot revert to pending", he.Message)
}

func TestUpdateStatusWritesAuditRow(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderStatusPaid

	orders := &OrderRepoMock{}
	audits := &AuditLogRepoMock{}

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orders.On("UpdateStatus", mock.Anything, order.ID, model.OrderStatusShipped).Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.ActorUserID == 7 &&
			a.Action == model.AuditActionUpdateOrderStatus &&
			a.ResourceType == model.AuditResourceOrder &&
			a.ResourceID == order.ID &&
			a.BeforeJSON == `{"status":"paid"}` &&
			a.AfterJSON == `{"status":"shipped"}`
	})).Return(nil)

	uc := newOrderStatusUsecaseForTest(orders, audits)
	err := uc.UpdateStatus(context.Background(), 7, order.ID, model.OrderStatusShipped)
	require.NoError(t, err)

	orders.AssertExpectations(t)
	audits.AssertExpectations(t)
}
