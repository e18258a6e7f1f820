package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TxManagerMock runs the callback against a fixed set of repos.
type TxManagerMock struct {
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type TxReposMock struct {
	orders    repo.OrderRepository
	payments  repo.PaymentReceiptRepository
	shipments repo.ShipmentRepository
	settings  repo.SettingRepository
	audits    repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository            { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository    { return nil }
func (r *TxReposMock) Payments() repo.PaymentReceiptRepository { return r.payments }
func (r *TxReposMock) Shipments() repo.ShipmentRepository      { return r.shipments }
func (r *TxReposMock) Products() repo.ProductRepository        { return nil }
func (r *TxReposMock) Settings() repo.SettingRepository        { return r.settings }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository      { return r.audits }

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	panic("not used")
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) SetDerived(ctx context.Context, orderID string, orderHash string, invoiceID string) error {
	args := m.Called(ctx, orderID, orderHash, invoiceID)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID string, txHash string) (bool, error) {
	args := m.Called(ctx, orderID, txHash)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	panic("not used")
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, receipt model.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *PaymentRepoMock) CountByOrderID(ctx context.Context, orderID string) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type ShipmentRepoMock struct{ mock.Mock }

func (m *ShipmentRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.Shipment, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) Create(ctx context.Context, s model.Shipment) (model.Shipment, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(model.Shipment)
	return out, args.Error(1)
}

func (m *ShipmentRepoMock) Update(ctx context.Context, s model.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type VerifierMock struct{ mock.Mock }

func (m *VerifierMock) VerifyTransfer(ctx context.Context, v ChainVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

const (
	testOrderID = "9f2c4a10-7b3e-4d21-8a5f-0c6d9e112233"
	testTxHash  = "0x" + "ab12" + "0000000000000000000000000000000000000000000000000000000000ab"
)

func pendingOrder() model.Order {
	return model.Order{
		ID:         testOrderID,
		UserID:     42,
		TotalMBONE: dec("240000000000000000000"),
		Status:     model.OrderStatusPending,
		OrderHash:  OrderHashFromID(testOrderID),
		InvoiceID:  InvoiceIDFromID(testOrderID),
	}
}

func verifyInput(order model.Order) VerifyPaymentInput {
	return VerifyPaymentInput{
		OrderID: order.ID,
		Verification: ChainVerification{
			TxHash:    testTxHash,
			OrderHash: order.OrderHash,
			InvoiceID: order.InvoiceID,
		},
	}
}

func newPaymentUsecaseForTest(orders *OrderRepoMock, payments *PaymentRepoMock, shipments *ShipmentRepoMock, verifier *VerifierMock) *PaymentUsecase {
	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:    orders,
		payments:  payments,
		shipments: shipments,
	}}
	cfg := config.Config{ChainName: "polygon", TokenSymbol: "MBONE"}
	return NewPaymentUsecase(orders, tx, verifier, cfg, nil, zap.NewNop())
}

func TestVerifyHappyPath(t *testing.T) {
	order := pendingOrder()

	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	shipments := &ShipmentRepoMock{}
	verifier := &VerifierMock{}

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	verifier.On("VerifyTransfer", mock.Anything, mock.Anything).Return(nil)
	orders.On("MarkPaid", mock.Anything, order.ID, testTxHash).Return(true, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(r model.PaymentReceipt) bool {
		return r.OrderID == order.ID &&
			r.Status == "confirmed" &&
			r.TxHash == testTxHash &&
			r.Amount.Equal(order.TotalMBONE)
	})).Return(nil)
	shipments.On("Create", mock.Anything, mock.MatchedBy(func(s model.Shipment) bool {
		return s.OrderID == order.ID && s.Status == model.ShipmentStatusProcessing
	})).Return(model.Shipment{ID: 1, OrderID: order.ID, Status: model.ShipmentStatusProcessing}, nil)

	uc := newPaymentUsecaseForTest(orders, payments, shipments, verifier)
	out, err := uc.Verify(context.Background(), 42, verifyInput(order))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPaid, out.Order.Status)
	assert.Equal(t, testTxHash, out.Order.PaymentTxHash)
	assert.Equal(t, model.ShipmentStatusProcessing, out.Shipment.Status)

	orders.AssertExpectations(t)
	payments.AssertExpectations(t)
	shipments.AssertExpectations(t)
}

func TestVerifyAlreadyPaidIsRejectedWithoutWrites(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderStatusPaid

	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	shipments := &ShipmentRepoMock{}
	verifier := &VerifierMock{}

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	uc := newPaymentUsecaseForTest(orders, payments, shipments, verifier)
	_, err := uc.Verify(context.Background(), 42, verifyInput(order))

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "order already paid", he.Message)

	// a replay writes nothing: no receipt, no shipment, no status change
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	shipments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	verifier.AssertNotCalled(t, "VerifyTransfer", mock.Anything, mock.Anything)
}

func TestVerifyInvoiceMismatch(t *testing.T) {
	order := pendingOrder()

	orders := &OrderRepoMock{}
	verifier := &VerifierMock{}
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	in := verifyInput(order)
	in.Verification.InvoiceID = "ORD-DEADBEEF"

	uc := newPaymentUsecaseForTest(orders, &PaymentRepoMock{}, &ShipmentRepoMock{}, verifier)
	_, err := uc.Verify(context.Background(), 42, in)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invoice id mismatch", he.Message)
	verifier.AssertNotCalled(t, "VerifyTransfer", mock.Anything, mock.Anything)
}

func TestVerifyLostRaceReportsAlreadyPaid(t *testing.T) {
	order := pendingOrder()

	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	shipments := &ShipmentRepoMock{}
	verifier := &VerifierMock{}

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	verifier.On("VerifyTransfer", mock.Anything, mock.Anything).Return(nil)
	// a concurrent verify flipped the order between read and update
	orders.On("MarkPaid", mock.Anything, order.ID, testTxHash).Return(false, nil)

	uc := newPaymentUsecaseForTest(orders, payments, shipments, verifier)
	_, err := uc.Verify(context.Background(), 42, verifyInput(order))

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "order already paid", he.Message)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	shipments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerifyOtherUsersOrderLooksMissing(t *testing.T) {
	order := pendingOrder()

	orders := &OrderRepoMock{}
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	uc := newPaymentUsecaseForTest(orders, &PaymentRepoMock{}, &ShipmentRepoMock{}, &VerifierMock{})
	_, err := uc.Verify(context.Background(), 7, verifyInput(order))

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestVerifyChainRejection(t *testing.T) {
	order := pendingOrder()

	orders := &OrderRepoMock{}
	verifier := &VerifierMock{}
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	verifier.On("VerifyTransfer", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := newPaymentUsecaseForTest(orders, &PaymentRepoMock{}, &ShipmentRepoMock{}, verifier)
	_, err := uc.Verify(context.Background(), 42, verifyInput(order))

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "payment verification failed", he.Message)
	orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}
