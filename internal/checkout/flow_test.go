package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	buildErr  error
	verifyErr error

	built    bool
	verified struct {
		orderID   string
		txRef     string
		invoiceID string
	}
}

func (s *fakeOrderService) BuildOrder(ctx context.Context, walletAddress string) (OrderRef, error) {
	if s.buildErr != nil {
		return OrderRef{}, s.buildErr
	}
	s.built = true
	return OrderRef{
		OrderID:    "9f2c4a10-7b3e-4d21-8a5f-0c6d9e112233",
		OrderHash:  "0x" + "9f2c4a107b3e4d218a5f0c6d9e112233",
		InvoiceID:  "ORD-9F2C4A10",
		TotalToken: decimal.RequireFromString("240000000000000000000"),
	}, nil
}

func (s *fakeOrderService) VerifyPayment(ctx context.Context, orderID string, txRef string, invoiceID string) error {
	s.verified.orderID = orderID
	s.verified.txRef = txRef
	s.verified.invoiceID = invoiceID
	return s.verifyErr
}

type fakeWallet struct {
	approveErr error
	payErr     error

	approvedAmount decimal.Decimal
	paidOrderHash  string
	paidInvoiceID  string
}

func (w *fakeWallet) SubmitApproval(ctx context.Context, spender string, amount decimal.Decimal) error {
	if w.approveErr != nil {
		return w.approveErr
	}
	w.approvedAmount = amount
	return nil
}

func (w *fakeWallet) SubmitPayment(ctx context.Context, orderHash string, invoiceID string, amount decimal.Decimal) error {
	if w.payErr != nil {
		return w.payErr
	}
	w.paidOrderHash = orderHash
	w.paidInvoiceID = invoiceID
	return nil
}

func seededCart() *CartStore {
	cart := NewCartStore()
	cart.Add(Line{ProductID: 7, Name: "widget", UnitPrice: decimal.RequireFromString("30.00"), Quantity: 2})
	return cart
}

func TestFlowHappyPath(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderService{}
	wallet := &fakeWallet{}
	cart := seededCart()
	f := NewFlow(orders, wallet, cart, 137, "0xprocessor")

	require.Equal(t, StepConnect, f.Step())

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 137}))
	require.Equal(t, StepConnect, f.Step())

	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))
	require.Equal(t, StepApprove, f.Step())
	assert.True(t, orders.built)
	assert.True(t, wallet.approvedAmount.Equal(f.Order().TotalToken))

	require.NoError(t, f.Apply(ctx, TxIncluded{TxRef: "0xapprove"}))
	require.Equal(t, StepPay, f.Step())
	assert.Equal(t, "0xapprove", f.ApproveTxRef)
	assert.Equal(t, f.Order().OrderHash, wallet.paidOrderHash)
	assert.Equal(t, f.Order().InvoiceID, wallet.paidInvoiceID)

	require.NoError(t, f.Apply(ctx, TxIncluded{TxRef: "0xpay"}))
	require.Equal(t, StepSuccess, f.Step())
	assert.Equal(t, "0xpay", f.PayTxRef)
	assert.Equal(t, f.Order().OrderID, orders.verified.orderID)
	assert.Equal(t, "0xpay", orders.verified.txRef)

	// the cart empties only on verified success
	assert.Equal(t, 0, cart.Len())
}

func TestFlowWrongNetworkFails(t *testing.T) {
	ctx := context.Background()
	f := NewFlow(&fakeOrderService{}, &fakeWallet{}, nil, 137, "0xprocessor")

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 1}))
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))

	assert.Equal(t, StepError, f.Step())
	assert.Equal(t, "wrong network", f.Reason())
}

func TestFlowNetworkSwitchUnblocksCheckout(t *testing.T) {
	ctx := context.Background()
	f := NewFlow(&fakeOrderService{}, &fakeWallet{}, nil, 137, "0xprocessor")

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 1}))
	require.NoError(t, f.Apply(ctx, NetworkSwitched{ChainID: 137}))
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))

	assert.Equal(t, StepApprove, f.Step())
}

func TestFlowBuildFailureGoesToError(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderService{buildErr: errors.New("MBONE price unavailable")}
	f := NewFlow(orders, &fakeWallet{}, nil, 137, "0xprocessor")

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 137}))
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))

	assert.Equal(t, StepError, f.Step())
	assert.Equal(t, "MBONE price unavailable", f.Reason())
}

func TestFlowRejectionIsTerminalFromAnyStep(t *testing.T) {
	ctx := context.Background()
	f := NewFlow(&fakeOrderService{}, &fakeWallet{}, nil, 137, "0xprocessor")

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 137}))
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))
	require.Equal(t, StepApprove, f.Step())

	require.NoError(t, f.Apply(ctx, TxRejected{Reason: "user denied"}))
	assert.Equal(t, StepError, f.Step())
	assert.Equal(t, "user denied", f.Reason())

	// terminal: further events are refused
	assert.ErrorIs(t, f.Apply(ctx, TxIncluded{TxRef: "0xlate"}), ErrTerminal)
}

func TestFlowVerifierFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderService{verifyErr: errors.New("payment verification failed")}
	cart := seededCart()
	f := NewFlow(orders, &fakeWallet{}, cart, 137, "0xprocessor")

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 137}))
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))
	require.NoError(t, f.Apply(ctx, TxIncluded{TxRef: "0xapprove"}))
	require.NoError(t, f.Apply(ctx, TxIncluded{TxRef: "0xpay"}))

	assert.Equal(t, StepError, f.Step())
	assert.Equal(t, 1, cart.Len())
}

func TestFlowResetStartsFresh(t *testing.T) {
	ctx := context.Background()
	f := NewFlow(&fakeOrderService{}, &fakeWallet{}, nil, 137, "0xprocessor")

	require.NoError(t, f.Apply(ctx, WalletConnected{Address: "0xabc", ChainID: 137}))
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))
	require.NoError(t, f.Apply(ctx, TxRejected{Reason: "user denied"}))
	require.Equal(t, StepError, f.Step())

	f.Reset()
	assert.Equal(t, StepConnect, f.Step())
	assert.Empty(t, f.Reason())
	assert.Empty(t, f.ApproveTxRef)

	// the wallet stays connected across attempts; checkout can restart
	require.NoError(t, f.Apply(ctx, CheckoutStarted{}))
	assert.Equal(t, StepApprove, f.Step())
}
