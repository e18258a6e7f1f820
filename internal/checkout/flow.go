package checkout

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Step is the current position in the payment flow.
type Step string

const (
	StepConnect    Step = "connect"
	StepApprove    Step = "approve"
	StepPay        Step = "pay"
	StepConfirming Step = "confirming"
	StepSuccess    Step = "success"
	StepError      Step = "error"
)

// Event is an externally observed occurrence that drives the flow. There is
// no polling; the flow only moves when an event arrives.
type Event interface{ isEvent() }

type WalletConnected struct {
	Address string
	ChainID int64
}

type NetworkSwitched struct {
	ChainID int64
}

// CheckoutStarted is the user action that kicks off order building once the
// wallet is connected on the right network.
type CheckoutStarted struct{}

type TxIncluded struct {
	TxRef string
}

type TxRejected struct {
	Reason string
}

func (WalletConnected) isEvent() {}
func (NetworkSwitched) isEvent() {}
func (CheckoutStarted) isEvent() {}
func (TxIncluded) isEvent()      {}
func (TxRejected) isEvent()      {}

// OrderRef is what the order builder hands back for the on-chain leg.
type OrderRef struct {
	OrderID    string
	OrderHash  string
	InvoiceID  string
	TotalToken decimal.Decimal // minor units
}

// OrderService is the server side of the flow: building the priced order
// and verifying the payment transaction.
type OrderService interface {
	BuildOrder(ctx context.Context, walletAddress string) (OrderRef, error)
	VerifyPayment(ctx context.Context, orderID string, txRef string, invoiceID string) error
}

// Wallet submits transactions. Submission is fire-and-forget; inclusion or
// rejection arrives later as a TxIncluded/TxRejected event.
type Wallet interface {
	SubmitApproval(ctx context.Context, spender string, amount decimal.Decimal) error
	SubmitPayment(ctx context.Context, orderHash string, invoiceID string, amount decimal.Decimal) error
}

var ErrTerminal = errors.New("flow is in a terminal step")

// Flow is the client-side payment state machine. Single-threaded by
// contract: the caller delivers one event at a time and never concurrently.
type Flow struct {
	orders  OrderService
	wallet  Wallet
	cart    *CartStore
	chainID int64
	spender string

	step    Step
	reason  string
	address string

	walletConnected bool
	networkOK       bool

	order        OrderRef
	ApproveTxRef string
	PayTxRef     string
}

// NewFlow starts at connect. chainID is the required network; spender is
// the payment contract granted the token allowance.
func NewFlow(orders OrderService, wallet Wallet, cart *CartStore, chainID int64, spender string) *Flow {
	return &Flow{
		orders:  orders,
		wallet:  wallet,
		cart:    cart,
		chainID: chainID,
		spender: spender,
		step:    StepConnect,
	}
}

func (f *Flow) Step() Step      { return f.step }
func (f *Flow) Reason() string  { return f.reason }
func (f *Flow) Order() OrderRef { return f.order }

// Reset abandons the attempt and returns to connect. A prior attempt's
// allowance is neither reused nor cancelled; the fresh attempt approves
// again from scratch.
func (f *Flow) Reset() {
	f.step = StepConnect
	f.reason = ""
	f.order = OrderRef{}
	f.ApproveTxRef = ""
	f.PayTxRef = ""
}

// Apply advances the machine by one event. Events that do not apply to the
// current step are ignored, except TxRejected, which is terminal from any
// non-terminal step.
func (f *Flow) Apply(ctx context.Context, ev Event) error {
	if f.step == StepSuccess || f.step == StepError {
		return ErrTerminal
	}

	switch e := ev.(type) {
	case WalletConnected:
		f.walletConnected = true
		f.address = e.Address
		f.networkOK = e.ChainID == f.chainID
		return nil

	case NetworkSwitched:
		f.networkOK = e.ChainID == f.chainID
		return nil

	case TxRejected:
		f.fail(e.Reason)
		return nil

	case CheckoutStarted:
		return f.onCheckoutStarted(ctx)

	case TxIncluded:
		return f.onTxIncluded(ctx, e.TxRef)
	}

	return nil
}

func (f *Flow) onCheckoutStarted(ctx context.Context) error {
	if f.step != StepConnect {
		return nil
	}
	if !f.walletConnected {
		f.fail("wallet not connected")
		return nil
	}
	if !f.networkOK {
		f.fail("wrong network")
		return nil
	}

	order, err := f.orders.BuildOrder(ctx, f.address)
	if err != nil {
		f.fail(err.Error())
		return nil
	}
	f.order = order
	f.step = StepApprove

	if err := f.wallet.SubmitApproval(ctx, f.spender, order.TotalToken); err != nil {
		f.fail(err.Error())
	}
	return nil
}

func (f *Flow) onTxIncluded(ctx context.Context, txRef string) error {
	switch f.step {
	case StepApprove:
		f.ApproveTxRef = txRef
		f.step = StepPay
		if err := f.wallet.SubmitPayment(ctx, f.order.OrderHash, f.order.InvoiceID, f.order.TotalToken); err != nil {
			f.fail(err.Error())
		}
		return nil

	case StepPay:
		f.PayTxRef = txRef
		f.step = StepConfirming

		if err := f.orders.VerifyPayment(ctx, f.order.OrderID, txRef, f.order.InvoiceID); err != nil {
			f.fail(err.Error())
			return nil
		}

		// the cart empties only once the server confirms payment
		if f.cart != nil {
			f.cart.Clear()
		}
		f.step = StepSuccess
		return nil
	}

	return nil
}

func (f *Flow) fail(reason string) {
	f.step = StepError
	f.reason = reason
}
