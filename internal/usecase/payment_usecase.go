package usecase

import (
	"context"
	"net/http"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/events"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"go.uber.org/zap"
)

// ChainVerification is what the client claims happened on-chain. The
// verifier checks the claim against the chain before anything is persisted.
type ChainVerification struct {
	TxHash     string `json:"tx_hash"`
	OrderHash  string `json:"order_hash"`
	InvoiceID  string `json:"invoice_id"`
	FromWallet string `json:"from_wallet"`
	ToContract string `json:"to_contract"`
	Amount     string `json:"amount"`
}

// ChainVerifier confirms a transfer transaction exists on-chain and matches
// the claimed order reference and amount.
type ChainVerifier interface {
	VerifyTransfer(ctx context.Context, v ChainVerification) error
}

type PaymentUsecase struct {
	orders   repo.OrderRepository
	tx       repo.TransactionManager
	verifier ChainVerifier
	cfg      config.Config
	events   EventPublisher
	log      *zap.Logger
}

func NewPaymentUsecase(
	orders repo.OrderRepository,
	tx repo.TransactionManager,
	verifier ChainVerifier,
	cfg config.Config,
	events EventPublisher,
	log *zap.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		orders:   orders,
		tx:       tx,
		verifier: verifier,
		cfg:      cfg,
		events:   events,
		log:      log,
	}
}

type VerifyPaymentInput struct {
	OrderID      string            `json:"order_id"`
	Verification ChainVerification `json:"verification"`
}

type VerifyPaymentOutput struct {
	Order    model.Order    `json:"order"`
	Shipment model.Shipment `json:"shipment"`
}

// Verify confirms the payment and flips the order to paid. The flip, the
// receipt, and the initial shipment commit in one transaction; the flip
// itself is a compare-and-set on status=pending, so a replayed or concurrent
// verification of the same order fails with "order already paid" and writes
// nothing. At most one receipt and one shipment can ever exist per order.
func (u *PaymentUsecase) Verify(ctx context.Context, userID int64, in VerifyPaymentInput) (VerifyPaymentOutput, error) {
	if userID <= 0 {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Verification.TxHash == "" {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "tx hash is required")
	}

	order, err := u.orders.FindByID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if order.Status != model.OrderStatusPending {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "order already paid")
	}
	if in.Verification.InvoiceID != order.InvoiceID {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invoice id mismatch")
	}
	if in.Verification.OrderHash != order.OrderHash {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "order hash mismatch")
	}

	if err := u.verifier.VerifyTransfer(ctx, in.Verification); err != nil {
		u.log.Warn("chain verification rejected",
			zap.String("order_id", order.ID),
			zap.String("tx_hash", in.Verification.TxHash),
			zap.Error(err))
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "payment verification failed")
	}

	var shipment model.Shipment
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		flipped, err := r.Orders().MarkPaid(ctx, order.ID, in.Verification.TxHash)
		if err != nil {
			return err
		}
		if !flipped {
			// a concurrent verify won the race
			return NewHTTPError(http.StatusBadRequest, "order already paid")
		}

		if err := r.Payments().Create(ctx, model.PaymentReceipt{
			OrderID:     order.ID,
			Chain:       u.cfg.ChainName,
			TokenSymbol: u.cfg.TokenSymbol,
			Amount:      order.TotalMBONE,
			TxHash:      in.Verification.TxHash,
			FromWallet:  in.Verification.FromWallet,
			ToContract:  in.Verification.ToContract,
			Status:      "confirmed",
		}); err != nil {
			return err
		}

		shipment, err = r.Shipments().Create(ctx, model.Shipment{
			OrderID: order.ID,
			Status:  model.ShipmentStatusProcessing,
		})
		return err
	})
	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return VerifyPaymentOutput{}, he
		}
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order.Status = model.OrderStatusPaid
	order.PaymentTxHash = in.Verification.TxHash

	u.publish(ctx, order.ID, map[string]interface{}{
		"type":     "payment_confirmed",
		"order_id": order.ID,
		"user_id":  userID,
		"tx_hash":  in.Verification.TxHash,
		"amount":   order.TotalMBONE.String(),
	})

	return VerifyPaymentOutput{Order: order, Shipment: shipment}, nil
}

func (u *PaymentUsecase) publish(ctx context.Context, key string, event map[string]interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, events.TopicPaymentEvents, key, event); err != nil {
		u.log.Warn("event publish failed", zap.String("topic", events.TopicPaymentEvents), zap.Error(err))
	}
}
