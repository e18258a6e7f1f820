package chain

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/usecase"

	"go.uber.org/zap"
)

var txHashRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// Verifier checks client-claimed transfer transactions. The current
// implementation validates the claim's shape and trusts the submitting
// wallet; swapping in an RPC-backed verifier only requires satisfying
// usecase.ChainVerifier.
// TODO: query the payment processor contract over JSON-RPC once the
// production endpoint is provisioned.
type Verifier struct {
	cfg config.Config
	log *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Verifier {
	return &Verifier{cfg: cfg, log: log}
}

func (v *Verifier) VerifyTransfer(ctx context.Context, c usecase.ChainVerification) error {
	if !txHashRe.MatchString(c.TxHash) {
		return fmt.Errorf("malformed tx hash %q", c.TxHash)
	}
	if c.OrderHash == "" {
		return fmt.Errorf("order hash is required")
	}
	if c.ToContract != "" && v.cfg.PaymentProcessor != "" && c.ToContract != v.cfg.PaymentProcessor {
		return fmt.Errorf("unexpected recipient contract %q", c.ToContract)
	}

	v.log.Info("accepting transfer without on-chain confirmation",
		zap.String("chain", v.cfg.ChainName),
		zap.Int64("chain_id", v.cfg.ChainID),
		zap.String("tx_hash", c.TxHash))
	return nil
}
