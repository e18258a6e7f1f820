package chain

import (
	"context"
	"strings"
	"testing"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testVerifier() *Verifier {
	return New(config.Config{
		ChainName:        "polygon",
		ChainID:          137,
		PaymentProcessor: "0xprocessor",
	}, zap.NewNop())
}

func TestVerifyTransferAcceptsWellFormedClaim(t *testing.T) {
	v := testVerifier()
	err := v.VerifyTransfer(context.Background(), usecase.ChainVerification{
		TxHash:     "0x" + strings.Repeat("ab", 32),
		OrderHash:  "0x" + strings.Repeat("0", 32) + strings.Repeat("cd", 16),
		ToContract: "0xprocessor",
	})
	assert.NoError(t, err)
}

func TestVerifyTransferRejectsMalformedHash(t *testing.T) {
	v := testVerifier()

	for _, h := range []string{
		"",
		"abc",
		"0x1234",
		"0x" + strings.Repeat("zz", 32),
		strings.Repeat("ab", 33),
	} {
		err := v.VerifyTransfer(context.Background(), usecase.ChainVerification{
			TxHash:    h,
			OrderHash: "0xdeadbeef",
		})
		assert.Error(t, err, "hash %q", h)
	}
}

func TestVerifyTransferRejectsWrongContract(t *testing.T) {
	v := testVerifier()
	err := v.VerifyTransfer(context.Background(), usecase.ChainVerification{
		TxHash:     "0x" + strings.Repeat("ab", 32),
		OrderHash:  "0xdeadbeef",
		ToContract: "0xattacker",
	})
	assert.Error(t, err)
}
