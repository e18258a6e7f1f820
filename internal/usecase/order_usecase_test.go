package usecase

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHashFromID(t *testing.T) {
	id := "9f2c4a10-7b3e-4d21-8a5f-0c6d9e112233"
	h := OrderHashFromID(id)

	assert.Equal(t, "0x", h[:2])
	assert.Len(t, h, 66) // 0x + 64 hex chars
	assert.True(t, strings.HasSuffix(h, strings.ReplaceAll(id, "-", "")))
	assert.Equal(t, strings.Repeat("0", 32), h[2:34])

	// deterministic: the same id always derives the same hash
	assert.Equal(t, h, OrderHashFromID(id))
}

func TestOrderHashDistinctPerOrder(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		h := OrderHashFromID(uuid.NewString())
		require.False(t, seen[h], "hash collision")
		seen[h] = true
	}
}

func TestInvoiceIDFromID(t *testing.T) {
	id := "9f2c4a10-7b3e-4d21-8a5f-0c6d9e112233"

	inv := InvoiceIDFromID(id)
	assert.Equal(t, "ORD-9F2C4A10", inv)
	assert.Equal(t, inv, InvoiceIDFromID(id))
}
