package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)

// mboneDecimals is the token's fractional precision: 1 MBONE = 1e18 minor
// units.
const mboneDecimals = 18

type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type SnapshotLine struct {
	ProductID      int64
	Quantity       int64
	UnitPriceUSD   decimal.Decimal
	UnitPriceMBONE decimal.Decimal
}

// PricingSnapshot is computed fresh per checkout attempt from live catalog
// and rate data. It is never cached: the rate is volatile.
type PricingSnapshot struct {
	Lines      []SnapshotLine
	TotalUSD   decimal.Decimal
	TotalMBONE decimal.Decimal // minor units
	RateUSD    decimal.Decimal
}

type ProductLookup func(ctx context.Context, productID int64) (model.Product, error)

// BuildSnapshot prices the cart at the product's current FinalMRP and the
// given MBONE/USD rate. A missing product aborts the whole build; there are
// no partial snapshots.
func BuildSnapshot(ctx context.Context, lookup ProductLookup, lines []CartLine, rate decimal.Decimal) (PricingSnapshot, error) {
	if rate.IsZero() || rate.IsNegative() {
		return PricingSnapshot{}, ErrRateUnavailable
	}

	snap := PricingSnapshot{
		Lines:    make([]SnapshotLine, 0, len(lines)),
		TotalUSD: decimal.Zero,
		RateUSD:  rate,
	}

	for _, line := range lines {
		p, err := lookup(ctx, line.ProductID)
		if err != nil {
			return PricingSnapshot{}, fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
		}

		qty := decimal.NewFromInt(line.Quantity)
		snap.Lines = append(snap.Lines, SnapshotLine{
			ProductID:      p.ID,
			Quantity:       line.Quantity,
			UnitPriceUSD:   p.FinalMRP,
			UnitPriceMBONE: p.FinalMRP.DivRound(rate, mboneDecimals),
		})
		snap.TotalUSD = snap.TotalUSD.Add(p.FinalMRP.Mul(qty))
	}

	snap.TotalMBONE = MBONEMinorUnits(snap.TotalUSD, rate)
	return snap, nil
}

// MBONEMinorUnits converts a USD amount to MBONE minor units:
// floor(usd / rate * 10^18). The quotient is truncated, never rounded up,
// so a payment request can lose up to one minor unit of token dust but can
// never exceed what the fiat total justifies.
func MBONEMinorUnits(usd decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	q, _ := usd.Shift(mboneDecimals).QuoRem(rate, 0)
	return q
}
