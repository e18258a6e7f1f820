package usecase

import (
	"context"
	"testing"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func catalogOf(products map[int64]model.Product) ProductLookup {
	return func(ctx context.Context, productID int64) (model.Product, error) {
		p, ok := products[productID]
		if !ok {
			return model.Product{}, repo.ErrNotFound
		}
		return p, nil
	}
}

func TestBuildSnapshotTotals(t *testing.T) {
	lookup := catalogOf(map[int64]model.Product{
		7: {ID: 7, FinalMRP: dec("30.00"), IsActive: true},
	})

	snap, err := BuildSnapshot(context.Background(), lookup,
		[]CartLine{{ProductID: 7, Quantity: 2}}, dec("0.25"))
	require.NoError(t, err)

	assert.True(t, snap.TotalUSD.Equal(dec("60.00")), "got %s", snap.TotalUSD)
	// 60 / 0.25 = 240 MBONE = 240e18 minor units
	assert.True(t, snap.TotalMBONE.Equal(dec("240000000000000000000")), "got %s", snap.TotalMBONE)

	require.Len(t, snap.Lines, 1)
	assert.True(t, snap.Lines[0].UnitPriceUSD.Equal(dec("30.00")))
	assert.True(t, snap.Lines[0].UnitPriceMBONE.Equal(dec("120")))
}

func TestBuildSnapshotMissingProductAbortsWhole(t *testing.T) {
	lookup := catalogOf(map[int64]model.Product{
		1: {ID: 1, FinalMRP: dec("10.00"), IsActive: true},
	})

	_, err := BuildSnapshot(context.Background(), lookup,
		[]CartLine{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		}, dec("0.5"))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBuildSnapshotRejectsBadRate(t *testing.T) {
	lookup := catalogOf(nil)

	_, err := BuildSnapshot(context.Background(), lookup, nil, decimal.Zero)
	assert.ErrorIs(t, err, ErrRateUnavailable)

	_, err = BuildSnapshot(context.Background(), lookup, nil, dec("-1"))
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestMBONEMinorUnitsFloors(t *testing.T) {
	// 10 / 3 does not divide evenly; the result must truncate, not round up
	got := MBONEMinorUnits(dec("10.00"), dec("3"))
	assert.True(t, got.Equal(dec("3333333333333333333")), "got %s", got)

	// exact division stays exact
	got = MBONEMinorUnits(dec("60.00"), dec("0.25"))
	assert.True(t, got.Equal(dec("240000000000000000000")), "got %s", got)

	// zero stays zero
	assert.True(t, MBONEMinorUnits(decimal.Zero, dec("0.25")).IsZero())
}

func TestMBONEMinorUnitsNeverExceedsExactQuotient(t *testing.T) {
	rates := []decimal.Decimal{dec("0.25"), dec("3"), dec("0.07"), dec("1.13")}
	amounts := []decimal.Decimal{dec("0.01"), dec("19.99"), dec("60.00"), dec("123.45")}

	for _, rate := range rates {
		for _, usd := range amounts {
			floored := MBONEMinorUnits(usd, rate)
			exact := usd.Shift(18).Div(rate)
			assert.True(t, floored.LessThanOrEqual(exact),
				"usd=%s rate=%s floored=%s exact=%s", usd, rate, floored, exact)
			// within one minor unit of exact
			assert.True(t, exact.Sub(floored).LessThan(decimal.NewFromInt(1)))
		}
	}
}
