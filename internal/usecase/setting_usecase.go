package usecase

import (
	"context"
	"net/http"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SettingUsecase struct {
	settings repo.SettingRepository
	tx       repo.TransactionManager
	log      *zap.Logger
}

func NewSettingUsecase(settings repo.SettingRepository, tx repo.TransactionManager, log *zap.Logger) *SettingUsecase {
	return &SettingUsecase{settings: settings, tx: tx, log: log}
}

type MBONEPriceOutput struct {
	PriceUSD decimal.Decimal `json:"mbone_price_usd"`
}

// GetMBONEPrice reads the live token rate. There is no caching layer in
// front of it; every checkout sees the value the operator last wrote.
func (u *SettingUsecase) GetMBONEPrice(ctx context.Context) (MBONEPriceOutput, error) {
	raw, err := u.settings.Get(ctx, model.SettingMBONEPriceUSD)
	if err == repo.ErrNotFound {
		return MBONEPriceOutput{}, NewHTTPError(http.StatusNotFound, "MBONE price not found")
	}
	if err != nil {
		return MBONEPriceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		u.log.Error("stored MBONE price is malformed", zap.String("value", raw), zap.Error(err))
		return MBONEPriceOutput{}, NewHTTPError(http.StatusInternalServerError, "malformed price")
	}
	return MBONEPriceOutput{PriceUSD: price}, nil
}

func (u *SettingUsecase) SetMBONEPrice(ctx context.Context, adminID int64, price decimal.Decimal) error {
	if price.IsZero() || price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be positive")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Settings().Get(ctx, model.SettingMBONEPriceUSD)
		if err != nil && err != repo.ErrNotFound {
			return err
		}

		if err := r.Settings().Set(ctx, model.SettingMBONEPriceUSD, price.String()); err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionUpdateTokenPrice,
			ResourceType: model.AuditResourceSetting,
			ResourceID:   model.SettingMBONEPriceUSD,
			BeforeJSON:   mustJSON(map[string]string{"value": before}),
			AfterJSON:    mustJSON(map[string]string{"value": price.String()}),
		})
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
