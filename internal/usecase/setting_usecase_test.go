package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type SettingRepoMock struct{ mock.Mock }

func (m *SettingRepoMock) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingRepoMock) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestGetMBONEPrice(t *testing.T) {
	settings := &SettingRepoMock{}
	settings.On("Get", mock.Anything, model.SettingMBONEPriceUSD).Return("0.25", nil)

	uc := NewSettingUsecase(settings, nil, zap.NewNop())
	out, err := uc.GetMBONEPrice(context.Background())
	require.NoError(t, err)
	assert.True(t, out.PriceUSD.Equal(dec("0.25")))
}

func TestGetMBONEPriceMissing(t *testing.T) {
	settings := &SettingRepoMock{}
	settings.On("Get", mock.Anything, model.SettingMBONEPriceUSD).Return("", repo.ErrNotFound)

	uc := NewSettingUsecase(settings, nil, zap.NewNop())
	_, err := uc.GetMBONEPrice(context.Background())

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "MBONE price not found", he.Message)
}

func TestSetMBONEPriceWritesAudit(t *testing.T) {
	settings := &SettingRepoMock{}
	audits := &AuditLogRepoMock{}
	tx := &TxManagerMock{Repos: &TxReposMock{settings: settings, audits: audits}}

	settings.On("Get", mock.Anything, model.SettingMBONEPriceUSD).Return("0.2", nil)
	settings.On("Set", mock.Anything, model.SettingMBONEPriceUSD, "0.25").Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateTokenPrice && l.ActorUserID == 1
	})).Return(nil)

	uc := NewSettingUsecase(settings, tx, zap.NewNop())
	require.NoError(t, uc.SetMBONEPrice(context.Background(), 1, dec("0.25")))

	settings.AssertExpectations(t)
	audits.AssertExpectations(t)
}

func TestSetMBONEPriceRejectsNonPositive(t *testing.T) {
	uc := NewSettingUsecase(&SettingRepoMock{}, &TxManagerMock{}, zap.NewNop())

	err := uc.SetMBONEPrice(context.Background(), 1, dec("0"))
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
