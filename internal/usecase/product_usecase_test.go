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

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context, f repo.ProductListFilter) ([]model.Product, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func TestFinalMRP(t *testing.T) {
	final, save := finalMRP(dec("100.00"), dec("25"))
	assert.True(t, final.Equal(dec("75.00")), "got %s", final)
	assert.True(t, save.Equal(dec("25.00")), "got %s", save)

	// rounding to cents; final plus savings still add back to mrp
	final, save = finalMRP(dec("9.99"), dec("33"))
	assert.True(t, final.Equal(dec("6.69")), "got %s", final)
	assert.True(t, final.Add(save).Equal(dec("9.99")))

	final, save = finalMRP(dec("50.00"), dec("0"))
	assert.True(t, final.Equal(dec("50.00")))
	assert.True(t, save.IsZero())
}

func TestCreateProductComputesDerivedPrices(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.FinalMRP.Equal(dec("75.00")) && p.YouSave.Equal(dec("25.00"))
	})).Return(int64(11), nil)

	uc := NewProductUsecase(products, nil, nil, zap.NewNop())
	p, err := uc.Create(context.Background(), 1, SaveProductInput{
		Name:     "widget",
		MRP:      dec("100.00"),
		Discount: dec("25"),
		Stock:    5,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), p.ID)
	products.AssertExpectations(t)
}

func TestCreateProductValidation(t *testing.T) {
	uc := NewProductUsecase(&ProductRepoMock{}, nil, nil, zap.NewNop())

	_, err := uc.Create(context.Background(), 1, SaveProductInput{MRP: dec("10")})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = uc.Create(context.Background(), 1, SaveProductInput{Name: "x", MRP: dec("10"), Discount: dec("101")})
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestGetHidesInactiveProducts(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{ID: 5, IsActive: false}, nil)

	uc := NewProductUsecase(products, nil, nil, zap.NewNop())
	_, err := uc.Get(context.Background(), 5)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
