package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/events"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// EventPublisher is the slice of the kafka producer the usecases need.
// Publishing is best-effort everywhere: failures are logged, never returned.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event interface{}) error
}

// ProductIndex is the search index the catalog writes through to.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type ProductUsecase struct {
	products repo.ProductRepository
	index    ProductIndex
	events   EventPublisher
	log      *zap.Logger
}

func NewProductUsecase(products repo.ProductRepository, index ProductIndex, events EventPublisher, log *zap.Logger) *ProductUsecase {
	return &ProductUsecase{products: products, index: index, events: events, log: log}
}

type ProductListInput struct {
	Page         int
	Limit        int
	FeaturedOnly bool
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) List(ctx context.Context, in ProductListInput) (ProductListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	items, total, err := u.products.List(ctx, repo.ProductListFilter{
		Page:         in.Page,
		Limit:        in.Limit,
		FeaturedOnly: in.FeaturedOnly,
		ActiveOnly:   true,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

type SaveProductInput struct {
	Name        string
	Description string
	MRP         decimal.Decimal
	Discount    decimal.Decimal
	ImageURL    string
	Stock       int64
	IsFeatured  bool
	IsActive    bool
}

func (in SaveProductInput) validate() error {
	if in.Name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.MRP.IsNegative() || in.MRP.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "invalid mrp")
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return NewHTTPError(http.StatusBadRequest, "invalid discount")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}

// finalMRP applies the percentage discount, rounded to cents. YouSave is the
// complement so the two always add back up to MRP.
func finalMRP(mrp decimal.Decimal, discount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	final := mrp.Mul(hundred.Sub(discount)).Div(hundred).Round(2)
	return final, mrp.Sub(final)
}

func (u *ProductUsecase) Create(ctx context.Context, adminID int64, in SaveProductInput) (model.Product, error) {
	if adminID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	final, save := finalMRP(in.MRP, in.Discount)
	p := model.Product{
		Name:        in.Name,
		Description: in.Description,
		MRP:         in.MRP,
		Discount:    in.Discount,
		FinalMRP:    final,
		YouSave:     save,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		IsFeatured:  in.IsFeatured,
		IsActive:    in.IsActive,
	}

	id, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	p.ID = id

	u.reindex(ctx, p)
	u.publish(ctx, events.TopicProductEvents, fmt.Sprint(p.ID), map[string]interface{}{
		"type":       "product_created",
		"product_id": p.ID,
		"name":       p.Name,
	})

	return p, nil
}

func (u *ProductUsecase) Update(ctx context.Context, adminID int64, productID int64, in SaveProductInput) (model.Product, error) {
	if adminID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	final, save := finalMRP(in.MRP, in.Discount)
	p.Name = in.Name
	p.Description = in.Description
	p.MRP = in.MRP
	p.Discount = in.Discount
	p.FinalMRP = final
	p.YouSave = save
	p.ImageURL = in.ImageURL
	p.Stock = in.Stock
	p.IsFeatured = in.IsFeatured
	p.IsActive = in.IsActive

	if err := u.products.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.reindex(ctx, p)
	u.publish(ctx, events.TopicProductEvents, fmt.Sprint(p.ID), map[string]interface{}{
		"type":       "product_updated",
		"product_id": p.ID,
		"name":       p.Name,
	})

	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, adminID int64, productID int64) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.products.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.index != nil {
		if err := u.index.DeleteProduct(ctx, productID); err != nil {
			u.log.Warn("search deindex failed", zap.Int64("product_id", productID), zap.Error(err))
		}
	}
	u.publish(ctx, events.TopicProductEvents, fmt.Sprint(productID), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": productID,
	})

	return nil
}

func (u *ProductUsecase) reindex(ctx context.Context, p model.Product) {
	if u.index == nil {
		return
	}
	if err := u.index.IndexProduct(ctx, p); err != nil {
		u.log.Warn("search index failed", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

func (u *ProductUsecase) publish(ctx context.Context, topic string, key string, event map[string]interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, topic, key, event); err != nil {
		u.log.Warn("event publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
