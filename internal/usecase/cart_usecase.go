package usecase

import (
	"context"
	"net/http"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/shopspring/decimal"
)

type CartUsecase struct {
	items    repo.CartItemRepository
	products repo.ProductRepository
}

func NewCartUsecase(items repo.CartItemRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{items: items, products: products}
}

type CartItemView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartOutput struct {
	Items    []CartItemView  `json:"items"`
	TotalUSD decimal.Decimal `json:"total_usd"`
}

// Get prices the cart at current catalog prices. Items whose product was
// deactivated since they were added are skipped, not errored; the stale row
// stays until the user removes it or checks out.
func (u *CartUsecase) Get(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	rows, err := u.items.ListByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := CartOutput{Items: []CartItemView{}, TotalUSD: decimal.Zero}
	for _, row := range rows {
		p, err := u.products.FindByID(ctx, row.ProductID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			continue
		}

		line := p.FinalMRP.Mul(decimal.NewFromInt(row.Quantity))
		out.Items = append(out.Items, CartItemView{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			UnitPrice: p.FinalMRP,
			Quantity:  row.Quantity,
			LineTotal: line,
		})
		out.TotalUSD = out.TotalUSD.Add(line)
	}
	return out, nil
}

// Add merges quantity into an existing row for the same product instead of
// creating a duplicate.
func (u *CartUsecase) Add(ctx context.Context, userID int64, productID int64, quantity int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if quantity <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}

	existing, err := u.items.FindByUserAndProduct(ctx, userID, productID)
	if err == repo.ErrNotFound {
		if err := u.items.Create(ctx, model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.items.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetQuantity sets the row's quantity outright; zero removes the row.
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, productID int64, quantity int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if quantity == 0 {
		return u.Remove(ctx, userID, productID)
	}

	existing, err := u.items.FindByUserAndProduct(ctx, userID, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not in cart")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.items.UpdateQuantity(ctx, existing.ID, quantity); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) Remove(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.items.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not in cart")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.items.ClearByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Lines converts the stored cart into checkout lines for order creation.
func (u *CartUsecase) Lines(ctx context.Context, userID int64) ([]CartLine, error) {
	rows, err := u.items.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, CartLine{ProductID: row.ProductID, Quantity: row.Quantity})
	}
	return lines, nil
}
