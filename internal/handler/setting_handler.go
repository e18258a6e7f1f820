package handler

import (
	"net/http"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/middleware"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SettingHandler struct {
	uc *usecase.SettingUsecase
}

func NewSettingHandler(uc *usecase.SettingUsecase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

type SetPriceRequest struct {
	PriceUSD decimal.Decimal `json:"mbone_price_usd"`
}

func (h *SettingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// the price read is public; checkout needs it before login
	e.GET("/settings/mbone-price", h.getPrice)

	admin := e.Group("/admin/settings")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.PUT("/mbone-price", h.setPrice)
}

func (h *SettingHandler) getPrice(c echo.Context) error {
	out, err := h.uc.GetMBONEPrice(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SettingHandler) setPrice(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SetPriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SetMBONEPrice(c.Request().Context(), adminID, req.PriceUSD); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.MBONEPriceOutput{PriceUSD: req.PriceUSD})
}
