package handler

import (
	"net/http"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/middleware"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments *usecase.PaymentUsecase
	cart     *usecase.CartUsecase
	log      *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentUsecase, cart *usecase.CartUsecase, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, cart: cart, log: log}
}

type VerifyPaymentRequest struct {
	OrderID    string `json:"order_id"`
	TxHash     string `json:"tx_hash"`
	OrderHash  string `json:"order_hash"`
	InvoiceID  string `json:"invoice_id"`
	FromWallet string `json:"from_wallet"`
	ToContract string `json:"to_contract"`
	Amount     string `json:"amount"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/payments")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/verify", h.verify)
}

func (h *PaymentHandler) verify(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.payments.Verify(c.Request().Context(), userID, usecase.VerifyPaymentInput{
		OrderID: req.OrderID,
		Verification: usecase.ChainVerification{
			TxHash:     req.TxHash,
			OrderHash:  req.OrderHash,
			InvoiceID:  req.InvoiceID,
			FromWallet: req.FromWallet,
			ToContract: req.ToContract,
			Amount:     req.Amount,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	// the paid order's cart lines are spent
	if err := h.cart.Clear(c.Request().Context(), userID); err != nil {
		h.log.Warn("cart clear after payment failed",
			zap.Int64("user_id", userID),
			zap.String("order_id", req.OrderID),
			zap.Error(err))
	}

	return c.JSON(http.StatusOK, out)
}
