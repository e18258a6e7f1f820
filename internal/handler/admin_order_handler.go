package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/middleware"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	orders    *usecase.OrderUsecase
	shipments *usecase.ShipmentUsecase
}

func NewAdminOrderHandler(orders *usecase.OrderUsecase, shipments *usecase.ShipmentUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders, shipments: shipments}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type ShipmentUpdateRequest struct {
	OrderID        string `json:"order_id"`
	CourierName    string `json:"courier_name"`
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/:id", h.detail)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.POST("/shipments", h.updateShipment)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	status := c.QueryParam("status")

	var userID *int64
	if v := c.QueryParam("user_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		userID = &x
	}

	var from *time.Time
	if v := c.QueryParam("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = &ts
	}

	var to *time.Time
	if v := c.QueryParam("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		to = &ts
	}

	out, err := h.orders.ListAdmin(c.Request().Context(), usecase.AdminOrderListInput{
		Page:   page,
		Limit:  limit,
		Status: status,
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	out, err := h.orders.GetAdminOrderDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), adminID, c.Param("id"), model.OrderStatus(req.Status)); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminOrderHandler) updateShipment(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ShipmentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order_id is required"})
	}

	out, err := h.shipments.SetShipment(c.Request().Context(), adminID, req.OrderID, usecase.SetShipmentInput{
		CourierName:    req.CourierName,
		TrackingNumber: req.TrackingNumber,
		Status:         model.ShipmentStatus(req.Status),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
