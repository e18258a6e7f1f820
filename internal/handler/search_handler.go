package handler

import (
	"net/http"
	"strconv"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/search"

	"github.com/labstack/echo/v4"
)

// Full-text product search. Registered only when an Elasticsearch client
// was configured.
type SearchHandler struct {
	client *search.Client
}

func NewSearchHandler(client *search.Client) *SearchHandler {
	return &SearchHandler{client: client}
}

type SearchResponse struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
}

func (h *SearchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products/search", h.search)
}

func (h *SearchHandler) search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q is required"})
	}

	from := 0
	if v := c.QueryParam("from"); v != "" {
		x, err := strconv.Atoi(v)
		if err != nil || x < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = x
	}

	size := 20
	if v := c.QueryParam("size"); v != "" {
		x, err := strconv.Atoi(v)
		if err != nil || x < 1 || x > 100 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid size"})
		}
		size = x
	}

	total, items, err := h.client.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "search unavailable"})
	}

	return c.JSON(http.StatusOK, SearchResponse{Items: items, Total: total})
}
