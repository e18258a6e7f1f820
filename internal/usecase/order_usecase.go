package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/events"
	repo "github.com/Raj6578/arpita-shop-mbone-3/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderHashFromID derives the on-chain order reference from the order id:
// the uuid's 32 hex digits, left-padded with zeros to 64 and prefixed with
// 0x. Deterministic, so a retried derivation always produces the same hash.
func OrderHashFromID(orderID string) string {
	hex := strings.ReplaceAll(orderID, "-", "")
	return "0x" + strings.Repeat("0", 64-len(hex)) + hex
}

// InvoiceIDFromID derives the human-readable invoice number shown on
// receipts: ORD- plus the first 8 characters of the order id, uppercased.
func InvoiceIDFromID(orderID string) string {
	return "ORD-" + strings.ToUpper(orderID[:8])
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	items     repo.OrderItemRepository
	shipments repo.ShipmentRepository
	settings  repo.SettingRepository
	products  repo.ProductRepository
	events    EventPublisher
	log       *zap.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	shipments repo.ShipmentRepository,
	settings repo.SettingRepository,
	products repo.ProductRepository,
	events EventPublisher,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		items:     items,
		shipments: shipments,
		settings:  settings,
		products:  products,
		events:    events,
		log:       log,
	}
}

type CreateOrderInput struct {
	WalletAddress string     `json:"wallet_address"`
	Lines         []CartLine `json:"items"`
}

type CreateOrderOutput struct {
	Order model.Order     `json:"order"`
	Rate  decimal.Decimal `json:"mbone_price_usd"`
}

// CreateOrder prices the cart at current catalog prices and the live MBONE
// rate, then persists the order header, its items, and the derived
// references as separate writes. The header write commits first: a failure
// after it leaves a pending order with no items, which the client retries
// as a brand new order. Pending orders are worthless until paid, so no
// cleanup is required.
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (CreateOrderOutput, error) {
	if userID <= 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Lines) == 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	rate, err := u.currentRate(ctx)
	if err != nil {
		return CreateOrderOutput{}, NewHTTPError(http.StatusServiceUnavailable, "MBONE price unavailable")
	}

	snap, err := BuildSnapshot(ctx, u.lookupActiveProduct, in.Lines, rate)
	if err != nil {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order := model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		WalletAddress: in.WalletAddress,
		TotalUSD:      snap.TotalUSD,
		TotalMBONE:    snap.TotalMBONE,
		Status:        model.OrderStatusPending,
	}
	order.OrderHash = OrderHashFromID(order.ID)
	order.InvoiceID = InvoiceIDFromID(order.ID)

	if err := u.orders.Create(ctx, order); err != nil {
		return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]model.OrderItem, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, model.OrderItem{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			PriceUSD:   l.UnitPriceUSD,
			PriceMBONE: l.UnitPriceMBONE,
		})
	}
	if err := u.items.CreateBulk(ctx, order.ID, items); err != nil {
		u.log.Error("order items write failed, header left pending",
			zap.String("order_id", order.ID), zap.Error(err))
		return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.orders.SetDerived(ctx, order.ID, order.OrderHash, order.InvoiceID); err != nil {
		return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.publish(ctx, order.ID, map[string]interface{}{
		"type":        "order_created",
		"order_id":    order.ID,
		"user_id":     userID,
		"total_usd":   order.TotalUSD.String(),
		"total_mbone": order.TotalMBONE.String(),
	})

	return CreateOrderOutput{Order: order, Rate: rate}, nil
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type MyOrderListOutput struct {
	Items []OrderDetailOutput `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ListMyOrders returns each order with its items and shipment, the shape the
// customer order history renders directly.
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (MyOrderListOutput, error) {
	if userID <= 0 {
		return MyOrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	page, limit = clampPage(page, limit)

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return MyOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := MyOrderListOutput{Items: make([]OrderDetailOutput, 0, len(orders)), Total: total, Page: page, Limit: limit}
	for _, o := range orders {
		detail, err := u.assembleDetail(ctx, o)
		if err != nil {
			return MyOrderListOutput{}, err
		}
		out.Items = append(out.Items, detail)
	}
	return out, nil
}

type OrderDetailOutput struct {
	Order    model.Order       `json:"order"`
	Items    []model.OrderItem `json:"items"`
	Shipment *model.Shipment   `json:"shipment,omitempty"`
}

// GetMyOrderDetail returns 404 for both missing orders and orders owned by
// someone else, so an order id cannot be probed for existence.
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID string) (OrderDetailOutput, error) {
	if userID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	return u.assembleDetail(ctx, order)
}

func (u *OrderUsecase) GetAdminOrderDetail(ctx context.Context, orderID string) (OrderDetailOutput, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.assembleDetail(ctx, order)
}

type AdminOrderListInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

func (u *OrderUsecase) ListAdmin(ctx context.Context, in AdminOrderListInput) (OrderListOutput, error) {
	page, limit := clampPage(in.Page, in.Limit)

	items, total, err := u.orders.ListAdmin(ctx, repo.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: in.Status,
		UserID: in.UserID,
		From:   in.From,
		To:     in.To,
	})
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// UpdateStatus is the operator override for the order lifecycle. Statuses
// never move backward: shipped and cancelled orders are final, and a paid
// order cannot revert to pending. The write and its audit row commit
// together.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, adminID int64, orderID string, status model.OrderStatus) error {
	switch status {
	case model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusFailed,
		model.OrderStatusShipped, model.OrderStatusCancelled:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.Status == model.OrderStatusShipped || order.Status == model.OrderStatusCancelled {
		return NewHTTPError(http.StatusBadRequest, "order status can no longer change")
	}
	if order.Status == model.OrderStatusPaid && status == model.OrderStatusPending {
		return NewHTTPError(http.StatusBadRequest, "paid orders cannot revert to pending")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   mustJSON(map[string]string{"status": string(order.Status)}),
			AfterJSON:    mustJSON(map[string]string{"status": string(status)}),
		})
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.publish(ctx, orderID, map[string]interface{}{
		"type":     "order_status_updated",
		"order_id": orderID,
		"admin_id": adminID,
		"from":     string(order.Status),
		"to":       string(status),
	})
	return nil
}

func (u *OrderUsecase) assembleDetail(ctx context.Context, order model.Order) (OrderDetailOutput, error) {
	items, err := u.items.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderDetailOutput{Order: order, Items: items}

	s, err := u.shipments.FindByOrderID(ctx, order.ID)
	if err == nil {
		out.Shipment = &s
	} else if err != repo.ErrNotFound {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

func (u *OrderUsecase) currentRate(ctx context.Context) (decimal.Decimal, error) {
	raw, err := u.settings.Get(ctx, model.SettingMBONEPriceUSD)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed rate %q: %w", raw, err)
	}
	if rate.IsZero() || rate.IsNegative() {
		return decimal.Zero, ErrRateUnavailable
	}
	return rate, nil
}

func (u *OrderUsecase) lookupActiveProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}
	if !p.IsActive {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (u *OrderUsecase) publish(ctx context.Context, key string, event map[string]interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, events.TopicOrderEvents, key, event); err != nil {
		u.log.Warn("event publish failed", zap.String("topic", events.TopicOrderEvents), zap.Error(err))
	}
}

func clampPage(page int, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
