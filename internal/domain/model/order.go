package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order freezes the checkout totals. TotalUSD is a 2-decimal fiat amount,
// TotalMBONE is an integer count of token minor units (1 MBONE = 1e18).
// OrderHash and InvoiceID are derived from ID once and never change.
type Order struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        int64           `gorm:"not null;index" json:"user_id"`
	WalletAddress string          `gorm:"type:varchar(64)" json:"wallet_address"`
	TotalUSD      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_usd"`
	TotalMBONE    decimal.Decimal `gorm:"type:numeric(38,0);not null" json:"total_mbone"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentTxHash string          `gorm:"type:varchar(80)" json:"payment_tx_hash"`
	OrderHash     string          `gorm:"type:varchar(80)" json:"order_hash"`
	InvoiceID     string          `gorm:"type:varchar(20)" json:"invoice_id"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
