package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a frozen price record; later catalog price changes do not
// touch it.
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	PriceUSD   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_usd"`
	PriceMBONE decimal.Decimal `gorm:"type:numeric(38,18);not null" json:"price_mbone"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
