package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReceipt is the append-only audit record of a verified on-chain
// payment. Exactly one per order; never mutated.
type PaymentReceipt struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	Chain       string          `gorm:"type:varchar(40);not null" json:"chain"`
	TokenSymbol string          `gorm:"type:varchar(20);not null" json:"token_symbol"`
	Amount      decimal.Decimal `gorm:"type:numeric(38,0);not null" json:"amount"`
	TxHash      string          `gorm:"type:varchar(80);not null" json:"tx_hash"`
	FromWallet  string          `gorm:"type:varchar(64)" json:"from_wallet"`
	ToContract  string          `gorm:"type:varchar(64)" json:"to_contract"`
	Status      string          `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
