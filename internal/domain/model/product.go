package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry. Prices are in USD; FinalMRP is the price
// orders are built from and is stored, not recomputed on read.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	MRP         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"mrp"`
	Discount    decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount"`
	FinalMRP    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_mrp"`
	YouSave     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"you_save"`
	ImageURL    string          `gorm:"type:varchar(512)" json:"image_url"`
	Stock       int64           `gorm:"not null" json:"stock"`
	IsFeatured  bool            `gorm:"not null;default:false" json:"is_featured"`
	IsActive    bool            `gorm:"not null;default:false" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
