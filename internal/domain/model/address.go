package model

import "time"

// Shipping address book entry.
type Address struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Line1     string    `gorm:"type:varchar(255);not null" json:"line1"`
	Line2     string    `gorm:"type:varchar(255)" json:"line2"`
	City      string    `gorm:"type:varchar(255);not null" json:"city"`
	State     string    `gorm:"type:varchar(100)" json:"state"`
	Country   string    `gorm:"type:varchar(100)" json:"country"`
	Pincode   string    `gorm:"type:varchar(20)" json:"pincode"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
