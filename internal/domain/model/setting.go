package model

import "time"

// SettingMBONEPriceUSD is the current MBONE price in USD. Each read reflects
// the live value; orders freeze it at creation time.
const SettingMBONEPriceUSD = "mbone_price_usd"

type Setting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
