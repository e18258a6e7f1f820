package model

import "time"

type ShipmentStatus string

const (
	ShipmentStatusProcessing ShipmentStatus = "processing"
	ShipmentStatusShipped    ShipmentStatus = "shipped"
	ShipmentStatusInTransit  ShipmentStatus = "in_transit"
	ShipmentStatusDelivered  ShipmentStatus = "delivered"
)

// Shipment is one-to-one with Order. ShippedAt is stamped exactly when the
// status first becomes shipped, DeliveredAt when it first becomes delivered.
type Shipment struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        string         `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	CourierName    string         `gorm:"type:varchar(255)" json:"courier_name"`
	TrackingNumber string         `gorm:"type:varchar(255)" json:"tracking_number"`
	Status         ShipmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ShippedAt      *time.Time     `json:"shipped_at"`
	DeliveredAt    *time.Time     `json:"delivered_at"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
