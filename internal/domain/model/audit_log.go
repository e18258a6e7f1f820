package model

import "time"

type AuditAction string

const (
	AuditActionUpdateShipment    AuditAction = "UPDATE_SHIPMENT"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionUpdateTokenPrice  AuditAction = "UPDATE_TOKEN_PRICE"
)

type AuditResourceType string

const (
	AuditResourceOrder    AuditResourceType = "order"
	AuditResourceShipment AuditResourceType = "shipment"
	AuditResourceSetting  AuditResourceType = "setting"
)

// AuditLog records who changed what in the operator surface. Before/after
// are JSON strings.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(64);not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
