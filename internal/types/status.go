package types

import "time"

// Status is the lifecycle status of an internal record (not to be confused
// with domain statuses like SubscriptionStatus).
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

// BaseModel carries the audit columns shared by every entity.
type BaseModel struct {
	Status    Status    `json:"status" gorm:"column:status;default:published"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// GetDefaultBaseModel returns a BaseModel stamped with the current time.
func GetDefaultBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
