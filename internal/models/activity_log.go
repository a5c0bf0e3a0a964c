package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit record of a privileged action.
// Entries are never updated or deleted; they are a derived side effect of a
// state change that already happened in the primary tables.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    *uint             `json:"actor_id"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entity_type"`
	EntityID   *uint             `json:"entity_id"`
	Details    datatypes.JSONMap `gorm:"type:json" json:"details"`
	CreatedAt  time.Time         `json:"created_at"`
}
