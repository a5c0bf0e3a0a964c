package models

import "time"

// Project workflow statuses.
const (
	ProjectStatusPending    = "pending"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusReview     = "review"
	ProjectStatusDone       = "done"
)

// Project tracks a client engagement shown on the dashboard.
type Project struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ClientName string    `gorm:"size:255" json:"client_name"`
	Status     string    `gorm:"size:32;not null;default:pending" json:"status"`
	OwnerID    *uint     `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
