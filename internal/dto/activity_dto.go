package dto

import (
	"time"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

// AdminActivityListRequest defines filters for the raw audit trail listing.
type AdminActivityListRequest struct {
	Page       int
	PageSize   int
	ActorID    uint
	Action     string
	EntityType string
}

// AdminActivityResponse serializes a raw audit entry.
type AdminActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    *uint                  `json:"actor_id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id"`
	Details    map[string]interface{} `json:"details"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AdminActivityListResponse wraps a paginated audit trail listing.
type AdminActivityListResponse struct {
	Items      []AdminActivityResponse `json:"items"`
	Pagination PaginationMeta          `json:"pagination"`
}

// NewAdminActivityResponse converts an audit entry into a DTO.
func NewAdminActivityResponse(entry models.ActivityLog) AdminActivityResponse {
	return AdminActivityResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    map[string]interface{}(entry.Details),
		CreatedAt:  entry.CreatedAt,
	}
}

// ActivityFeedRequest defines filters for the rendered activity feed.
type ActivityFeedRequest struct {
	Page       int
	PageSize   int
	ActorID    *uint
	Action     string
	EntityType string
}

// ActivityFeedItem is one rendered feed row: the raw entry plus its badge
// presentation, human sentence and relative timestamp.
type ActivityFeedItem struct {
	ID           uint      `json:"id"`
	Action       string    `json:"action"`
	Label        string    `json:"label"`
	Icon         string    `json:"icon"`
	Color        string    `json:"color"`
	EntityType   string    `json:"entity_type"`
	EntityLabel  string    `json:"entity_label"`
	EntityID     *uint     `json:"entity_id"`
	Sentence     string    `json:"sentence"`
	RelativeTime string    `json:"relative_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityFeedResponse wraps the rendered feed.
type ActivityFeedResponse struct {
	Items      []ActivityFeedItem `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
	CacheHit   bool               `json:"cache_hit"`
}
