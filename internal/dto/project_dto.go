package dto

import (
	"time"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

// ProjectStatusUpdateRequest moves a project to a new workflow status.
type ProjectStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress review done"`
}

// ProjectResponse serializes a project for the dashboard.
type ProjectResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	Status     string    `json:"status"`
	OwnerID    *uint     `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProjectListResponse wraps a paginated project listing.
type ProjectListResponse struct {
	Items      []ProjectResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewProjectResponse converts a project model into a DTO.
func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:         project.ID,
		Name:       project.Name,
		ClientName: project.ClientName,
		Status:     project.Status,
		OwnerID:    project.OwnerID,
		CreatedAt:  project.CreatedAt,
		UpdatedAt:  project.UpdatedAt,
	}
}
