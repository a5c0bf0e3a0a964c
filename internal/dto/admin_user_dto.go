package dto

import (
	"time"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

// CreateUserRequest is the payload accepted by the admin create-user endpoint.
// Email, password and full name are required; the rest is optional.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=1"`
	PlanType    string `json:"plan_type" validate:"omitempty,oneof=free basic pro premium"`
	PlanEndDate string `json:"plan_end_date" validate:"omitempty"`
	IsActive    *bool  `json:"is_active"`
}

// AdminUserListRequest defines filters for listing accounts.
type AdminUserListRequest struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Status   string
}

// ActivationRequest toggles an account's active flag.
type ActivationRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SubscriptionUpdateRequest changes or renews an account's plan.
type SubscriptionUpdateRequest struct {
	PlanType    string `json:"plan_type" validate:"required,oneof=free basic pro premium"`
	PlanEndDate string `json:"plan_end_date" validate:"omitempty"`
}

// AdminUserResponse serializes account data for admin endpoints.
type AdminUserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	PlanType    string     `json:"plan_type,omitempty"`
	PlanEndDate *time.Time `json:"plan_end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AdminUserListResponse wraps a paginated account listing.
type AdminUserListResponse struct {
	Items      []AdminUserResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// NewAdminUserResponse converts a user model into a DTO.
func NewAdminUserResponse(user models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		PlanType:    user.PlanType,
		PlanEndDate: user.PlanEndDate,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
