package models

import "time"

// Roles assignable to dashboard accounts.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleMember = "member"
)

// Subscription plan identifiers.
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// User represents a dashboard account managed by administrators.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FullName     string     `gorm:"size:255;not null" json:"full_name"`
	Role         string     `gorm:"size:32;not null;default:member" json:"role"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	PlanType     string     `gorm:"size:32" json:"plan_type"`
	PlanEndDate  *time.Time `json:"plan_end_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
