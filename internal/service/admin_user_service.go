package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/activity"
	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/models"
	"github.com/opsdeck/opsdeck-api/internal/repository"
)

// ErrUserNotFound indicates the account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken indicates the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// AdminUserService orchestrates admin account management use cases.
type AdminUserService interface {
	Create(ctx context.Context, payload dto.CreateUserRequest, actor ActivityActor) (dto.AdminUserResponse, error)
	List(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error)
	Get(ctx context.Context, id uint) (dto.AdminUserResponse, error)
	SetActivation(ctx context.Context, id uint, isActive bool, actor ActivityActor) (dto.AdminUserResponse, error)
	UpdateSubscription(ctx context.Context, id uint, payload dto.SubscriptionUpdateRequest, actor ActivityActor) (dto.AdminUserResponse, error)
}

type adminUserService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewAdminUserService constructs the admin user service.
func NewAdminUserService(repo repository.UserRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AdminUserService {
	return &adminUserService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) Create(ctx context.Context, payload dto.CreateUserRequest, actor ActivityActor) (dto.AdminUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminUserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.AdminUserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AdminUserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AdminUserResponse{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(payload.FullName),
		Role:         models.RoleMember,
		IsActive:     true,
		PlanType:     payload.PlanType,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if endDate := parsePlanEndDate(payload.PlanEndDate); endDate != nil {
		user.PlanEndDate = endDate
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.AdminUserResponse{}, err
	}

	details := map[string]interface{}{
		"user_name": user.FullName,
		"email":     user.Email,
	}
	if user.PlanType != "" {
		details["plan"] = user.PlanType
	}
	// Audit failures never block the primary mutation.
	_ = s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     activity.ActionCreateUser,
		EntityType: "user",
		EntityID:   &user.ID,
		Details:    details,
	})

	return dto.NewAdminUserResponse(user), nil
}

func (s *adminUserService) List(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error) {
	filter := repository.UserFilter{
		Search:   strings.TrimSpace(req.Search),
		Role:     strings.ToLower(strings.TrimSpace(req.Role)),
		Status:   strings.ToLower(strings.TrimSpace(req.Status)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminUserListResponse{}, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewAdminUserResponse(user))
	}

	return dto.AdminUserListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *adminUserService) Get(ctx context.Context, id uint) (dto.AdminUserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		return dto.AdminUserResponse{}, err
	}
	return dto.NewAdminUserResponse(user), nil
}

func (s *adminUserService) SetActivation(ctx context.Context, id uint, isActive bool, actor ActivityActor) (dto.AdminUserResponse, error) {
	user, err := s.repo.Update(ctx, id, map[string]interface{}{"is_active": isActive})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		return dto.AdminUserResponse{}, err
	}

	action := activity.ActionDeactivateUser
	if isActive {
		action = activity.ActionActivateUser
	}
	_ = s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     action,
		EntityType: "user",
		EntityID:   &user.ID,
		Details: map[string]interface{}{
			"user_name": user.FullName,
			"email":     user.Email,
		},
	})

	return dto.NewAdminUserResponse(user), nil
}

// UpdateSubscription changes an account's plan. Re-applying the current plan
// with a new end date is recorded as a renewal rather than a plan change.
func (s *adminUserService) UpdateSubscription(ctx context.Context, id uint, payload dto.SubscriptionUpdateRequest, actor ActivityActor) (dto.AdminUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminUserResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		return dto.AdminUserResponse{}, err
	}

	planType := strings.ToLower(strings.TrimSpace(payload.PlanType))
	endDate := parsePlanEndDate(payload.PlanEndDate)

	updates := map[string]interface{}{"plan_type": planType}
	if endDate != nil {
		updates["plan_end_date"] = *endDate
	}

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return dto.AdminUserResponse{}, err
	}

	action := activity.ActionUpdateSubscription
	if current.PlanType == planType && endDate != nil {
		action = activity.ActionRenewPlan
	}

	details := map[string]interface{}{
		"user_name": user.FullName,
		"plan_type": planType,
	}
	if endDate != nil {
		details["end_date"] = endDate.Format("2006-01-02")
	}
	_ = s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     action,
		EntityType: "subscription",
		EntityID:   &user.ID,
		Details:    details,
	})

	return dto.NewAdminUserResponse(user), nil
}

func parsePlanEndDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
