package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/activity"
	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/repository"
)

// ErrProjectNotFound indicates the project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ProjectService orchestrates project tracking use cases.
type ProjectService interface {
	List(ctx context.Context, page, pageSize int) (dto.ProjectListResponse, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.ProjectStatusUpdateRequest, actor ActivityActor) (dto.ProjectResponse, error)
}

type projectService struct {
	repo      repository.ProjectRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(repo repository.ProjectRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ProjectService {
	return &projectService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) List(ctx context.Context, page, pageSize int) (dto.ProjectListResponse, error) {
	projects, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return dto.ProjectListResponse{}, err
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, dto.NewProjectResponse(project))
	}

	return dto.ProjectListResponse{
		Items:      responses,
		Pagination: paginationMeta(page, pageSize, total),
	}, nil
}

func (s *projectService) UpdateStatus(ctx context.Context, id uint, payload dto.ProjectStatusUpdateRequest, actor ActivityActor) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	status := strings.ToLower(strings.TrimSpace(payload.Status))
	project, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	_ = s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     activity.ActionUpdateProjectStatus,
		EntityType: "project",
		EntityID:   &project.ID,
		Details: map[string]interface{}{
			"project_name": project.Name,
			"status":       project.Status,
		},
	})

	return dto.NewProjectResponse(project), nil
}
