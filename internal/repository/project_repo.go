package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

// ProjectRepository persists dashboard projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (models.Project, error)
	List(ctx context.Context, page, pageSize int) ([]models.Project, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository constructs the project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context, page, pageSize int) ([]models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var projects []models.Project
	if err := query.Order("updated_at DESC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id uint, status string) (models.Project, error) {
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return models.Project{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Project{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}
