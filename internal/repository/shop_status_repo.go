package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

// ShopStatusRepository persists the singleton shop status record.
type ShopStatusRepository interface {
	Get(ctx context.Context) (models.ShopStatus, error)
	Upsert(ctx context.Context, status models.ShopStatus) (models.ShopStatus, error)
}

type shopStatusRepository struct {
	db *gorm.DB
}

// NewShopStatusRepository constructs the shop status repository.
func NewShopStatusRepository(db *gorm.DB) ShopStatusRepository {
	return &shopStatusRepository{db: db}
}

func (r *shopStatusRepository) Get(ctx context.Context) (models.ShopStatus, error) {
	var status models.ShopStatus
	if err := r.db.WithContext(ctx).Order("id").First(&status).Error; err != nil {
		return models.ShopStatus{}, err
	}
	return status, nil
}

// Upsert updates the existing row when one exists and inserts otherwise.
// Last write wins; concurrent updates do not coordinate.
func (r *shopStatusRepository) Upsert(ctx context.Context, status models.ShopStatus) (models.ShopStatus, error) {
	existing, err := r.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ShopStatus{}, err
		}
		if err := r.db.WithContext(ctx).Create(&status).Error; err != nil {
			return models.ShopStatus{}, err
		}
		return status, nil
	}

	updates := map[string]interface{}{
		"active_orders":    status.ActiveOrders,
		"accepting_orders": status.AcceptingOrders,
		"updated_by":       status.UpdatedBy,
	}
	if err := r.db.WithContext(ctx).Model(&models.ShopStatus{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return models.ShopStatus{}, err
	}

	return r.Get(ctx)
}
