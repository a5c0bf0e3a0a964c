package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Email: "ana@example.com", PasswordHash: "x", FullName: "Ana Silva", Role: models.RoleMember, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &user))
	require.NotZero(t, user.ID)

	found, err := repo.GetByEmail(context.Background(), "ANA@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	active := models.User{Email: "ana@example.com", PasswordHash: "x", FullName: "Ana Silva", Role: models.RoleAdmin, IsActive: true}
	inactive := models.User{Email: "bo@example.com", PasswordHash: "x", FullName: "Bo Chen", Role: models.RoleMember, IsActive: false}
	require.NoError(t, repo.Create(context.Background(), &active))
	require.NoError(t, repo.Create(context.Background(), &inactive))

	users, total, err := repo.List(context.Background(), UserFilter{Status: "inactive", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Bo Chen", users[0].FullName)

	users, total, err = repo.List(context.Background(), UserFilter{Search: "ana", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Ana Silva", users[0].FullName)

	_, total, err = repo.List(context.Background(), UserFilter{Role: models.RoleAdmin, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestUserRepositoryUpdateMissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Update(context.Background(), 99, map[string]interface{}{"is_active": false})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShopStatusRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShopStatusRepository(db)

	actor := uint(3)
	created, err := repo.Upsert(context.Background(), models.ShopStatus{ActiveOrders: 4, AcceptingOrders: true, UpdatedBy: &actor})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := repo.Upsert(context.Background(), models.ShopStatus{ActiveOrders: 9, AcceptingOrders: false, UpdatedBy: &actor})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID, "upsert must keep the singleton row")
	require.Equal(t, 9, updated.ActiveOrders)
	require.False(t, updated.AcceptingOrders)

	var count int64
	require.NoError(t, db.Model(&models.ShopStatus{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
