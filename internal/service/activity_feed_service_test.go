package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/models"
)

func newFeedCache(t *testing.T) *redis.Client {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func TestActivityFeedServiceRendersEntries(t *testing.T) {
	actor := uint(1)
	repo := &memoryActivityRepo{entries: []models.ActivityLog{{
		ID:         1,
		ActorID:    &actor,
		Action:     "create_user",
		EntityType: "user",
		Details:    datatypes.JSONMap{"user_name": "Ana", "email": "a@b.com", "plan": "pro"},
		CreatedAt:  time.Now().Add(-5 * time.Minute),
	}}}
	svc := NewActivityFeedService(repo, nil, time.Minute, testLogger())

	response, err := svc.List(context.Background(), dto.ActivityFeedRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)

	item := response.Items[0]
	require.Equal(t, "User created", item.Label)
	require.Equal(t, "user-plus", item.Icon)
	require.Equal(t, "success", item.Color)
	require.Equal(t, "User", item.EntityLabel)
	require.Contains(t, item.Sentence, "Ana")
	require.Contains(t, item.Sentence, "a@b.com")
	require.Equal(t, "5 min ago", item.RelativeTime)
	require.False(t, response.CacheHit)
}

func TestActivityFeedServiceUnknownActionDegrades(t *testing.T) {
	repo := &memoryActivityRepo{entries: []models.ActivityLog{{
		ID:         1,
		Action:     "bulk_import_clients",
		EntityType: "warehouse",
		Details:    datatypes.JSONMap{},
		CreatedAt:  time.Now(),
	}}}
	svc := NewActivityFeedService(repo, nil, time.Minute, testLogger())

	response, err := svc.List(context.Background(), dto.ActivityFeedRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)

	item := response.Items[0]
	require.Equal(t, "Bulk Import Clients", item.Label)
	require.Equal(t, "default", item.Color)
	require.Equal(t, "warehouse", item.EntityLabel)
	require.NotEmpty(t, item.Sentence)
}

func TestActivityFeedServiceCacheHit(t *testing.T) {
	repo := &memoryActivityRepo{entries: []models.ActivityLog{{
		ID:         1,
		Action:     "update_profile",
		EntityType: "profile",
		Details:    datatypes.JSONMap{"user_name": "Ana"},
		CreatedAt:  time.Now(),
	}}}
	svc := NewActivityFeedService(repo, newFeedCache(t), time.Minute, testLogger())

	first, err := svc.List(context.Background(), dto.ActivityFeedRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := svc.List(context.Background(), dto.ActivityFeedRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Len(t, second.Items, 1)
	require.Equal(t, first.Items[0].ID, second.Items[0].ID)
	require.Equal(t, first.Items[0].Sentence, second.Items[0].Sentence)
}
