package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/opsdeck/opsdeck-api/internal/activity"
	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/repository"
)

// ActivityFeedService renders the audit trail as a human-readable feed.
type ActivityFeedService interface {
	List(ctx context.Context, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error)
}

type activityFeedService struct {
	repo   repository.ActivityLogRepository
	cache  *redis.Client
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewActivityFeedService builds the activity feed service. A nil cache
// disables caching entirely.
func NewActivityFeedService(repo repository.ActivityLogRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ActivityFeedService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &activityFeedService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With().Str("component", "activity_feed_service").Logger(),
	}
}

func (s *activityFeedService) List(ctx context.Context, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error) {
	page := maxInt(req.Page, 1)
	pageSize := clampPageSize(req.PageSize)

	filter := repository.ActivityLogFilter{
		Page:       page,
		PageSize:   pageSize,
		ActorID:    req.ActorID,
		Action:     strings.ToLower(strings.TrimSpace(req.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(req.EntityType)),
	}

	cacheKey := s.cacheKey(filter)
	if cacheKey != "" {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ActivityFeedResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActivityFeedResponse{}, err
	}

	now := s.now()
	items := make([]dto.ActivityFeedItem, 0, len(entries))
	for _, entry := range entries {
		presentation := activity.ResolvePresentation(entry.Action)

		var details activity.Details
		if entry.Details != nil {
			details = activity.Details(entry.Details)
		}

		items = append(items, dto.ActivityFeedItem{
			ID:           entry.ID,
			Action:       entry.Action,
			Label:        presentation.Label,
			Icon:         presentation.Icon,
			Color:        presentation.Color,
			EntityType:   entry.EntityType,
			EntityLabel:  activity.EntityLabel(entry.EntityType),
			EntityID:     entry.EntityID,
			Sentence:     activity.FormatSentence(entry.Action, details, entry.EntityType),
			RelativeTime: activity.RelativeTime(entry.CreatedAt, now),
			CreatedAt:    entry.CreatedAt,
		})
	}

	response := dto.ActivityFeedResponse{
		Items:      items,
		Pagination: paginationMeta(page, pageSize, total),
		CacheHit:   false,
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write activity feed cache")
			}
		}
	}

	return response, nil
}

func (s *activityFeedService) cacheKey(filter repository.ActivityLogFilter) string {
	if s.cache == nil {
		return ""
	}
	actorKey := "0"
	if filter.ActorID != nil {
		actorKey = fmt.Sprintf("%d", *filter.ActorID)
	}
	return fmt.Sprintf("activity:feed:v1:%s:%s:%s:%d:%d", actorKey, filter.Action, filter.EntityType, filter.Page, filter.PageSize)
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}
