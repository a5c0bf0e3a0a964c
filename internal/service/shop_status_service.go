package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/activity"
	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/models"
	"github.com/opsdeck/opsdeck-api/internal/observability"
	"github.com/opsdeck/opsdeck-api/internal/repository"
)

// ErrNotificationFailed wraps a webhook delivery failure. By the time it is
// returned the status upsert has already committed; there is no rollback.
var ErrNotificationFailed = errors.New("shop status notification failed")

// ShopStatusNotification is the payload delivered to the notification channel.
type ShopStatusNotification struct {
	ActiveOrders    int
	AcceptingOrders bool
}

// ShopNotifier delivers shop status changes to an external channel.
type ShopNotifier interface {
	NotifyShopStatus(ctx context.Context, notification ShopStatusNotification) error
}

// ShopStatusService manages the singleton shop status record.
type ShopStatusService interface {
	Get(ctx context.Context) (dto.ShopStatusResponse, error)
	Update(ctx context.Context, payload dto.ShopStatusUpdateRequest, actor ActivityActor) (dto.ShopStatusResponse, error)
}

type shopStatusService struct {
	repo      repository.ShopStatusRepository
	notifier  ShopNotifier
	validator *validator.Validate
	activity  ActivityRecorder
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewShopStatusService constructs the shop status service.
func NewShopStatusService(repo repository.ShopStatusRepository, notifier ShopNotifier, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ShopStatusService {
	return &shopStatusService{
		repo:      repo,
		notifier:  notifier,
		validator: validator,
		activity:  activity,
		tracer:    otel.Tracer("github.com/opsdeck/opsdeck-api/internal/service/shopstatus"),
		logger:    logger.With().Str("component", "shop_status_service").Logger(),
	}
}

func (s *shopStatusService) Get(ctx context.Context) (dto.ShopStatusResponse, error) {
	status, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ShopStatusResponse{AcceptingOrders: true}, nil
		}
		return dto.ShopStatusResponse{}, err
	}
	return dto.NewShopStatusResponse(status), nil
}

// Update upserts the singleton record, notifies the configured channel and
// appends one audit entry. A notification failure surfaces to the caller with
// the upsert already committed.
func (s *shopStatusService) Update(ctx context.Context, payload dto.ShopStatusUpdateRequest, actor ActivityActor) (dto.ShopStatusResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ShopStatusResponse{}, err
	}

	status := models.ShopStatus{
		ActiveOrders:    *payload.ActiveOrders,
		AcceptingOrders: *payload.AcceptingOrders,
	}
	if actor.ID > 0 {
		actorID := actor.ID
		status.UpdatedBy = &actorID
	}

	saved, err := s.repo.Upsert(ctx, status)
	if err != nil {
		return dto.ShopStatusResponse{}, err
	}

	notifyCtx, span := s.tracer.Start(ctx, "shop_status.notify", trace.WithAttributes(
		attribute.Int("shop.active_orders", saved.ActiveOrders),
		attribute.Bool("shop.accepting_orders", saved.AcceptingOrders),
	))
	err = s.notifier.NotifyShopStatus(notifyCtx, ShopStatusNotification{
		ActiveOrders:    saved.ActiveOrders,
		AcceptingOrders: saved.AcceptingOrders,
	})
	span.End()
	if err != nil {
		observability.WebhookDeliveries().WithLabelValues("failure").Inc()
		s.logger.Error().Err(err).Msg("shop status webhook delivery failed")
		return dto.ShopStatusResponse{}, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	observability.WebhookDeliveries().WithLabelValues("success").Inc()

	_ = s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     activity.ActionUpdateShopStatus,
		EntityType: "shop",
		Details: map[string]interface{}{
			"active_orders":    saved.ActiveOrders,
			"accepting_orders": saved.AcceptingOrders,
		},
	})

	return dto.NewShopStatusResponse(saved), nil
}
