package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/repository"
)

type notifierFake struct {
	notifications []ShopStatusNotification
	err           error
}

func (n *notifierFake) NotifyShopStatus(_ context.Context, notification ShopStatusNotification) error {
	if n.err != nil {
		return n.err
	}
	n.notifications = append(n.notifications, notification)
	return nil
}

func TestShopStatusServiceUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewShopStatusRepository(db)
	notifier := &notifierFake{}
	recorder := &recorderFake{}
	svc := NewShopStatusService(repo, notifier, testValidator(), recorder, testLogger())

	response, err := svc.Update(context.Background(), dto.ShopStatusUpdateRequest{
		ActiveOrders:    ptrInt(5),
		AcceptingOrders: ptrBool(true),
	}, ActivityActor{ID: 2, Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, 5, response.ActiveOrders)
	require.True(t, response.AcceptingOrders)

	require.Len(t, notifier.notifications, 1)
	require.Equal(t, 5, notifier.notifications[0].ActiveOrders)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, "update_shop_status", entry.Action)
	require.Equal(t, 5, entry.Details["active_orders"])
	require.Equal(t, true, entry.Details["accepting_orders"])
}

func TestShopStatusServiceUpdateWebhookFailureKeepsUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewShopStatusRepository(db)
	notifier := &notifierFake{err: errors.New("discord returned 429")}
	svc := NewShopStatusService(repo, notifier, testValidator(), &recorderFake{}, testLogger())

	_, err := svc.Update(context.Background(), dto.ShopStatusUpdateRequest{
		ActiveOrders:    ptrInt(3),
		AcceptingOrders: ptrBool(false),
	}, ActivityActor{ID: 2})
	require.ErrorIs(t, err, ErrNotificationFailed)
	require.Contains(t, err.Error(), "discord returned 429")

	// The upsert committed before the webhook call failed.
	status, getErr := svc.Get(context.Background())
	require.NoError(t, getErr)
	require.Equal(t, 3, status.ActiveOrders)
	require.False(t, status.AcceptingOrders)
}

func TestShopStatusServiceUpdateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopStatusService(repository.NewShopStatusRepository(db), &notifierFake{}, testValidator(), &recorderFake{}, testLogger())

	_, err := svc.Update(context.Background(), dto.ShopStatusUpdateRequest{}, ActivityActor{ID: 2})
	require.Error(t, err)
}

func TestShopStatusServiceGetDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopStatusService(repository.NewShopStatusRepository(db), &notifierFake{}, testValidator(), &recorderFake{}, testLogger())

	status, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.True(t, status.AcceptingOrders, "empty table defaults to accepting orders")
}
