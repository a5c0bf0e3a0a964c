package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsdeck/opsdeck-api/internal/service"
)

// Embed colors used for the shop status notification.
const (
	colorGreen = 0x57F287
	colorRed   = 0xED4245
)

// Config contains the webhook settings required to notify Discord.
type Config struct {
	WebhookURL string
	Timeout    time.Duration
}

// Service posts shop status notifications to a Discord webhook. It implements
// service.ShopNotifier.
type Service struct {
	webhookURL string
	client     *http.Client
	logger     zerolog.Logger
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// New constructs a Discord webhook notifier.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("discord webhook url must be provided")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Service{
		webhookURL: cfg.WebhookURL,
		client:     &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "discord").Logger(),
	}, nil
}

// NotifyShopStatus posts a status embed to the configured webhook.
func (s *Service) NotifyShopStatus(ctx context.Context, notification service.ShopStatusNotification) error {
	description := "🔴 The shop is currently **not accepting new orders**."
	color := colorRed
	if notification.AcceptingOrders {
		description = "🟢 The shop is **open for new orders**."
		color = colorGreen
	}

	payload := webhookPayload{Embeds: []embed{{
		Title:       "Shop status updated",
		Description: description,
		Color:       color,
		Fields: []embedField{{
			Name:   "Active orders",
			Value:  fmt.Sprintf("%d", notification.ActiveOrders),
			Inline: true,
		}},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	s.logger.Info().Int("active_orders", notification.ActiveOrders).
		Bool("accepting_orders", notification.AcceptingOrders).
		Msg("shop status posted to discord")

	return nil
}
