package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/service"
	"github.com/opsdeck/opsdeck-api/internal/utils"
)

// ShopStatusHandler exposes the shop status endpoints.
type ShopStatusHandler struct {
	service   service.ShopStatusService
	users     service.AdminUserService
	jwtSecret string
	logger    zerolog.Logger
}

// NewShopStatusHandler constructs the handler.
func NewShopStatusHandler(service service.ShopStatusService, users service.AdminUserService, jwtSecret string, logger zerolog.Logger) *ShopStatusHandler {
	return &ShopStatusHandler{
		service:   service,
		users:     users,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("component", "shop_status_handler").Logger(),
	}
}

// Register attaches the read endpoint to the protected router group.
func (h *ShopStatusHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

// Update preserves the wire contract of the original serverless
// update-discord-status function: every failure answers 400 with
// `{success:false, error}`, and the webhook error text is passed through.
func (h *ShopStatusHandler) Update(c *fiber.Ctx) error {
	actorID, status, message := verifyAdmin(c, h.jwtSecret, h.users)
	if status != 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": message})
	}

	var payload dto.ShopStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}

	actor := service.ActivityActor{ID: actorID, Role: "admin"}
	if _, err := h.service.Update(c.Context(), payload, actor); err != nil {
		if !errors.Is(err, service.ErrNotificationFailed) && !isValidationError(err) {
			h.logger.Error().Err(err).Msg("failed to update shop status")
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "shop status updated"})
}

func (h *ShopStatusHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch shop status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch shop status")
	}

	return utils.SendSuccess(c, "shop status", response)
}
