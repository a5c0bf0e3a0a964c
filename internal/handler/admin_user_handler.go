package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/service"
	"github.com/opsdeck/opsdeck-api/internal/utils"
)

// AdminUserHandler exposes the admin account management endpoints.
type AdminUserHandler struct {
	service   service.AdminUserService
	jwtSecret string
	logger    zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service service.AdminUserService, jwtSecret string, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service:   service,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches the dashboard account routes to the protected router group.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/activation", h.setActivation)
	router.Patch("/:id/subscription", h.updateSubscription)
}

// CreateUser preserves the wire contract of the original serverless
// create-user function: it performs its own token and role verification and
// answers with `{error}` / `{success, user_id, message}` payloads.
func (h *AdminUserHandler) CreateUser(c *fiber.Ctx) error {
	actorID, status, message := verifyAdmin(c, h.jwtSecret, h.service)
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	var payload dto.CreateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" || strings.TrimSpace(payload.FullName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, password and full_name are required"})
	}

	actor := service.ActivityActor{ID: actorID, Role: "admin"}
	user, err := h.service.Create(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email already registered"})
		case isValidationError(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			h.logger.Error().Err(err).Msg("failed to create user")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create user"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user_id": user.ID,
		"message": "user created successfully",
	})
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 25
	} else if pageSize > 200 {
		pageSize = 200
	}

	req := dto.AdminUserListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return utils.SendSuccess(c, "users", response)
}

func (h *AdminUserHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("failed to fetch user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	return utils.SendSuccess(c, "user", user)
}

func (h *AdminUserHandler) setActivation(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload dto.ActivationRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsActive == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "is_active is required")
	}

	user, err := h.service.SetActivation(c.Context(), id, *payload.IsActive, activityActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("failed to update activation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update activation")
	}

	return utils.SendSuccess(c, "activation updated", user)
}

func (h *AdminUserHandler) updateSubscription(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload dto.SubscriptionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateSubscription(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to update subscription")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update subscription")
		}
	}

	return utils.SendSuccess(c, "subscription updated", user)
}
