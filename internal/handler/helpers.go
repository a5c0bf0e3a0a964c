package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/opsdeck/opsdeck-api/internal/middleware"
	"github.com/opsdeck/opsdeck-api/internal/models"
	"github.com/opsdeck/opsdeck-api/internal/service"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseParamID(c *fiber.Ctx, key string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
		if id, ok := v.(int); ok && id >= 0 {
			return uint(id)
		}
	}
	return 0
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func activityActorFromContext(c *fiber.Ctx) service.ActivityActor {
	return service.ActivityActor{
		ID:   userIDFromContext(c),
		Role: userRoleFromContext(c),
	}
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// verifyAdmin authenticates a bearer token and checks the caller's stored
// role, the way the legacy serverless handlers did: token first, then a
// fresh role lookup against the primary store. Returns the actor id, or the
// HTTP status to respond with and a message.
func verifyAdmin(c *fiber.Ctx, secret string, users service.AdminUserService) (uint, int, string) {
	actorID, _, err := middleware.ParseBearer(c.Get("Authorization"), secret)
	if err != nil {
		return 0, fiber.StatusUnauthorized, "missing or invalid authorization token"
	}

	caller, err := users.Get(c.Context(), actorID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return 0, fiber.StatusUnauthorized, "missing or invalid authorization token"
		}
		return 0, fiber.StatusInternalServerError, "failed to verify caller"
	}
	if caller.Role != models.RoleAdmin {
		return 0, fiber.StatusForbidden, "admin privileges required"
	}

	return actorID, 0, ""
}
