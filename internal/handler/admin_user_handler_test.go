package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opsdeck/opsdeck-api/internal/dto"
	"github.com/opsdeck/opsdeck-api/internal/handler"
	"github.com/opsdeck/opsdeck-api/internal/models"
	"github.com/opsdeck/opsdeck-api/internal/repository"
	"github.com/opsdeck/opsdeck-api/internal/service"
)

const testSecret = "test-secret"

type userHandlerFixture struct {
	app   *fiber.App
	db    *gorm.DB
	users repository.UserRepository
}

func newUserHandlerFixture(t *testing.T) *userHandlerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ActivityLog{}))

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	userRepo := repository.NewUserRepository(db)
	activitySvc := service.NewActivityService(repository.NewActivityLogRepository(db), logger)
	userSvc := service.NewAdminUserService(userRepo, validate, activitySvc, logger)

	h := handler.NewAdminUserHandler(userSvc, testSecret, logger)
	app := fiber.New()
	app.Post("/api/admin/users", h.CreateUser)

	return &userHandlerFixture{app: app, db: db, users: userRepo}
}

func (f *userHandlerFixture) seedUser(t *testing.T, email, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password-123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Email: email, PasswordHash: string(hash), FullName: "Seed User", Role: role, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), &user))
	return user
}

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f *userHandlerFixture) countUsers(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&count).Error)
	return count
}

func TestCreateUserWithoutTokenIsUnauthorized(t *testing.T) {
	f := newUserHandlerFixture(t)
	before := f.countUsers(t)

	resp := postJSON(t, f.app, "/api/admin/users", "", fiber.Map{
		"email": "new@example.com", "password": "password-123", "full_name": "New User",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	require.Contains(t, body, "error")
	require.Equal(t, before, f.countUsers(t), "no account may be created")
}

func TestCreateUserWithNonAdminTokenIsForbidden(t *testing.T) {
	f := newUserHandlerFixture(t)
	member := f.seedUser(t, "member@example.com", models.RoleMember)
	before := f.countUsers(t)

	resp := postJSON(t, f.app, "/api/admin/users", signToken(t, member.ID, models.RoleMember), fiber.Map{
		"email": "new@example.com", "password": "password-123", "full_name": "New User",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, before, f.countUsers(t), "no account may be created")
}

func TestCreateUserMissingFields(t *testing.T) {
	f := newUserHandlerFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.RoleAdmin)

	resp := postJSON(t, f.app, "/api/admin/users", signToken(t, admin.ID, models.RoleAdmin), fiber.Map{
		"email": "new@example.com",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	require.Contains(t, body, "error")
}

func TestCreateUserSuccess(t *testing.T) {
	f := newUserHandlerFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.RoleAdmin)

	resp := postJSON(t, f.app, "/api/admin/users", signToken(t, admin.ID, models.RoleAdmin), fiber.Map{
		"email":         "ana@example.com",
		"password":      "password-123",
		"full_name":     "Ana Silva",
		"plan_type":     "pro",
		"plan_end_date": "2026-12-31",
		"is_active":     false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool    `json:"success"`
		UserID  uint    `json:"user_id"`
		Message string  `json:"message"`
		Error   *string `json:"error"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Success)
	require.NotZero(t, body.UserID)
	require.Nil(t, body.Error)

	created, err := f.users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.False(t, created.IsActive)
	require.Equal(t, "pro", created.PlanType)

	// One create_user audit record was written.
	var entries []models.ActivityLog
	require.NoError(t, f.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, "create_user", entries[0].Action)
	require.Equal(t, admin.ID, *entries[0].ActorID)
}

func TestCreateUserWithUnknownCallerIsUnauthorized(t *testing.T) {
	f := newUserHandlerFixture(t)
	before := f.countUsers(t)

	resp := postJSON(t, f.app, "/api/admin/users", signToken(t, 999, models.RoleAdmin), fiber.Map{
		"email": "new@example.com", "password": "password-123", "full_name": "New User",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, before, f.countUsers(t), "no account may be created")
}

type brokenUserService struct {
	service.AdminUserService
}

func (brokenUserService) Get(context.Context, uint) (dto.AdminUserResponse, error) {
	return dto.AdminUserResponse{}, errors.New("connection reset by peer")
}

func TestCreateUserStoreFailureIsServerError(t *testing.T) {
	logger := zerolog.New(io.Discard)
	h := handler.NewAdminUserHandler(brokenUserService{}, testSecret, logger)
	app := fiber.New()
	app.Post("/api/admin/users", h.CreateUser)

	resp := postJSON(t, app, "/api/admin/users", signToken(t, 1, models.RoleAdmin), fiber.Map{
		"email": "new@example.com", "password": "password-123", "full_name": "New User",
	})
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	require.Contains(t, body, "error")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newUserHandlerFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.RoleAdmin)

	payload := fiber.Map{"email": "ana@example.com", "password": "password-123", "full_name": "Ana"}
	resp := postJSON(t, f.app, "/api/admin/users", signToken(t, admin.ID, models.RoleAdmin), payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, f.app, "/api/admin/users", signToken(t, admin.ID, models.RoleAdmin), payload)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
