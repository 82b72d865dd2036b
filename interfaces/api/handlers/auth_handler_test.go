package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/services"
)

func newAuthApp(svc *MockUserService) *fiber.App {
	h := NewAuthHandler(svc)
	app := fiber.New()
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/forgot-password", h.ForgotPassword)
	app.Post("/auth/reset-password", h.ResetPassword)
	return app
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(r *dto.RegisterRequest) bool {
		return r.Username == "alice"
	})).Return("jwt-token", &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)

	resp, body := doRequest(t, newAuthApp(svc), "POST", "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"123456","confirmPassword":"123456"}`)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, "alice", data["user"].(map[string]any)["username"])
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	svc := new(MockUserService)

	resp, _ := doRequest(t, newAuthApp(svc), "POST", "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"123456","confirmPassword":"654321"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, mock.Anything).Return("", nil, services.ErrUsernameTaken)

	resp, _ := doRequest(t, newAuthApp(svc), "POST", "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"123456","confirmPassword":"123456"}`)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Login", mock.Anything, mock.Anything).Return("", nil, services.ErrInvalidCredentials)

	resp, _ := doRequest(t, newAuthApp(svc), "POST", "/auth/login", `{"username":"alice","password":"nope"}`)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_ForgotPassword_AlwaysOK(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ForgotPassword", mock.Anything, "alice@example.com").Return(assert.AnError)

	resp, body := doRequest(t, newAuthApp(svc), "POST", "/auth/forgot-password", `{"email":"alice@example.com"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ResetPassword", mock.Anything, mock.Anything).Return(services.ErrInvalidResetToken)

	resp, _ := doRequest(t, newAuthApp(svc), "POST", "/auth/reset-password", `{"token":"x","newPassword":"abcdef"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
