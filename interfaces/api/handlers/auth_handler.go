package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	token, user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "username", req.Username, "error", err)
		return serviceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, &dto.AuthResponse{
		Token: token,
		User:  dto.UserToUserResponse(user, h.userService.AvatarURL(user)),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "username", req.Username, "reason", err.Error())
		return serviceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Login successful", "user_id", user.ID)
	return utils.SuccessResponse(c, &dto.AuthResponse{
		Token: token,
		User:  dto.UserToUserResponse(user, h.userService.AvatarURL(user)),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()

	current, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.userService.GetProfile(ctx, current.ID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.UserToUserResponse(user, h.userService.AvatarURL(user)))
}

// ForgotPassword always answers 200 so the endpoint cannot be used to probe emails.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.ForgotPasswordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := h.userService.ForgotPassword(ctx, req.Email); err != nil {
		logger.ErrorContext(ctx, "Forgot password failed", "error", err)
	}
	return utils.MessageResponse(c, "If the email is registered, a reset link has been sent")
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.ResetPasswordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := h.userService.ResetPassword(ctx, &req); err != nil {
		logger.WarnContext(ctx, "Password reset failed", "error", err)
		return serviceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Password has been reset")
}
