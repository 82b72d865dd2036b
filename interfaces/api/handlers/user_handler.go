package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	current, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.userService.GetProfile(ctx, current.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile not found", "user_id", current.ID)
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.UserToUserResponse(user, h.userService.AvatarURL(user)))
}

// UpdateProfile accepts JSON or multipart/form-data. The avatar is only read from multipart.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	current, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateProfileRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var avatar *dto.AvatarUpload
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if fh, err := c.FormFile("avatar"); err == nil {
			avatar = &dto.AvatarUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
				Open: func() (io.ReadCloser, error) {
					f, err := fh.Open()
					if err != nil {
						return nil, err
					}
					return f, nil
				},
			}
		}
	}

	user, err := h.userService.UpdateProfile(ctx, current.ID, &req, avatar)
	if err != nil {
		logger.WarnContext(ctx, "Profile update failed", "user_id", current.ID, "error", err)
		return serviceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", current.ID, "avatar", avatar != nil)
	return utils.SuccessResponse(c, dto.UserToUserResponse(user, h.userService.AvatarURL(user)))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	current, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.ChangePasswordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := h.userService.ChangePassword(ctx, current.ID, &req); err != nil {
		logger.WarnContext(ctx, "Change password failed", "user_id", current.ID, "error", err)
		return serviceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Password changed")
}
