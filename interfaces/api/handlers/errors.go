package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

// serviceErrorResponse maps domain errors to a status. Unknown errors are logged
// and rendered as an opaque 500.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrPriorityNotFound),
		errors.Is(err, services.ErrLogNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return utils.NotFoundResponse(c, err.Error())

	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPriorityNameTaken):
		return utils.ConflictResponse(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.UnauthorizedResponse(c, err.Error())

	case errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrInvalidResetToken),
		errors.Is(err, services.ErrInvalidAvatar):
		return utils.BadRequestResponse(c, err.Error())

	case errors.Is(err, services.ErrAvatarTooLarge):
		return utils.PayloadTooLargeResponse(c, err.Error())
	}

	logger.ErrorContext(c.UserContext(), "Request failed", "path", c.Path(), "error", err)
	return utils.InternalServerErrorResponse(c)
}

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// parseBody binds and validates a JSON body. It writes the error response itself
// and returns false when the request must stop.
func parseBody(c *fiber.Ctx, req any) (bool, error) {
	ctx := c.UserContext()

	if err := c.BodyParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errs)
		return false, utils.ValidationErrorResponse(c, errs)
	}
	return true, nil
}
