package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

type TodoLogHandler struct {
	logService services.TodoLogService
}

func NewTodoLogHandler(logService services.TodoLogService) *TodoLogHandler {
	return &TodoLogHandler{logService: logService}
}

func (h *TodoLogHandler) List(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	entries, err := h.logService.ListLogs(c.UserContext(), user.ID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nonNilEntries(entries))
}

func (h *TodoLogHandler) ListForTodo(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	todoID, ok := paramID(c, "todoId")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid todo ID")
	}

	entries, err := h.logService.ListTodoLogs(c.UserContext(), user.ID, todoID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nonNilEntries(entries))
}

func (h *TodoLogHandler) Delete(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid log ID")
	}

	if err := h.logService.DeleteLog(c.UserContext(), user.ID, id); err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Log deleted")
}

func (h *TodoLogHandler) Clear(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	n, err := h.logService.ClearLogs(ctx, user.ID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Todo logs cleared", "user_id", user.ID, "deleted", n)
	return utils.SuccessResponse(c, dto.DeletedResponse{Deleted: n})
}

func nonNilEntries(entries []models.TodoLogEntry) []models.TodoLogEntry {
	if entries == nil {
		return []models.TodoLogEntry{}
	}
	return entries
}
