package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

type TodoHandler struct {
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// List serves GET /todos?page&limit&q&status&priority&category&completed.
func (h *TodoHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var query dto.TodoListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}

	filter, err := query.ToFilter(user.ID)
	if err != nil {
		var fe *dto.FieldError
		if errors.As(err, &fe) {
			logger.WarnContext(ctx, "Invalid todo filter", "field", fe.Field, "error", fe.Message)
			return utils.ValidationErrorResponse(c, []utils.ValidationError{{Field: fe.Field, Message: fe.Error()}})
		}
		return utils.BadRequestResponse(c, err.Error())
	}

	items, total, err := h.todoService.ListTodos(ctx, filter)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return utils.PaginatedSuccessResponse(c, dto.TodoListItemsToResponses(items), total, filter.Page, filter.Limit)
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTodoRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	todo, err := h.todoService.CreateTodo(ctx, user.ID, &req)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, dto.TodoToTodoResponse(todo))
}

func (h *TodoHandler) Get(c *fiber.Ctx) error {
	return h.withTodo(c, func(userID, todoID int64) (*models.Todo, error) {
		return h.todoService.GetTodo(c.UserContext(), userID, todoID)
	})
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTodoRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	return h.withTodo(c, func(userID, todoID int64) (*models.Todo, error) {
		return h.todoService.UpdateTodo(c.UserContext(), userID, todoID, &req)
	})
}

func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid todo ID")
	}

	if err := h.todoService.DeleteTodo(ctx, user.ID, id); err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Todo deleted")
}

func (h *TodoHandler) Complete(c *fiber.Ctx) error {
	return h.withTodo(c, func(userID, todoID int64) (*models.Todo, error) {
		return h.todoService.CompleteTodo(c.UserContext(), userID, todoID)
	})
}

func (h *TodoHandler) ChangePriority(c *fiber.Ctx) error {
	var req dto.ChangePriorityRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	return h.withTodo(c, func(userID, todoID int64) (*models.Todo, error) {
		return h.todoService.ChangePriority(c.UserContext(), userID, todoID, req.PriorityID)
	})
}

func (h *TodoHandler) ChangeCategory(c *fiber.Ctx) error {
	var req dto.ChangeCategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	return h.withTodo(c, func(userID, todoID int64) (*models.Todo, error) {
		return h.todoService.ChangeCategory(c.UserContext(), userID, todoID, req.CategoryID)
	})
}

// withTodo resolves the caller and :id, runs fn and renders the resulting todo.
func (h *TodoHandler) withTodo(c *fiber.Ctx, fn func(userID, todoID int64) (*models.Todo, error)) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid todo ID")
	}

	todo, err := fn(user.ID, id)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TodoToTodoResponse(todo))
}
