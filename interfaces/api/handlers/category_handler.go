package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	categories, err := h.categoryService.ListCategories(ctx, user.ID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.CategoriesToResponses(categories))
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.CreateCategory(ctx, user.ID, req.Name)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Category created", "category_id", category.ID)
	return utils.CreatedResponse(c, dto.CategoryToCategoryResponse(category))
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid category ID")
	}

	var req dto.CategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.UpdateCategory(ctx, user.ID, id, req.Name)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.CategoryToCategoryResponse(category))
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid category ID")
	}

	if err := h.categoryService.DeleteCategory(ctx, user.ID, id); err != nil {
		return serviceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Category deleted", "category_id", id)
	return utils.MessageResponse(c, "Category deleted")
}
