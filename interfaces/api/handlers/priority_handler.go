package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/utils"
)

// PriorityHandler manages the global priority table.
type PriorityHandler struct {
	priorityService services.PriorityService
}

func NewPriorityHandler(priorityService services.PriorityService) *PriorityHandler {
	return &PriorityHandler{priorityService: priorityService}
}

func (h *PriorityHandler) List(c *fiber.Ctx) error {
	priorities, err := h.priorityService.ListPriorities(c.UserContext())
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.PrioritiesToResponses(priorities))
}

func (h *PriorityHandler) Create(c *fiber.Ctx) error {
	var req dto.PriorityRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	priority, err := h.priorityService.CreatePriority(c.UserContext(), req.Name)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, dto.PriorityToPriorityResponse(priority))
}

func (h *PriorityHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid priority ID")
	}

	var req dto.PriorityRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	priority, err := h.priorityService.UpdatePriority(c.UserContext(), id, req.Name)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.PriorityToPriorityResponse(priority))
}

func (h *PriorityHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid priority ID")
	}

	if err := h.priorityService.DeletePriority(c.UserContext(), id); err != nil {
		return serviceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Priority deleted")
}
