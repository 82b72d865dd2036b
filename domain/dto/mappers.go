package dto

import (
	"github.com/pinkcat015/todolist/domain/models"
)

func UserToUserResponse(user *models.User, avatarURL string) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Email:                user.Email,
		FullName:             user.FullName,
		Phone:                user.Phone,
		Avatar:               avatarURL,
		TelegramChatID:       user.TelegramChatID,
		DefaultRemindMinutes: user.DefaultRemindMinutes,
		CreatedAt:            user.CreatedAt,
	}
}

func TodoToTodoResponse(todo *models.Todo) *TodoResponse {
	if todo == nil {
		return nil
	}
	resp := &TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Completed:   todo.Completed,
		PriorityID:  todo.PriorityID,
		CategoryID:  todo.CategoryID,
		Deadline:    todo.Deadline,
		IsNotified:  todo.IsNotified,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
	if todo.Priority != nil {
		resp.PriorityName = &todo.Priority.Name
	}
	if todo.Category != nil {
		resp.CategoryName = &todo.Category.Name
	}
	return resp
}

func TodoListItemToTodoResponse(item *models.TodoListItem) *TodoResponse {
	return &TodoResponse{
		ID:           item.ID,
		Title:        item.Title,
		Description:  item.Description,
		Status:       string(item.Status),
		Completed:    item.Completed,
		PriorityID:   item.PriorityID,
		PriorityName: item.PriorityName,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		Deadline:     item.Deadline,
		IsNotified:   item.IsNotified,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// TodoListItemsToResponses never returns nil so an empty page encodes as [].
func TodoListItemsToResponses(items []models.TodoListItem) []*TodoResponse {
	out := make([]*TodoResponse, 0, len(items))
	for i := range items {
		out = append(out, TodoListItemToTodoResponse(&items[i]))
	}
	return out
}

func CategoryToCategoryResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}

func CategoriesToResponses(categories []*models.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryToCategoryResponse(c))
	}
	return out
}

func PriorityToPriorityResponse(priority *models.Priority) *PriorityResponse {
	return &PriorityResponse{ID: priority.ID, Name: priority.Name}
}

func PrioritiesToResponses(priorities []*models.Priority) []*PriorityResponse {
	out := make([]*PriorityResponse, 0, len(priorities))
	for _, p := range priorities {
		out = append(out, PriorityToPriorityResponse(p))
	}
	return out
}
