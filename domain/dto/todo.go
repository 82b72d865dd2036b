package dto

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// === Requests ===

type CreateTodoRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	PriorityID  *int64     `json:"priorityId" validate:"omitempty,gt=0"`
	CategoryID  *int64     `json:"categoryId" validate:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateTodoRequest replaces every editable field. Omitted optional fields are cleared.
type UpdateTodoRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Completed   *bool      `json:"completed"`
	PriorityID  *int64     `json:"priorityId" validate:"omitempty,gt=0"`
	CategoryID  *int64     `json:"categoryId" validate:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline"`
}

// ResolvedStatus picks the status to store. An explicit status wins over the completed flag.
func (r *UpdateTodoRequest) ResolvedStatus(current models.TodoStatus) models.TodoStatus {
	if r.Status != "" {
		return models.TodoStatus(r.Status)
	}
	if r.Completed != nil {
		if *r.Completed {
			return models.TodoStatusCompleted
		}
		if current == models.TodoStatusCompleted {
			return models.TodoStatusPending
		}
	}
	return current
}

type ChangePriorityRequest struct {
	PriorityID int64 `json:"priorityId" validate:"required,gt=0"`
}

type ChangeCategoryRequest struct {
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
}

// TodoListQuery is bound from the query string of GET /todos. Everything arrives as text.
type TodoListQuery struct {
	Page      string `query:"page"`
	Limit     string `query:"limit"`
	Q         string `query:"q"`
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	Category  string `query:"category"`
	Completed string `query:"completed"`
}

// FieldError names the query parameter that could not be parsed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ToFilter coerces pagination and parses the optional filters. Empty values mean "not filtered".
// Page and limit never fail: anything that is not a positive integer falls back to its default.
func (q TodoListQuery) ToFilter(userID int64) (repositories.TodoListFilter, error) {
	filter := repositories.TodoListFilter{
		UserID: userID,
		Page:   positiveOr(q.Page, DefaultPage),
		Limit:  positiveOr(q.Limit, DefaultLimit),
		Search: strings.TrimSpace(q.Q),
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	if s := strings.TrimSpace(q.Status); s != "" {
		status := models.TodoStatus(s)
		if !status.Valid() {
			return filter, &FieldError{Field: "status", Message: "must be one of pending, in_progress, completed"}
		}
		filter.Status = &status
	}

	var err error
	if filter.PriorityID, err = optionalID("priority", q.Priority); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = optionalID("category", q.Category); err != nil {
		return filter, err
	}

	if c := strings.TrimSpace(q.Completed); c != "" {
		completed, err := strconv.ParseBool(c)
		if err != nil {
			return filter, &FieldError{Field: "completed", Message: "must be true or false"}
		}
		filter.Completed = &completed
	}

	return filter, nil
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func optionalID(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, &FieldError{Field: field, Message: "must be a positive integer"}
	}
	return &id, nil
}

// IsFieldError reports whether err came from query parsing.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}

// === Responses ===

type TodoResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	Completed    bool       `json:"completed"`
	PriorityID   *int64     `json:"priorityId"`
	PriorityName *string    `json:"priorityName"`
	CategoryID   *int64     `json:"categoryId"`
	CategoryName *string    `json:"categoryName"`
	Deadline     *time.Time `json:"deadline"`
	IsNotified   bool       `json:"isNotified"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
