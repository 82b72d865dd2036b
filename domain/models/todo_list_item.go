package models

import (
	"time"
)

// TodoListItem is a todo row with its priority and category names resolved.
type TodoListItem struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	Status       TodoStatus `db:"status"`
	Completed    bool       `db:"completed"`
	PriorityID   *int64     `db:"priority_id"`
	CategoryID   *int64     `db:"category_id"`
	Deadline     *time.Time `db:"deadline"`
	IsNotified   bool       `db:"is_notified"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	PriorityName *string    `db:"priority_name"`
	CategoryName *string    `db:"category_name"`
}
