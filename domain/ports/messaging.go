package ports

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Activity Port - todo mutations and delivered reminders, per user
// ═══════════════════════════════════════════════════════════════════════════════

const (
	ActivityTodoCreated         = "todo.created"
	ActivityTodoUpdated         = "todo.updated"
	ActivityTodoDeleted         = "todo.deleted"
	ActivityTodoCompleted       = "todo.completed"
	ActivityTodoPriorityChanged = "todo.priority_changed"
	ActivityTodoCategoryChanged = "todo.category_changed"
	ActivityTodoReminded        = "todo.reminded"
)

type ActivityEvent struct {
	Type      string    `json:"type"`
	UserID    int64     `json:"userId"`
	TodoID    int64     `json:"todoId"`
	Title     string    `json:"title,omitempty"`
	Action    string    `json:"action,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityPublisherPort publishes events. Publishing is best effort for callers.
type ActivityPublisherPort interface {
	Publish(ctx context.Context, event *ActivityEvent) error
}

// ActivitySubscriberPort streams one user's events until the returned cancel is called.
type ActivitySubscriberPort interface {
	SubscribeUser(userID int64, handler func(event *ActivityEvent)) (cancel func(), err error)
}
