package repositories

import (
	"context"
	"time"
)

// DueReminder is one todo selected by the reminder scan, joined with its owner's destination.
type DueReminder struct {
	TodoID   int64     `db:"todo_id"`
	UserID   int64     `db:"user_id"`
	Title    string    `db:"title"`
	Deadline time.Time `db:"deadline"`
	ChatID   int64     `db:"chat_id"`
}

type ReminderRepository interface {
	// FindDue returns unnotified, uncompleted todos whose deadline is in (now, now+lead].
	FindDue(ctx context.Context, now time.Time) ([]DueReminder, error)
	// MarkNotified flips is_notified for one todo if its deadline is still the one that was
	// reminded. False means it was already set or the deadline has moved since.
	MarkNotified(ctx context.Context, todoID int64, deadline time.Time) (bool, error)
}
