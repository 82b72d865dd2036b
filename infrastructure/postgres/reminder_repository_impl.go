package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type ReminderRepositoryImpl struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) repositories.ReminderRepository {
	return &ReminderRepositoryImpl{db: db}
}

func (r *ReminderRepositoryImpl) FindDue(ctx context.Context, now time.Time) ([]repositories.DueReminder, error) {
	query, args, err := BuildDueRemindersQuery(now)
	if err != nil {
		return nil, err
	}

	due := []repositories.DueReminder{}
	if err := r.db.SelectContext(ctx, &due, query, args...); err != nil {
		return nil, fmt.Errorf("select due reminders: %w", err)
	}
	return due, nil
}

func (r *ReminderRepositoryImpl) MarkNotified(ctx context.Context, todoID int64, deadline time.Time) (bool, error) {
	query, args, err := psql.Update("todos").
		Set("is_notified", true).
		Where(squirrel.Eq{"id": todoID, "is_notified": false, "deadline": deadline}).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark todo %d notified: %w", todoID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// BuildDueRemindersQuery selects unnotified, open todos whose deadline lies in
// (now, now + owner's lead minutes] for owners with a linked chat.
func BuildDueRemindersQuery(now time.Time) (string, []any, error) {
	now = now.UTC()
	return psql.Select(
		"t.id AS todo_id",
		"t.user_id",
		"t.title",
		"t.deadline",
		"u.telegram_chat_id AS chat_id",
	).
		From("todos t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.NotEq{"t.status": string(models.TodoStatusCompleted)}).
		Where(squirrel.Eq{"t.is_notified": false}).
		Where("t.deadline IS NOT NULL").
		Where("u.telegram_chat_id IS NOT NULL").
		Where(squirrel.Gt{"t.deadline": now}).
		Where(squirrel.Expr("t.deadline <= ?::timestamptz + make_interval(mins => u.default_remind_minutes)", now)).
		OrderBy("t.deadline ASC", "t.id ASC").
		ToSql()
}
