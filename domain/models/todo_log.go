package models

import (
	"fmt"
	"time"
)

// TodoLog is append-only. Rows go away with their todo.
type TodoLog struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	TodoID  int64     `gorm:"not null;index"`
	Action  string    `gorm:"type:text;not null"`
	LogTime time.Time `gorm:"not null;autoCreateTime;index"`
}

func (TodoLog) TableName() string {
	return "todo_logs"
}

const (
	LogActionCreate   = "create"
	LogActionUpdate   = "update"
	LogActionDelete   = "delete"
	LogActionComplete = "complete"
)

func LogActionChangePriority(name string) string {
	return fmt.Sprintf("change priority to %s", name)
}

func LogActionChangeCategory(name string) string {
	return fmt.Sprintf("change category to %s", name)
}

// TodoLogEntry is a log row joined with its todo title.
type TodoLogEntry struct {
	ID        int64     `db:"id" json:"id"`
	TodoID    int64     `db:"todo_id" json:"todoId"`
	Action    string    `db:"action" json:"action"`
	LogTime   time.Time `db:"log_time" json:"logTime"`
	TodoTitle string    `db:"todo_title" json:"todoTitle"`
}
