package models

import (
	"time"
)

// DefaultPriorityName is assigned to new todos that do not pick one.
const DefaultPriorityName = "low"

// Priority is a global lookup shared by every user.
type Priority struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Priority) TableName() string {
	return "priorities"
}
