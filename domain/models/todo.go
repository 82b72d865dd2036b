package models

import (
	"time"
)

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusCompleted  TodoStatus = "completed"
)

func (s TodoStatus) Valid() bool {
	switch s {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted:
		return true
	}
	return false
}

type Todo struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	UserID      int64      `gorm:"not null;index"`
	Title       string     `gorm:"size:255;not null"`
	Description *string    `gorm:"type:text"`
	Status      TodoStatus `gorm:"size:20;not null;default:'pending';index"`
	Completed   bool       `gorm:"not null;default:false"`
	PriorityID  *int64     `gorm:"index"`
	CategoryID  *int64     `gorm:"index"`
	Deadline    *time.Time `gorm:"index"`
	IsNotified  bool       `gorm:"column:is_notified;not null;default:false"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Priority *Priority `gorm:"foreignKey:PriorityID;constraint:OnDelete:SET NULL"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Logs     []TodoLog `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE"`
}

func (Todo) TableName() string {
	return "todos"
}

// SetStatus keeps Completed in step with Status.
func (t *Todo) SetStatus(status TodoStatus) {
	t.Status = status
	t.Completed = status == TodoStatusCompleted
}

// ApplyDeadline sets the deadline and re-arms the reminder when the value changes.
// Returns true when the deadline changed.
func (t *Todo) ApplyDeadline(deadline *time.Time) bool {
	if sameInstant(t.Deadline, deadline) {
		return false
	}
	t.Deadline = deadline
	t.IsNotified = false
	return true
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// ReminderState describes a todo only from the notification point of view.
type ReminderState string

const (
	ReminderNotDue            ReminderState = "not_due"
	ReminderDueUnnotified     ReminderState = "due_unnotified"
	ReminderDueNotified       ReminderState = "due_notified"
	ReminderExpiredUnnotified ReminderState = "expired_unnotified"
)

func (t *Todo) ReminderState(now time.Time, leadMinutes int) ReminderState {
	if t.Deadline == nil {
		return ReminderNotDue
	}
	if t.IsNotified {
		return ReminderDueNotified
	}
	if !t.Deadline.After(now) {
		return ReminderExpiredUnnotified
	}
	if !t.Deadline.After(now.Add(time.Duration(leadMinutes) * time.Minute)) {
		return ReminderDueUnnotified
	}
	return ReminderNotDue
}

// NeedsReminder mirrors the reminder scan: due, unnotified, not completed, owner reachable.
func (t *Todo) NeedsReminder(owner *User, now time.Time) bool {
	if t.Status == TodoStatusCompleted || owner == nil || !owner.HasNotificationTarget() {
		return false
	}
	return t.ReminderState(now, owner.DefaultRemindMinutes) == ReminderDueUnnotified
}
