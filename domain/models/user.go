package models

import (
	"time"
)

const DefaultRemindMinutes = 30

type User struct {
	ID                   int64   `gorm:"primaryKey;autoIncrement"`
	Username             string  `gorm:"size:50;uniqueIndex;not null"`
	Email                string  `gorm:"size:255;uniqueIndex;not null"`
	Password             string  `gorm:"not null"`
	FullName             string  `gorm:"size:100"`
	Phone                string  `gorm:"size:20"`
	Avatar               string  `gorm:"size:500"` // storage key, resolved to a URL in responses
	ResetToken           *string `gorm:"size:128;index"`
	ResetTokenExpiresAt  *time.Time
	TelegramChatID       *int64 `gorm:"index"`
	DefaultRemindMinutes int    `gorm:"not null;default:30"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (User) TableName() string {
	return "users"
}

// HasNotificationTarget reports whether reminders can be delivered to this user.
func (u *User) HasNotificationTarget() bool {
	return u.TelegramChatID != nil && *u.TelegramChatID != 0
}

// ResetTokenValid reports whether token matches the active, unexpired reset token.
func (u *User) ResetTokenValid(token string, now time.Time) bool {
	if u.ResetToken == nil || token == "" || *u.ResetToken != token {
		return false
	}
	return u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}

func (u *User) ClearResetToken() {
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
}
