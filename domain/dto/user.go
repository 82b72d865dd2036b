package dto

import (
	"io"
	"time"
)

// UpdateProfileRequest is accepted as JSON or multipart form (with an "avatar" file part).
// Nil fields are left unchanged. TelegramChatID 0 unlinks the chat.
type UpdateProfileRequest struct {
	FullName             *string `json:"fullName" form:"fullName" validate:"omitempty,max=100"`
	Phone                *string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	TelegramChatID       *int64  `json:"telegramChatId" form:"telegramChatId"`
	DefaultRemindMinutes *int    `json:"defaultRemindMinutes" form:"defaultRemindMinutes" validate:"omitempty,min=1,max=10080"`
}

// AvatarUpload is the validated avatar part of a profile update.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UserResponse struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	FullName             string    `json:"fullName"`
	Phone                string    `json:"phone"`
	Avatar               string    `json:"avatar,omitempty"`
	TelegramChatID       *int64    `json:"telegramChatId"`
	DefaultRemindMinutes int       `json:"defaultRemindMinutes"`
	CreatedAt            time.Time `json:"createdAt"`
}
