package services

import "errors"

// Ownership failures use the same not-found errors as missing rows.
var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrPriorityNotFound = errors.New("priority not found")
	ErrLogNotFound      = errors.New("log not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrPriorityNameTaken  = errors.New("priority already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrInvalidAvatar      = errors.New("avatar must be an image")
	ErrAvatarTooLarge     = errors.New("avatar is too large")
)
