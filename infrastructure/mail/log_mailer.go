package mail

import (
	"context"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

// LogMailer is used when no SMTP host is configured. The reset link goes to the log.
type LogMailer struct{}

func NewLogMailer() ports.MailerPort {
	return &LogMailer{}
}

func (LogMailer) SendPasswordReset(ctx context.Context, to, username, resetLink string) error {
	logger.InfoContext(ctx, "SMTP not configured, password reset link logged",
		"to", to,
		"username", username,
		"link", resetLink,
	)
	return nil
}
