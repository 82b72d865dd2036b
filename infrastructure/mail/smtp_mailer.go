package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

// dialer is the part of gomail.Dialer the mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	dialer dialer
	from   string
	app    string
}

func NewSMTPMailer(cfg SMTPConfig) ports.MailerPort {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		app:    cfg.AppName,
	}
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hi {{.Username}},</p>
<p>We received a request to reset the password of your {{.App}} account.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>`))

// RenderPasswordReset builds the subject and HTML body of the reset email.
func RenderPasswordReset(app, username, resetLink string) (string, string, error) {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, struct {
		App, Username, Link string
	}{app, username, resetLink})
	if err != nil {
		return "", "", fmt.Errorf("render reset email: %w", err)
	}
	return app + " password reset", body.String(), nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, username, resetLink string) error {
	subject, body, err := RenderPasswordReset(m.app, username, resetLink)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorContext(ctx, "Failed to send password reset email", "to", to, "error", err)
			return fmt.Errorf("send reset email: %w", err)
		}
		logger.InfoContext(ctx, "Password reset email sent", "to", to)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
