package ports

import "context"

// ═══════════════════════════════════════════════════════════════════════════════
// Notifier Port - outbound chat notifications (Telegram)
// ═══════════════════════════════════════════════════════════════════════════════

// NotifierPort delivers a message to a chat destination. Implementations must
// honor ctx cancellation so callers can bound each send.
type NotifierPort interface {
	Send(ctx context.Context, chatID int64, message string) error
	IsEnabled() bool
}

// MailerPort sends transactional email.
type MailerPort interface {
	SendPasswordReset(ctx context.Context, to, username, resetLink string) error
}
