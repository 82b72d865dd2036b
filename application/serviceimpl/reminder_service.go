package serviceimpl

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/scheduler"
)

const ReminderJobID = "deadline_reminder"

// ReminderConfig holds the reminder tick settings.
type ReminderConfig struct {
	Interval    time.Duration  // tick interval (default: 1m)
	SendTimeout time.Duration  // per-send bound (default: 10s)
	LockTTL     time.Duration  // cross-instance lock TTL (default: Interval + SendTimeout)
	LockKey     string         // default: lock:reminder_tick
	Location    *time.Location // deadline display zone (default: UTC)
}

func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Interval:    time.Minute,
		SendTimeout: 10 * time.Second,
		LockKey:     "lock:reminder_tick",
		Location:    time.UTC,
	}
}

// ReminderServiceImpl scans for todos entering their lead window and sends one Telegram
// reminder per deadline. A row is marked notified only after a successful send.
type ReminderServiceImpl struct {
	repo      repositories.ReminderRepository
	notifier  ports.NotifierPort
	locker    ports.LockPort              // optional
	activity  ports.ActivityPublisherPort // optional
	scheduler scheduler.EventScheduler
	config    ReminderConfig
	now       func() time.Time
}

func NewReminderService(
	repo repositories.ReminderRepository,
	notifier ports.NotifierPort,
	locker ports.LockPort,
	activity ports.ActivityPublisherPort,
	sched scheduler.EventScheduler,
	config ReminderConfig,
) *ReminderServiceImpl {
	defaults := DefaultReminderConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.SendTimeout <= 0 {
		config.SendTimeout = defaults.SendTimeout
	}
	// a held lock must leave room for at least one bounded send
	if config.LockTTL <= config.SendTimeout {
		config.LockTTL = config.Interval + config.SendTimeout
	}
	if config.LockKey == "" {
		config.LockKey = defaults.LockKey
	}
	if config.Location == nil {
		config.Location = defaults.Location
	}

	return &ReminderServiceImpl{
		repo:      repo,
		notifier:  notifier,
		locker:    locker,
		activity:  activity,
		scheduler: sched,
		config:    config,
		now:       time.Now,
	}
}

// WithClock replaces the time source.
func (s *ReminderServiceImpl) WithClock(now func() time.Time) *ReminderServiceImpl {
	s.now = now
	return s
}

var _ services.ReminderService = (*ReminderServiceImpl)(nil)

// RegisterReminderJob adds the tick to the scheduler. gocron runs it in singleton mode.
func (s *ReminderServiceImpl) RegisterReminderJob() error {
	if s.scheduler == nil {
		return fmt.Errorf("reminder: scheduler is nil")
	}

	err := s.scheduler.AddIntervalJob(ReminderJobID, s.config.Interval, func() {
		ctx := context.Background()
		if _, err := s.RunTick(ctx); err != nil {
			logger.Error("Reminder tick failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register reminder job: %w", err)
	}

	logger.Info("Reminder job registered",
		"interval", s.config.Interval.String(),
		"send_timeout", s.config.SendTimeout.String(),
		"notifier_enabled", s.notifier != nil && s.notifier.IsEnabled(),
	)
	return nil
}

// RunTick performs one scan. Per-row send failures are counted and logged, never returned.
func (s *ReminderServiceImpl) RunTick(ctx context.Context) (services.ReminderTickResult, error) {
	var result services.ReminderTickResult
	log := logger.Component("reminder")

	now := s.now()

	// sends start only while the lock has a full send timeout left
	var lockExpiry time.Time
	if s.locker != nil {
		acquired, err := s.locker.AcquireLock(ctx, s.config.LockKey, s.config.LockTTL)
		switch {
		case err != nil:
			log.Warn("Reminder lock unavailable, running unlocked", "error", err)
		case !acquired:
			log.Debug("Reminder tick held by another instance")
			result.Skipped = true
			return result, nil
		default:
			lockExpiry = now.Add(s.config.LockTTL)
			defer func() {
				if err := s.locker.ReleaseLock(context.Background(), s.config.LockKey); err != nil {
					log.Warn("Failed to release reminder lock", "error", err)
				}
			}()
		}
	}

	due, err := s.repo.FindDue(ctx, now)
	if err != nil {
		return result, fmt.Errorf("find due reminders: %w", err)
	}
	result.Selected = len(due)
	if len(due) == 0 {
		return result, nil
	}

	log.Info("Reminders due", "count", len(due))

	for i, r := range due {
		if !lockExpiry.IsZero() && s.now().Add(s.config.SendTimeout).After(lockExpiry) {
			result.Deferred = len(due) - i
			log.Warn("Reminder lock running out, deferring the rest to the next tick", "deferred", result.Deferred)
			break
		}

		if err := s.send(ctx, r); err != nil {
			result.Failed++
			log.Warn("Reminder send failed, will retry next tick",
				"todo_id", r.TodoID,
				"user_id", r.UserID,
				"error", err,
			)
			continue
		}

		marked, err := s.repo.MarkNotified(ctx, r.TodoID, r.Deadline)
		if err != nil {
			log.Error("Reminder sent but notified flag not saved", "todo_id", r.TodoID, "error", err)
		} else if !marked {
			log.Warn("Todo already notified or its deadline moved", "todo_id", r.TodoID)
		}
		result.Sent++

		s.publish(ctx, r)
	}

	log.Info("Reminder tick completed",
		"selected", result.Selected,
		"sent", result.Sent,
		"failed", result.Failed,
		"deferred", result.Deferred,
	)
	return result, nil
}

func (s *ReminderServiceImpl) send(ctx context.Context, r repositories.DueReminder) error {
	if s.notifier == nil || !s.notifier.IsEnabled() {
		return fmt.Errorf("notifier is disabled")
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.config.SendTimeout)
	defer cancel()

	return s.notifier.Send(sendCtx, r.ChatID, FormatReminderMessage(r, s.config.Location))
}

func (s *ReminderServiceImpl) publish(ctx context.Context, r repositories.DueReminder) {
	if s.activity == nil {
		return
	}
	event := &ports.ActivityEvent{
		Type:      ports.ActivityTodoReminded,
		UserID:    r.UserID,
		TodoID:    r.TodoID,
		Title:     r.Title,
		Timestamp: s.now().UTC(),
	}
	if err := s.activity.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish reminder activity", "todo_id", r.TodoID, "error", err)
	}
}

// FormatReminderMessage renders the Telegram HTML body for one reminder.
func FormatReminderMessage(r repositories.DueReminder, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf(
		"⏰ <b>Reminder</b>\n\nYour task <b>%s</b> is due at <code>%s</code>.",
		html.EscapeString(r.Title),
		r.Deadline.In(loc).Format("2006-01-02 15:04 MST"),
	)
}
