package serviceimpl

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/pkg/scheduler"
)

// memoryReminderRepo selects with the same rules as the SQL scan.
type memoryReminderRepo struct {
	mu      sync.Mutex
	users   map[int64]*models.User
	todos   map[int64]*models.Todo
	findErr error
}

func newMemoryReminderRepo() *memoryReminderRepo {
	return &memoryReminderRepo{
		users: make(map[int64]*models.User),
		todos: make(map[int64]*models.Todo),
	}
}

func (r *memoryReminderRepo) FindDue(_ context.Context, now time.Time) ([]repositories.DueReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}

	var due []repositories.DueReminder
	for _, t := range r.todos {
		owner := r.users[t.UserID]
		if !t.NeedsReminder(owner, now) {
			continue
		}
		due = append(due, repositories.DueReminder{
			TodoID:   t.ID,
			UserID:   t.UserID,
			Title:    t.Title,
			Deadline: *t.Deadline,
			ChatID:   *owner.TelegramChatID,
		})
	}
	sort.Slice(due, func(i, j int) bool { return due[i].TodoID < due[j].TodoID })
	return due, nil
}

func (r *memoryReminderRepo) MarkNotified(_ context.Context, todoID int64, deadline time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[todoID]
	if !ok || t.IsNotified || t.Deadline == nil || !t.Deadline.Equal(deadline) {
		return false, nil
	}
	t.IsNotified = true
	return true, nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	sent       map[int64][]string
	fail       map[int64]bool
	hang       map[int64]bool
	enabled    bool
	beforeSend func(chatID int64)
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		sent:    make(map[int64][]string),
		fail:    make(map[int64]bool),
		hang:    make(map[int64]bool),
		enabled: true,
	}
}

func (n *fakeNotifier) Send(ctx context.Context, chatID int64, message string) error {
	n.mu.Lock()
	fail, hang, hook := n.fail[chatID], n.hang[chatID], n.beforeSend
	n.mu.Unlock()

	if hook != nil {
		hook(chatID)
	}

	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if fail {
		return errors.New("telegram: chat not found")
	}

	n.mu.Lock()
	n.sent[chatID] = append(n.sent[chatID], message)
	n.mu.Unlock()
	return nil
}

func (n *fakeNotifier) IsEnabled() bool { return n.enabled }

func (n *fakeNotifier) count(chatID int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent[chatID])
}

type fakeLocker struct {
	held     bool
	err      error
	released int
}

func (l *fakeLocker) AcquireLock(context.Context, string, time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return !l.held, nil
}

func (l *fakeLocker) ReleaseLock(context.Context, string) error {
	l.released++
	return nil
}

var reminderNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func chatID(v int64) *int64 { return &v }

func deadlineIn(d time.Duration) *time.Time {
	t := reminderNow.Add(d)
	return &t
}

func newTestReminderService(repo *memoryReminderRepo, notifier *fakeNotifier, cfg ReminderConfig) *ReminderServiceImpl {
	return NewReminderService(repo, notifier, nil, nil, nil, cfg).
		WithClock(func() time.Time { return reminderNow })
}

func TestReminderService_SendsOncePerDeadline(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Title: "Pay rent", Status: models.TodoStatusPending, Deadline: deadlineIn(20 * time.Minute)}
	notifier := newFakeNotifier()
	svc := newTestReminderService(repo, notifier, ReminderConfig{})

	result, err := svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Selected)
	assert.Equal(t, 1, result.Sent)
	assert.True(t, repo.todos[10].IsNotified)

	result, err = svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Selected)
	assert.Equal(t, 1, notifier.count(100))
}

func TestReminderService_OutsideLeadWindow(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(40 * time.Minute)}
	notifier := newFakeNotifier()
	svc := newTestReminderService(repo, notifier, ReminderConfig{})

	result, err := svc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Selected)
	assert.False(t, repo.todos[10].IsNotified)
	assert.Zero(t, notifier.count(100))
}

func TestReminderService_SkipsIneligibleTodos(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.users[2] = &models.User{ID: 2, DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusCompleted, Completed: true, Deadline: deadlineIn(10 * time.Minute)}
	repo.todos[11] = &models.Todo{ID: 11, UserID: 2, Status: models.TodoStatusPending, Deadline: deadlineIn(10 * time.Minute)}
	repo.todos[12] = &models.Todo{ID: 12, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(-time.Minute)}
	repo.todos[13] = &models.Todo{ID: 13, UserID: 1, Status: models.TodoStatusPending}
	svc := newTestReminderService(repo, newFakeNotifier(), ReminderConfig{})

	result, err := svc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Selected)
}

func TestReminderService_FailedSendIsRetried(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.users[2] = &models.User{ID: 2, TelegramChatID: chatID(200), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(5 * time.Minute)}
	repo.todos[20] = &models.Todo{ID: 20, UserID: 2, Status: models.TodoStatusInProgress, Deadline: deadlineIn(5 * time.Minute)}
	notifier := newFakeNotifier()
	notifier.fail[100] = true
	svc := newTestReminderService(repo, notifier, ReminderConfig{})

	result, err := svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Selected)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, repo.todos[10].IsNotified)
	assert.True(t, repo.todos[20].IsNotified)

	notifier.fail[100] = false
	result, err = svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Selected)
	assert.Equal(t, 1, result.Sent)
	assert.True(t, repo.todos[10].IsNotified)
}

func TestReminderService_HungSendIsBounded(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.users[2] = &models.User{ID: 2, TelegramChatID: chatID(200), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(5 * time.Minute)}
	repo.todos[20] = &models.Todo{ID: 20, UserID: 2, Status: models.TodoStatusPending, Deadline: deadlineIn(5 * time.Minute)}
	notifier := newFakeNotifier()
	notifier.hang[100] = true
	svc := newTestReminderService(repo, notifier, ReminderConfig{SendTimeout: 50 * time.Millisecond})

	start := time.Now()
	result, err := svc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Sent)
	assert.True(t, repo.todos[20].IsNotified)
}

func TestReminderService_DeadlineMovedDuringSend(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Title: "Pay rent", Status: models.TodoStatusPending, Deadline: deadlineIn(20 * time.Minute)}
	notifier := newFakeNotifier()
	// the owner edits the deadline while the first reminder is in flight
	moved := *deadlineIn(25 * time.Minute)
	notifier.beforeSend = func(int64) {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		repo.todos[10].ApplyDeadline(&moved)
	}
	svc := newTestReminderService(repo, notifier, ReminderConfig{})

	result, err := svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.False(t, repo.todos[10].IsNotified)

	result, err = svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.True(t, repo.todos[10].IsNotified)
	assert.Equal(t, 2, notifier.count(100))
}

func TestReminderService_StopsSendingBeforeLockExpires(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	for _, id := range []int64{10, 11, 12} {
		repo.todos[id] = &models.Todo{ID: id, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(20 * time.Minute)}
	}
	locker := &fakeLocker{}
	calls := 0
	// every clock read is twenty seconds later than the previous one
	clock := func() time.Time {
		calls++
		return reminderNow.Add(time.Duration(calls-1) * 20 * time.Second)
	}
	cfg := ReminderConfig{Interval: 50 * time.Second, SendTimeout: 10 * time.Second, LockTTL: time.Minute}
	svc := NewReminderService(repo, newFakeNotifier(), locker, nil, nil, cfg).WithClock(clock)

	result, err := svc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Selected)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Deferred)
	assert.True(t, repo.todos[10].IsNotified)
	assert.True(t, repo.todos[11].IsNotified)
	assert.False(t, repo.todos[12].IsNotified)
	assert.Equal(t, 1, locker.released)
}

func TestNewReminderService_LockOutlivesOneSend(t *testing.T) {
	svc := NewReminderService(nil, nil, nil, nil, nil, ReminderConfig{Interval: time.Minute, SendTimeout: 10 * time.Second})
	assert.Equal(t, 70*time.Second, svc.config.LockTTL)

	svc = NewReminderService(nil, nil, nil, nil, nil, ReminderConfig{Interval: time.Minute, SendTimeout: 10 * time.Second, LockTTL: 5 * time.Second})
	assert.Equal(t, 70*time.Second, svc.config.LockTTL)
}

func TestReminderService_FindDueError(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestReminderService(repo, newFakeNotifier(), ReminderConfig{})

	_, err := svc.RunTick(context.Background())

	assert.ErrorContains(t, err, "connection refused")
}

func TestReminderService_LockHeldElsewhere(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(5 * time.Minute)}
	locker := &fakeLocker{held: true}
	svc := NewReminderService(repo, newFakeNotifier(), locker, nil, nil, ReminderConfig{}).
		WithClock(func() time.Time { return reminderNow })

	result, err := svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.False(t, repo.todos[10].IsNotified)

	locker.held = false
	result, err = svc.RunTick(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, locker.released)
}

func TestReminderService_LockErrorRunsAnyway(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(5 * time.Minute)}
	svc := NewReminderService(repo, newFakeNotifier(), &fakeLocker{err: errors.New("redis down")}, nil, nil, ReminderConfig{}).
		WithClock(func() time.Time { return reminderNow })

	result, err := svc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

func TestReminderService_DisabledNotifierLeavesRows(t *testing.T) {
	repo := newMemoryReminderRepo()
	repo.users[1] = &models.User{ID: 1, TelegramChatID: chatID(100), DefaultRemindMinutes: 30}
	repo.todos[10] = &models.Todo{ID: 10, UserID: 1, Status: models.TodoStatusPending, Deadline: deadlineIn(5 * time.Minute)}
	notifier := newFakeNotifier()
	notifier.enabled = false
	svc := newTestReminderService(repo, notifier, ReminderConfig{})

	result, err := svc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, repo.todos[10].IsNotified)
}

func TestReminderService_RegisterReminderJob(t *testing.T) {
	sched := scheduler.NewEventScheduler()
	svc := NewReminderService(newMemoryReminderRepo(), newFakeNotifier(), nil, nil, sched, ReminderConfig{Interval: 2 * time.Minute})

	require.NoError(t, svc.RegisterReminderJob())

	job, ok := sched.GetJob(ReminderJobID)
	require.True(t, ok)
	assert.Equal(t, "@every 2m0s", job.CronExpr)
	assert.Error(t, svc.RegisterReminderJob())
}

func TestFormatReminderMessage(t *testing.T) {
	msg := FormatReminderMessage(repositories.DueReminder{
		Title:    "<b>fix</b> & ship",
		Deadline: time.Date(2026, 10, 15, 2, 30, 0, 0, time.UTC),
	}, time.FixedZone("ICT", 7*3600))

	assert.True(t, strings.Contains(msg, "&lt;b&gt;fix&lt;/b&gt; &amp; ship"))
	assert.Contains(t, msg, "2026-10-15 09:30 ICT")
}
