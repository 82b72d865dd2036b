package messaging

import (
	"context"
	"sync"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

// LocalBus delivers activity events inside one process. It is used when NATS is not configured.
type LocalBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int64]map[int]func(*ports.ActivityEvent)
}

var (
	_ ports.ActivityPublisherPort  = (*LocalBus)(nil)
	_ ports.ActivitySubscriberPort = (*LocalBus)(nil)
)

func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[int64]map[int]func(*ports.ActivityEvent))}
}

func (b *LocalBus) Publish(_ context.Context, event *ports.ActivityEvent) error {
	b.mu.RLock()
	handlers := make([]func(*ports.ActivityEvent), 0, len(b.handlers[event.UserID]))
	for _, h := range b.handlers[event.UserID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		e := *event
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Activity handler panicked", "error", r)
				}
			}()
			h(&e)
		}()
	}
	return nil
}

func (b *LocalBus) SubscribeUser(userID int64, handler func(event *ports.ActivityEvent)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[userID] == nil {
		b.handlers[userID] = make(map[int]func(*ports.ActivityEvent))
	}
	b.handlers[userID][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers[userID], id)
			if len(b.handlers[userID]) == 0 {
				delete(b.handlers, userID)
			}
		})
	}, nil
}
