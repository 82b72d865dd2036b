package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

// SubjectActivity prefixes per-user activity subjects: todo.activity.<userID>
const SubjectActivity = "todo.activity"

func ActivitySubject(userID int64) string {
	return fmt.Sprintf("%s.%d", SubjectActivity, userID)
}

type ActivityPublisher struct {
	conn *nats.Conn
}

func NewActivityPublisher(conn *nats.Conn) ports.ActivityPublisherPort {
	return &ActivityPublisher{conn: conn}
}

func (p *ActivityPublisher) Publish(_ context.Context, event *ports.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}
	return p.conn.Publish(ActivitySubject(event.UserID), data)
}

type ActivitySubscriber struct {
	conn *nats.Conn
}

func NewActivitySubscriber(conn *nats.Conn) ports.ActivitySubscriberPort {
	return &ActivitySubscriber{conn: conn}
}

func (s *ActivitySubscriber) SubscribeUser(userID int64, handler func(event *ports.ActivityEvent)) (func(), error) {
	sub, err := s.conn.Subscribe(ActivitySubject(userID), func(msg *nats.Msg) {
		var event ports.ActivityEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("Failed to parse activity event", "subject", msg.Subject, "error", err)
			return
		}

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Activity handler panicked", "error", r)
			}
		}()
		handler(&event)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", ActivitySubject(userID), err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe activity", "user_id", userID, "error", err)
		}
	}, nil
}
