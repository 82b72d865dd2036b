package services

import (
	"context"
)

// ReminderTickResult summarizes one reminder tick.
type ReminderTickResult struct {
	Selected int  `json:"selected"`
	Sent     int  `json:"sent"`
	Failed   int  `json:"failed"`
	Deferred int  `json:"deferred"` // left for the next tick before the lock ran out
	Skipped  bool `json:"skipped"`  // another instance held the tick lock
}

type ReminderService interface {
	RegisterReminderJob() error
	RunTick(ctx context.Context) (ReminderTickResult, error)
}
