package service

import (
	"context"
	"math"

	"taskpulse/internal/core/domain"
)

// SnoozeReminder re-arms a fired reminder so that it triggers again the
// given number of minutes from now. The offset is recomputed relative to
// the due date: trigger = due_date - offset = now + minutes.
func (s *TaskService) SnoozeReminder(ctx context.Context, ownerID string, taskID uint64, minutes int) (domain.Task, error) {
	if minutes < 0 {
		return domain.Task{}, domain.ErrInvalidReminder
	}
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		if task.DueDate == nil {
			return domain.ErrMissingDueDate
		}
		if task.Reminder == nil {
			return domain.ErrSnoozeUnavailable
		}

		untilDue := task.DueDate.Sub(s.now()).Minutes()
		task.Reminder.OffsetMinutes = int(math.Round(untilDue)) - minutes
		task.Reminder.Notified = false
		return nil
	})
}
