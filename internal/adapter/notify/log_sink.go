package notify

import (
	"go.uber.org/zap"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// LogSink writes delivered reminders to the structured log. It stands in
// for push or email delivery, which live outside this service.
type LogSink struct {
	logger *zap.Logger
}

var _ ports.Notifier = (*LogSink)(nil)

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(task domain.Task) {
	fields := []zap.Field{
		zap.Uint64("task_id", task.ID),
		zap.String("owner_id", task.OwnerID),
		zap.String("title", task.Title),
	}
	if task.DueDate != nil {
		fields = append(fields, zap.Time("due_date", *task.DueDate))
	}
	if task.Reminder != nil {
		fields = append(fields, zap.Int("offset_minutes", task.Reminder.OffsetMinutes))
	}
	s.logger.Info("reminder due", fields...)
}
