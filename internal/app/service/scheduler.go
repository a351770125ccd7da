package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
	"taskpulse/internal/metrics"
)

const (
	defaultPollInterval = 60 * time.Second
	defaultQueueSize    = 64
)

// ReminderScheduler is the background half of the reminder engine. It wakes
// on a fixed interval, scans every owner's tasks for reminders whose trigger
// time has arrived, marks them notified inside the owner's transaction, and
// hands the tasks to a single delivery goroutine over a bounded queue. A
// full queue drops the reminder instead of blocking the scan.
type ReminderScheduler struct {
	store    ports.TaskStore
	sink     ports.Notifier
	logger   *zap.Logger
	interval time.Duration
	queueLen int
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	queue   chan domain.Task
	wg      sync.WaitGroup
}

type SchedulerOption func(*ReminderScheduler)

// WithPollInterval sets how often the scheduler scans. Defaults to 60s.
func WithPollInterval(interval time.Duration) SchedulerOption {
	return func(s *ReminderScheduler) {
		s.interval = interval
	}
}

// WithQueueSize bounds the notification hand-off queue. Defaults to 64.
func WithQueueSize(size int) SchedulerOption {
	return func(s *ReminderScheduler) {
		s.queueLen = size
	}
}

// WithSchedulerClock replaces the wall clock, mainly for tests.
func WithSchedulerClock(now func() time.Time) SchedulerOption {
	return func(s *ReminderScheduler) {
		s.now = now
	}
}

func NewReminderScheduler(store ports.TaskStore, sink ports.Notifier, logger *zap.Logger, opts ...SchedulerOption) (*ReminderScheduler, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if sink == nil {
		return nil, errors.New("sink cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	s := &ReminderScheduler{
		store:    store,
		sink:     sink,
		logger:   logger,
		interval: defaultPollInterval,
		queueLen: defaultQueueSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start launches the scan loop and the delivery goroutine. Calling Start on
// a running scheduler is an error.
func (s *ReminderScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("scheduler already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.queue = make(chan domain.Task, s.queueLen)

	s.wg.Add(2)
	go s.scanLoop(s.stopCh, s.queue)
	go s.deliverLoop(s.queue)

	s.logger.Info("reminder scheduler started",
		zap.Duration("interval", s.interval),
		zap.Int("queue_size", s.queueLen),
	)
	return nil
}

// Stop signals the loops and waits for them to drain. The scheduler exits
// within one polling interval. Stop is a no-op when not running.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
	s.running = false
	s.logger.Info("reminder scheduler stopped")
}

func (s *ReminderScheduler) scanLoop(stopCh <-chan struct{}, queue chan<- domain.Task) {
	defer s.wg.Done()
	// Closing the queue releases the delivery goroutine once pending
	// notifications are drained.
	defer close(queue)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.scanOnce(queue)
		}
	}
}

func (s *ReminderScheduler) deliverLoop(queue <-chan domain.Task) {
	defer s.wg.Done()

	for task := range queue {
		s.sink.Notify(task)
		metrics.RemindersFired.Inc()
	}
}

// scanOnce marks due reminders notified owner by owner and queues the tasks
// for delivery. One owner's failure is logged and skipped so a corrupt
// record cannot halt notification for everyone else.
func (s *ReminderScheduler) scanOnce(queue chan<- domain.Task) {
	ctx := context.Background()
	now := s.now()

	owners, err := s.store.Owners(ctx)
	if err != nil {
		s.logger.Error("reminder scan failed to list owners", zap.Error(err))
		return
	}

	for _, ownerID := range owners {
		fired, err := s.fireDueReminders(ctx, ownerID, now)
		if err != nil {
			s.logger.Warn("reminder scan skipped owner",
				zap.String("owner_id", ownerID),
				zap.Error(err),
			)
			continue
		}

		for _, task := range fired {
			select {
			case queue <- task:
			default:
				// Queue full: drop rather than stall the scan.
				metrics.NotificationsDropped.Inc()
				s.logger.Warn("notification queue full, dropping reminder",
					zap.Uint64("task_id", task.ID),
					zap.String("owner_id", ownerID),
				)
			}
		}
	}
}

// fireDueReminders flips Notified for every due reminder of one owner
// inside a single store transaction and returns the affected tasks.
func (s *ReminderScheduler) fireDueReminders(ctx context.Context, ownerID string, now time.Time) ([]domain.Task, error) {
	var fired []domain.Task
	err := s.store.InTx(ctx, ownerID, func(tx ports.TaskStore) error {
		tasks, err := tx.List(ctx, ownerID)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if !reminderDue(task, now) {
				continue
			}
			task.Reminder.Notified = true
			task.UpdatedAt = now
			updated, err := tx.Update(ctx, task)
			if err != nil {
				return err
			}
			fired = append(fired, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fired, nil
}

// CheckDue reports, without marking anything, the tasks whose reminders
// would fire at the given instant. Each task keeps reappearing until its
// reminder is marked notified.
func (s *ReminderScheduler) CheckDue(ctx context.Context, now time.Time) ([]domain.Task, error) {
	owners, err := s.store.Owners(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]domain.Task, 0)
	for _, ownerID := range owners {
		tasks, err := s.store.List(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		for _, task := range tasks {
			if reminderDue(task, now) {
				due = append(due, task)
			}
		}
	}
	return due, nil
}

// reminderDue holds for armed reminders on pending tasks whose trigger time
// (due date minus offset) has arrived.
func reminderDue(task domain.Task, now time.Time) bool {
	if task.Completed || task.DueDate == nil || task.Reminder == nil || task.Reminder.Notified {
		return false
	}
	trigger := task.DueDate.Add(-time.Duration(task.Reminder.OffsetMinutes) * time.Minute)
	return !now.Before(trigger)
}
