package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

type TaskService struct {
	store ports.TaskStore
	now   func() time.Time
}

type Option func(*TaskService)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(store ports.TaskStore, opts ...Option) *TaskService {
	s := &TaskService{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return domain.Task{}, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return domain.Task{}, err
	}

	now := s.now()

	priority := domain.PriorityNone
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return domain.Task{}, domain.ErrInvalidPriority
		}
		priority = *input.Priority
	}

	tags, err := normalizeTags(input.Tags)
	if err != nil {
		return domain.Task{}, err
	}

	if input.DueDate != nil && input.DueDate.Before(now) {
		return domain.Task{}, domain.ErrPastDueDate
	}
	if input.Recurrence != nil {
		if err := input.Recurrence.Validate(); err != nil {
			return domain.Task{}, err
		}
	}
	if input.Reminder != nil {
		if input.DueDate == nil {
			return domain.Task{}, domain.ErrMissingDueDate
		}
		if input.Reminder.OffsetMinutes < 0 {
			return domain.Task{}, domain.ErrInvalidReminder
		}
	}

	task := domain.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Tags:        tags,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Recurrence != nil {
		recurrence := input.Recurrence.Clone()
		task.Recurrence = &recurrence
	}
	if input.Reminder != nil {
		task.Reminder = &domain.Reminder{OffsetMinutes: input.Reminder.OffsetMinutes}
	}

	return s.store.Insert(ctx, task)
}

func (s *TaskService) GetTask(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error) {
	return s.store.Get(ctx, ownerID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if matchesFilter(task, filter) {
			filtered = append(filtered, task)
		}
	}

	sortTasks(filtered, filter.SortBy, filter.Reverse)
	return filtered, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID string, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		if input.Title != nil {
			if err := domain.ValidateTitle(*input.Title); err != nil {
				return err
			}
			task.Title = strings.TrimSpace(*input.Title)
		}
		if input.Description != nil {
			if err := domain.ValidateDescription(*input.Description); err != nil {
				return err
			}
			task.Description = strings.TrimSpace(*input.Description)
		}
		return nil
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID string, taskID uint64) error {
	deleted, err := s.store.Delete(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) SetPriority(ctx context.Context, ownerID string, taskID uint64, priority domain.Priority) (domain.Task, error) {
	if !priority.Valid() {
		return domain.Task{}, domain.ErrInvalidPriority
	}
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		task.Priority = priority
		return nil
	})
}

func (s *TaskService) AddTags(ctx context.Context, ownerID string, taskID uint64, tags []string) (domain.Task, error) {
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		for _, tag := range tags {
			normalized, err := domain.NormalizeTag(tag)
			if err != nil {
				return err
			}
			if task.HasTag(normalized) {
				continue
			}
			if len(task.Tags) >= domain.MaxTags {
				return domain.ErrTooManyTags
			}
			task.Tags = append(task.Tags, normalized)
		}
		return nil
	})
}

func (s *TaskService) RemoveTags(ctx context.Context, ownerID string, taskID uint64, tags []string) (domain.Task, error) {
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		remove := make(map[string]bool, len(tags))
		for _, tag := range tags {
			remove[strings.ToLower(strings.TrimSpace(tag))] = true
		}
		kept := task.Tags[:0]
		for _, tag := range task.Tags {
			if !remove[tag] {
				kept = append(kept, tag)
			}
		}
		task.Tags = kept
		return nil
	})
}

// SetDueDate rejects past dates; only occurrences computed by the
// recurrence engine may carry a due date that has already passed.
func (s *TaskService) SetDueDate(ctx context.Context, ownerID string, taskID uint64, dueDate time.Time) (domain.Task, error) {
	if dueDate.Before(s.now()) {
		return domain.Task{}, domain.ErrPastDueDate
	}
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		value := dueDate
		task.DueDate = &value
		return nil
	})
}

// SetRecurrence validates the pattern up front; a nil recurrence clears it.
func (s *TaskService) SetRecurrence(ctx context.Context, ownerID string, taskID uint64, recurrence *domain.Recurrence) (domain.Task, error) {
	if recurrence != nil {
		if err := recurrence.Validate(); err != nil {
			return domain.Task{}, err
		}
	}
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		if recurrence == nil {
			task.Recurrence = nil
			return nil
		}
		value := recurrence.Clone()
		task.Recurrence = &value
		return nil
	})
}

func (s *TaskService) SetReminder(ctx context.Context, ownerID string, taskID uint64, offsetMinutes int) (domain.Task, error) {
	if offsetMinutes < 0 {
		return domain.Task{}, domain.ErrInvalidReminder
	}
	return s.mutate(ctx, ownerID, taskID, func(task *domain.Task) error {
		if task.DueDate == nil {
			return domain.ErrMissingDueDate
		}
		task.Reminder = &domain.Reminder{OffsetMinutes: offsetMinutes}
		return nil
	})
}

// mutate runs a read-modify-write against one task inside the store's
// per-owner critical section and stamps UpdatedAt.
func (s *TaskService) mutate(ctx context.Context, ownerID string, taskID uint64, fn func(*domain.Task) error) (domain.Task, error) {
	var out domain.Task
	err := s.store.InTx(ctx, ownerID, func(tx ports.TaskStore) error {
		task, err := tx.Get(ctx, ownerID, taskID)
		if err != nil {
			return err
		}
		if err := fn(&task); err != nil {
			return err
		}
		task.UpdatedAt = s.now()
		out, err = tx.Update(ctx, task)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}
	return out, nil
}

func normalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		value, err := domain.NormalizeTag(tag)
		if err != nil {
			return nil, err
		}
		if seen[value] {
			continue
		}
		if len(normalized) >= domain.MaxTags {
			return nil, domain.ErrTooManyTags
		}
		seen[value] = true
		normalized = append(normalized, value)
	}
	return normalized, nil
}

func matchesFilter(task domain.Task, filter domain.TaskFilter) bool {
	switch filter.Status {
	case "completed":
		if !task.Completed {
			return false
		}
	case "pending":
		if task.Completed {
			return false
		}
	}

	if filter.Priority != nil && task.Priority != *filter.Priority {
		return false
	}

	if filter.Tag != "" && !task.HasTag(strings.ToLower(filter.Tag)) {
		return false
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			return false
		}
	}

	return true
}

func sortTasks(tasks []domain.Task, sortBy string, reverse bool) {
	var less func(a, b domain.Task) bool
	switch sortBy {
	case "created":
		less = func(a, b domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "title":
		less = func(a, b domain.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "priority":
		// Highest priority first by default.
		less = func(a, b domain.Task) bool { return a.Priority.Rank() > b.Priority.Rank() }
	case "due_date":
		less = func(a, b domain.Task) bool {
			if a.DueDate == nil {
				return false
			}
			if b.DueDate == nil {
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		}
	default:
		// Keep insertion order.
		return
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}
