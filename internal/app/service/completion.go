package service

import (
	"context"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
	"taskpulse/internal/metrics"
)

// ToggleComplete flips the task's completion state. On the false->true edge
// of a recurring task it also inserts the next occurrence; flip and insert
// happen inside one owner transaction, so a concurrent toggle sees either
// neither effect or both. Un-completing never spawns.
func (s *TaskService) ToggleComplete(ctx context.Context, ownerID string, taskID uint64) (domain.Task, *domain.Task, error) {
	var current domain.Task
	var next *domain.Task

	err := s.store.InTx(ctx, ownerID, func(tx ports.TaskStore) error {
		task, err := tx.Get(ctx, ownerID, taskID)
		if err != nil {
			return err
		}

		task.Completed = !task.Completed
		task.UpdatedAt = s.now()

		if task.Completed {
			next, err = s.spawnNextOccurrence(ctx, tx, task)
			if err != nil {
				return err
			}
		}

		current, err = tx.Update(ctx, task)
		return err
	})
	if err != nil {
		return domain.Task{}, nil, err
	}
	return current, next, nil
}

// CompleteTask is the strict variant used by callers that treat completion
// as a one-way action: completing an already completed task is an error, so
// racing completions can spawn at most one occurrence.
func (s *TaskService) CompleteTask(ctx context.Context, ownerID string, taskID uint64) (domain.Task, *domain.Task, error) {
	var current domain.Task
	var next *domain.Task

	err := s.store.InTx(ctx, ownerID, func(tx ports.TaskStore) error {
		task, err := tx.Get(ctx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.Completed {
			return domain.ErrAlreadyCompleted
		}

		task.Completed = true
		task.UpdatedAt = s.now()

		next, err = s.spawnNextOccurrence(ctx, tx, task)
		if err != nil {
			return err
		}

		current, err = tx.Update(ctx, task)
		return err
	})
	if err != nil {
		return domain.Task{}, nil, err
	}
	return current, next, nil
}

// spawnNextOccurrence inserts the follow-up task for a freshly completed
// recurring task. It returns nil when the task does not recur or the series
// has reached its end date. The next due date is computed from the current
// due date, falling back to now for tasks that never had one.
func (s *TaskService) spawnNextOccurrence(ctx context.Context, tx ports.TaskStore, task domain.Task) (*domain.Task, error) {
	if task.Recurrence == nil {
		return nil, nil
	}

	now := s.now()
	reference := now
	if task.DueDate != nil {
		reference = *task.DueDate
	}

	nextDue, ok := task.Recurrence.NextAfter(reference)
	if !ok {
		return nil, nil
	}

	child, err := tx.Insert(ctx, task.NextOccurrence(nextDue, now))
	if err != nil {
		return nil, err
	}
	metrics.OccurrencesSpawned.Inc()
	return &child, nil
}
