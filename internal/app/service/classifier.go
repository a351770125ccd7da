package service

import (
	"context"
	"sort"

	"taskpulse/internal/core/domain"
)

// OverdueTasks returns the owner's pending tasks whose due date has passed,
// soonest-overdue first. Ties keep insertion order.
func (s *TaskService) OverdueTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overdue := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(now) {
			overdue = append(overdue, task)
		}
	}

	sortByDueDate(overdue)
	return overdue, nil
}

// UpcomingTasks returns pending tasks due between now and now plus
// windowDays, due date ascending.
func (s *TaskService) UpcomingTasks(ctx context.Context, ownerID string, windowDays int) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	horizon := now.AddDate(0, 0, windowDays)
	upcoming := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		if !task.DueDate.Before(now) && !task.DueDate.After(horizon) {
			upcoming = append(upcoming, task)
		}
	}

	sortByDueDate(upcoming)
	return upcoming, nil
}

func sortByDueDate(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(*tasks[j].DueDate)
	})
}
