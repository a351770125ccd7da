package tests

import (
	"context"
	"time"

	"taskpulse/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, ownerID string, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, ownerID string, taskID uint64) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) SetPriority(ctx context.Context, ownerID string, taskID uint64, priority domain.Priority) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, priority)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) AddTags(ctx context.Context, ownerID string, taskID uint64, tags []string) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, tags)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) RemoveTags(ctx context.Context, ownerID string, taskID uint64, tags []string) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, tags)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetDueDate(ctx context.Context, ownerID string, taskID uint64, dueDate time.Time) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, dueDate)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetRecurrence(ctx context.Context, ownerID string, taskID uint64, recurrence *domain.Recurrence) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, recurrence)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetReminder(ctx context.Context, ownerID string, taskID uint64, offsetMinutes int) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, offsetMinutes)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SnoozeReminder(ctx context.Context, ownerID string, taskID uint64, minutes int) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, minutes)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ToggleComplete(ctx context.Context, ownerID string, taskID uint64) (domain.Task, *domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)

	var next *domain.Task
	if value := args.Get(1); value != nil {
		next = value.(*domain.Task)
	}
	return args.Get(0).(domain.Task), next, args.Error(2)
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, ownerID string, taskID uint64) (domain.Task, *domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)

	var next *domain.Task
	if value := args.Get(1); value != nil {
		next = value.(*domain.Task)
	}
	return args.Get(0).(domain.Task), next, args.Error(2)
}

func (m *taskServiceMock) OverdueTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpcomingTasks(ctx context.Context, ownerID string, windowDays int) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID, windowDays)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}
