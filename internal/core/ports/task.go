package ports

import (
	"context"
	"time"

	"taskpulse/internal/core/domain"
)

// TaskStore is the authoritative task collection, always scoped by owner.
// InTx runs fn against a view of the store where the owner's task set cannot
// be mutated concurrently: the memory store holds the owner lock, the SQL
// store opens a transaction. Engine code does its read-modify-write
// sequences inside InTx and never holds its own lock across store I/O.
type TaskStore interface {
	Get(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error)
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Insert(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, ownerID string, taskID uint64) (bool, error)
	Owners(ctx context.Context) ([]string, error)
	InTx(ctx context.Context, ownerID string, fn func(TaskStore) error) error
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, ownerID string, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, ownerID string, taskID uint64) error

	SetPriority(ctx context.Context, ownerID string, taskID uint64, priority domain.Priority) (domain.Task, error)
	AddTags(ctx context.Context, ownerID string, taskID uint64, tags []string) (domain.Task, error)
	RemoveTags(ctx context.Context, ownerID string, taskID uint64, tags []string) (domain.Task, error)
	SetDueDate(ctx context.Context, ownerID string, taskID uint64, dueDate time.Time) (domain.Task, error)
	SetRecurrence(ctx context.Context, ownerID string, taskID uint64, recurrence *domain.Recurrence) (domain.Task, error)
	SetReminder(ctx context.Context, ownerID string, taskID uint64, offsetMinutes int) (domain.Task, error)
	SnoozeReminder(ctx context.Context, ownerID string, taskID uint64, minutes int) (domain.Task, error)

	// ToggleComplete flips completion; completing a recurring task spawns
	// the next occurrence atomically with the flip. CompleteTask is the
	// strict variant that rejects an already completed task.
	ToggleComplete(ctx context.Context, ownerID string, taskID uint64) (domain.Task, *domain.Task, error)
	CompleteTask(ctx context.Context, ownerID string, taskID uint64) (domain.Task, *domain.Task, error)

	OverdueTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	UpcomingTasks(ctx context.Context, ownerID string, windowDays int) ([]domain.Task, error)
}

// Notifier receives each delivered reminder exactly once per arm cycle.
// Presentation (console, push, email) is up to the implementation.
type Notifier interface {
	Notify(task domain.Task)
}
