package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpulse/internal/adapter/memstore"
	"taskpulse/internal/core/domain"
)

func TestToggleComplete_NonRecurring(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, domain.CreateTaskInput{Title: "one-off"})

	current, next, err := svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	assert.True(t, current.Completed)
	assert.Nil(t, next, "non-recurring completion must not spawn")

	current, next, err = svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	assert.False(t, current.Completed)
	assert.Nil(t, next)
}

func TestToggleComplete_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.ToggleComplete(context.Background(), testOwner, 404)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestToggleComplete_DailySpawnsNextOccurrence(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	due := testEpoch.Add(24 * time.Hour)
	task := mustCreate(t, svc, domain.CreateTaskInput{
		Title:      "Water plants",
		Tags:       []string{"home"},
		DueDate:    &due,
		Recurrence: &domain.Recurrence{Kind: domain.RecurrenceDaily, Interval: 3},
		Reminder:   &domain.Reminder{OffsetMinutes: 15},
	})

	current, next, err := svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	assert.True(t, current.Completed)

	require.NotNil(t, next)
	assert.NotEqual(t, task.ID, next.ID)
	assert.False(t, next.Completed)
	assert.Equal(t, task.Title, next.Title)
	assert.Equal(t, task.Tags, next.Tags)
	require.NotNil(t, next.DueDate)
	assert.Equal(t, due.AddDate(0, 0, 3), *next.DueDate)
	require.NotNil(t, next.ParentTaskID)
	assert.Equal(t, task.ID, *next.ParentTaskID)
	require.NotNil(t, next.Reminder)
	assert.False(t, next.Reminder.Notified)

	// The child really is persisted.
	stored, err := svc.GetTask(ctx, testOwner, next.ID)
	require.NoError(t, err)
	assert.Equal(t, *next.DueDate, *stored.DueDate)
}

func TestToggleComplete_MonthlyClampsAtSpawn(t *testing.T) {
	clock := newFakeClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	svc := NewTaskService(memstore.New(), WithClock(clock.Now))
	ctx := context.Background()

	due := time.Date(2026, time.January, 31, 9, 0, 0, 0, time.UTC)
	task := mustCreate(t, svc, domain.CreateTaskInput{
		Title:      "Pay rent",
		DueDate:    &due,
		Recurrence: &domain.Recurrence{Kind: domain.RecurrenceMonthly, Interval: 1},
	})

	_, next, err := svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2026, time.February, 28, 9, 0, 0, 0, time.UTC), *next.DueDate)
}

func TestToggleComplete_UncompletingNeverSpawns(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	due := testEpoch.Add(24 * time.Hour)
	task := mustCreate(t, svc, domain.CreateTaskInput{
		Title:      "Standup notes",
		DueDate:    &due,
		Recurrence: &domain.Recurrence{Kind: domain.RecurrenceDaily, Interval: 1},
	})

	_, next, err := svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	require.NotNil(t, next)

	// Un-complete, then complete again: each false->true edge spawns once.
	_, next, err = svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, next, err = svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	assert.NotNil(t, next)
}

func TestToggleComplete_EndOfSeries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	due := testEpoch.Add(24 * time.Hour)
	end := due.AddDate(0, 0, 1)
	task := mustCreate(t, svc, domain.CreateTaskInput{
		Title:      "Final reminder",
		DueDate:    &due,
		Recurrence: &domain.Recurrence{Kind: domain.RecurrenceDaily, Interval: 1, EndDate: &end},
	})

	current, next, err := svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	assert.True(t, current.Completed)
	assert.Nil(t, next, "series ended, no further occurrence")
}

func TestToggleComplete_NoDueDateUsesNow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task := mustCreate(t, svc, domain.CreateTaskInput{
		Title:      "Loose habit",
		Recurrence: &domain.Recurrence{Kind: domain.RecurrenceDaily, Interval: 1},
	})

	_, next, err := svc.ToggleComplete(ctx, testOwner, task.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, testEpoch.AddDate(0, 0, 1), *next.DueDate)
}

func TestCompleteTask_RejectsAlreadyCompleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task := mustCreate(t, svc, domain.CreateTaskInput{Title: "once"})
	_, _, err := svc.CompleteTask(ctx, testOwner, task.ID)
	require.NoError(t, err)

	_, _, err = svc.CompleteTask(ctx, testOwner, task.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
}

func TestCompleteTask_ConcurrentCompletionsSpawnExactlyOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	due := testEpoch.Add(24 * time.Hour)
	task := mustCreate(t, svc, domain.CreateTaskInput{
		Title:      "Race me",
		DueDate:    &due,
		Recurrence: &domain.Recurrence{Kind: domain.RecurrenceDaily, Interval: 1},
	})

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _, err := svc.CompleteTask(ctx, testOwner, task.ID)
			if err == nil {
				successes <- struct{}{}
				return
			}
			assert.True(t, errors.Is(err, domain.ErrAlreadyCompleted))
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	assert.Equal(t, 1, count, "exactly one completion must win")

	tasks, err := svc.ListTasks(ctx, testOwner, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2, "exactly one child spawned")

	children := 0
	for _, got := range tasks {
		if got.ParentTaskID != nil && *got.ParentTaskID == task.ID {
			children++
			assert.False(t, got.Completed)
		}
	}
	assert.Equal(t, 1, children)
}
