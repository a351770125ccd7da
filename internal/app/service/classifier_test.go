package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpulse/internal/core/domain"
)

func TestOverdueTasks(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	soon := testEpoch.Add(time.Hour)
	later := testEpoch.Add(3 * time.Hour)
	mustCreate(t, svc, domain.CreateTaskInput{Title: "due later", DueDate: &later})
	mustCreate(t, svc, domain.CreateTaskInput{Title: "due soon", DueDate: &soon})
	mustCreate(t, svc, domain.CreateTaskInput{Title: "no due date"})
	finished := mustCreate(t, svc, domain.CreateTaskInput{Title: "finished", DueDate: &soon})
	_, _, err := svc.ToggleComplete(ctx, testOwner, finished.ID)
	require.NoError(t, err)

	// Nothing is overdue before the due dates pass.
	overdue, err := svc.OverdueTasks(ctx, testOwner)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	// A task due exactly now is not yet overdue.
	clock.Advance(time.Hour)
	overdue, err = svc.OverdueTasks(ctx, testOwner)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	clock.Advance(4 * time.Hour)
	overdue, err = svc.OverdueTasks(ctx, testOwner)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "due soon", overdue[0].Title)
	assert.Equal(t, "due later", overdue[1].Title)
}

func TestUpcomingTasks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tomorrow := testEpoch.AddDate(0, 0, 1)
	edge := testEpoch.AddDate(0, 0, 7)
	beyond := testEpoch.AddDate(0, 0, 8)
	mustCreate(t, svc, domain.CreateTaskInput{Title: "beyond window", DueDate: &beyond})
	mustCreate(t, svc, domain.CreateTaskInput{Title: "window edge", DueDate: &edge})
	mustCreate(t, svc, domain.CreateTaskInput{Title: "tomorrow", DueDate: &tomorrow})
	mustCreate(t, svc, domain.CreateTaskInput{Title: "undated"})

	upcoming, err := svc.UpcomingTasks(ctx, testOwner, 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 2, "window is inclusive of its last day")
	assert.Equal(t, "tomorrow", upcoming[0].Title)
	assert.Equal(t, "window edge", upcoming[1].Title)
}
