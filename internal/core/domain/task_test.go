package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	normalized, err := NormalizeTag("  Work ")
	require.NoError(t, err)
	assert.Equal(t, "work", normalized)

	normalized, err = NormalizeTag("Urgent2")
	require.NoError(t, err)
	assert.Equal(t, "urgent2", normalized)

	for _, invalid := range []string{"", "   ", "has space", "semi;colon", "waytoolongtagvalue-exceeding"} {
		_, err := NormalizeTag(invalid)
		assert.ErrorIs(t, err, ErrInvalidTag, "tag %q", invalid)
	}
}

func TestTask_Clone_IsIndependent(t *testing.T) {
	due := date(2026, time.April, 1)
	parent := uint64(7)
	task := Task{
		ID:           1,
		Title:        "Water plants",
		Tags:         []string{"home"},
		DueDate:      &due,
		Recurrence:   &Recurrence{Kind: RecurrenceDaily, Interval: 1},
		Reminder:     &Reminder{OffsetMinutes: 30},
		ParentTaskID: &parent,
	}

	clone := task.Clone()
	clone.Tags[0] = "changed"
	*clone.DueDate = clone.DueDate.AddDate(0, 0, 1)
	clone.Recurrence.Interval = 9
	clone.Reminder.Notified = true
	*clone.ParentTaskID = 99

	assert.Equal(t, "home", task.Tags[0])
	assert.Equal(t, due, *task.DueDate)
	assert.Equal(t, 1, task.Recurrence.Interval)
	assert.False(t, task.Reminder.Notified)
	assert.Equal(t, uint64(7), *task.ParentTaskID)
}

func TestTask_NextOccurrence(t *testing.T) {
	due := date(2026, time.April, 1)
	task := Task{
		ID:          42,
		OwnerID:     "owner",
		Title:       "Pay rent",
		Description: "transfer before noon",
		Completed:   true,
		Priority:    PriorityHigh,
		Tags:        []string{"bills"},
		DueDate:     &due,
		Recurrence:  &Recurrence{Kind: RecurrenceMonthly, Interval: 1},
		Reminder:    &Reminder{OffsetMinutes: 60, Notified: true},
	}

	now := date(2026, time.April, 1).Add(time.Hour)
	nextDue := date(2026, time.May, 1)
	child := task.NextOccurrence(nextDue, now)

	assert.Zero(t, child.ID)
	assert.False(t, child.Completed)
	assert.Equal(t, task.Title, child.Title)
	assert.Equal(t, task.Description, child.Description)
	assert.Equal(t, task.Priority, child.Priority)
	assert.Equal(t, task.Tags, child.Tags)
	require.NotNil(t, child.DueDate)
	assert.Equal(t, nextDue, *child.DueDate)
	require.NotNil(t, child.ParentTaskID)
	assert.Equal(t, task.ID, *child.ParentTaskID)
	require.NotNil(t, child.Reminder)
	assert.Equal(t, 60, child.Reminder.OffsetMinutes)
	assert.False(t, child.Reminder.Notified, "spawned reminder must be re-armed")
	assert.Equal(t, now, child.CreatedAt)
}

func TestPriority(t *testing.T) {
	assert.True(t, PriorityHigh.Rank() > PriorityMedium.Rank())
	assert.True(t, PriorityMedium.Rank() > PriorityLow.Rank())
	assert.True(t, PriorityLow.Rank() > PriorityNone.Rank())

	assert.True(t, PriorityNone.Valid())
	assert.False(t, Priority("urgent").Valid())
}
