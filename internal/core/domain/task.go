package domain

import (
	"strings"
	"time"
	"unicode"
)

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting; higher urgency maps to a larger value.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Reminder is armed while Notified is false and fires at most once per arm
// cycle; snoozing re-arms it with a recomputed offset.
type Reminder struct {
	OffsetMinutes int
	Notified      bool
}

type Task struct {
	ID           uint64
	OwnerID      string
	Title        string
	Description  string
	Completed    bool
	Priority     Priority
	Tags         []string
	DueDate      *time.Time
	Recurrence   *Recurrence
	Reminder     *Reminder
	ParentTaskID *uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxTags              = 5
	MaxTagLength         = 20
)

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    *Priority
	Tags        []string
	DueDate     *time.Time
	Recurrence  *Recurrence
	Reminder    *Reminder
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
}

type TaskFilter struct {
	Status   string // "all", "pending" or "completed"
	Priority *Priority
	Tag      string
	Search   string
	SortBy   string // "created", "title", "priority", "due_date"
	Reverse  bool
}

func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || len(trimmed) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}

// NormalizeTag case-folds and validates a single tag.
func NormalizeTag(tag string) (string, error) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" || len(trimmed) > MaxTagLength {
		return "", ErrInvalidTag
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", ErrInvalidTag
		}
	}
	return strings.ToLower(trimmed), nil
}

func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores can hand out snapshots without
// callers observing later mutations.
func (t Task) Clone() Task {
	clone := t
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	if t.DueDate != nil {
		value := *t.DueDate
		clone.DueDate = &value
	}
	if t.Recurrence != nil {
		value := t.Recurrence.Clone()
		clone.Recurrence = &value
	}
	if t.Reminder != nil {
		value := *t.Reminder
		clone.Reminder = &value
	}
	if t.ParentTaskID != nil {
		value := *t.ParentTaskID
		clone.ParentTaskID = &value
	}
	return clone
}

// NextOccurrence builds the task spawned by completing a recurring task.
// The child inherits everything but completion state and lineage; its
// reminder is re-armed.
func (t Task) NextOccurrence(dueDate time.Time, now time.Time) Task {
	child := t.Clone()
	child.ID = 0
	child.Completed = false
	child.DueDate = &dueDate
	parentID := t.ID
	child.ParentTaskID = &parentID
	if child.Reminder != nil {
		child.Reminder.Notified = false
	}
	child.CreatedAt = now
	child.UpdatedAt = now
	return child
}
