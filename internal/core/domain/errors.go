package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTitle       = errors.New("invalid task title")
	ErrInvalidDescription = errors.New("invalid task description")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrTooManyTags        = errors.New("too many tags")
	ErrInvalidRecurrence  = errors.New("invalid recurrence")
	ErrInvalidReminder    = errors.New("invalid reminder offset")
	ErrMissingDueDate     = errors.New("task has no due date")
	ErrPastDueDate        = errors.New("due date is in the past")
	ErrAlreadyCompleted   = errors.New("task already completed")
	ErrSnoozeUnavailable  = errors.New("no armed reminder to snooze")
)
