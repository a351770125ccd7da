package validation

import (
	"errors"
	"strings"
	"time"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// ParseDueDate accepts RFC 3339 timestamps and bare dates.
func ParseDueDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02T15:04:05", trimmed); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, ErrInvalidTaskPayload
	}
	return parsed, nil
}

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Tags:        req.Tags,
	}

	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		input.Priority = &priority
	}

	if req.DueDate != nil {
		parsed, err := ParseDueDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		input.DueDate = &parsed
	}

	if req.Recurrence != nil {
		recurrence, err := BuildRecurrence(*req.Recurrence)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		input.Recurrence = recurrence
	}

	if req.OffsetMinutes != nil {
		input.Reminder = &domain.Reminder{OffsetMinutes: *req.OffsetMinutes}
	}

	return input, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest) (domain.UpdateTaskInput, error) {
	if req.Title == nil && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

// BuildRecurrence maps the request to a domain recurrence. A kind of
// "none" clears the pattern and returns nil.
func BuildRecurrence(req dto.RecurrenceRequest) (*domain.Recurrence, error) {
	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind == "none" {
		return nil, nil
	}

	recurrence := domain.Recurrence{
		Kind:     domain.RecurrenceKind(kind),
		Interval: 1,
	}
	if req.Interval != nil {
		recurrence.Interval = *req.Interval
	}
	for _, day := range req.Days {
		recurrence.Days = append(recurrence.Days, time.Weekday(day))
	}
	if req.EndDate != nil {
		parsed, err := ParseDueDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		recurrence.EndDate = &parsed
	}

	if err := recurrence.Validate(); err != nil {
		return nil, err
	}
	return &recurrence, nil
}
