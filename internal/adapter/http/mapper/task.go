package mapper

import (
	"time"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		Tags:        task.Tags,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}

	if task.Recurrence != nil {
		item.Recurrence = toRecurrenceItem(*task.Recurrence)
	}

	if task.Reminder != nil {
		item.Reminder = &dto.ReminderItem{
			OffsetMinutes: task.Reminder.OffsetMinutes,
			Notified:      task.Reminder.Notified,
		}
	}

	if task.ParentTaskID != nil {
		value := *task.ParentTaskID
		item.ParentTaskID = &value
	}

	return item
}

func toRecurrenceItem(recurrence domain.Recurrence) *dto.RecurrenceItem {
	item := &dto.RecurrenceItem{
		Kind:     string(recurrence.Kind),
		Interval: recurrence.Interval,
	}
	for _, day := range recurrence.Days {
		item.Days = append(item.Days, int(day))
	}
	if recurrence.EndDate != nil {
		value := recurrence.EndDate.Format(time.RFC3339)
		item.EndDate = &value
	}
	return item
}

func ToToggleCompleteResponse(current domain.Task, next *domain.Task) dto.ToggleCompleteResponse {
	response := dto.ToggleCompleteResponse{Current: ToTaskItem(current)}
	if next != nil {
		item := ToTaskItem(*next)
		response.Next = &item
	}
	return response
}
