package dto

type RecurrenceItem struct {
	Kind     string  `json:"kind"`
	Interval int     `json:"interval"`
	Days     []int   `json:"days,omitempty"`
	EndDate  *string `json:"end_date,omitempty"`
}

type ReminderItem struct {
	OffsetMinutes int  `json:"offset_minutes"`
	Notified      bool `json:"notified"`
}

type TaskItem struct {
	ID           uint64          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Completed    bool            `json:"completed"`
	Priority     string          `json:"priority"`
	Tags         []string        `json:"tags,omitempty"`
	DueDate      *string         `json:"due_date,omitempty"`
	Recurrence   *RecurrenceItem `json:"recurrence,omitempty"`
	Reminder     *ReminderItem   `json:"reminder,omitempty"`
	ParentTaskID *uint64         `json:"parent_task_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type ToggleCompleteResponse struct {
	Current TaskItem  `json:"current"`
	Next    *TaskItem `json:"next,omitempty"`
}

type RecurrenceRequest struct {
	Kind     string  `json:"kind" binding:"required"`
	Interval *int    `json:"interval" binding:"omitempty,gte=1"`
	Days     []int   `json:"days" binding:"omitempty,max=7,dive,gte=0,lte=6"`
	EndDate  *string `json:"end_date" binding:"omitempty"`
}

type ReminderRequest struct {
	OffsetMinutes int `json:"offset_minutes" binding:"gte=0"`
}

type CreateTaskRequest struct {
	Title         string             `json:"title" binding:"required,max=200"`
	Description   string             `json:"description" binding:"omitempty,max=2000"`
	Priority      *string            `json:"priority" binding:"omitempty,oneof=none low medium high"`
	Tags          []string           `json:"tags" binding:"omitempty,max=5"`
	DueDate       *string            `json:"due_date" binding:"omitempty"`
	Recurrence    *RecurrenceRequest `json:"recurrence" binding:"omitempty"`
	OffsetMinutes *int               `json:"reminder_offset_minutes" binding:"omitempty,gte=0"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type SetPriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=none low medium high"`
}

type TagsRequest struct {
	Tags []string `json:"tags" binding:"required,min=1"`
}

type SetDueDateRequest struct {
	DueDate string `json:"due_date" binding:"required"`
}

type SnoozeRequest struct {
	Minutes int `json:"minutes" binding:"gte=0"`
}
