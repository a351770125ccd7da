package apierrors

const (
	MsgInvalidOwner       = "invalidOwner"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTask       = "errorListTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgPastDueDate        = "pastDueDate"
	MsgMissingDueDate     = "missingDueDate"
	MsgInvalidRecurrence  = "invalidRecurrence"
	MsgAlreadyCompleted   = "alreadyCompleted"
	MsgSnoozeUnavailable  = "snoozeUnavailable"
	MsgFailToggleComplete = "failToggleComplete"
	MsgFailListReminders  = "failListReminders"
)
