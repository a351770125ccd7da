package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/adapter/http/mapper"
	"taskpulse/internal/adapter/http/middleware"
	"taskpulse/internal/adapter/http/validation"
	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
	"taskpulse/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetOwnerID(c), input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := domain.TaskFilter{
		Status: c.Query("status"),
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		SortBy: c.Query("sort"),
	}
	if value := c.Query("priority"); value != "" {
		priority := domain.Priority(value)
		filter.Priority = &priority
	}
	filter.Reverse = c.Query("order") == "desc"

	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetOwnerID(c), filter)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetOwnerID(c), taskID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetOwnerID(c), taskID, input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetOwnerID(c), taskID); err != nil {
		respondServiceError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	current, next, err := h.taskService.ToggleComplete(c.Request.Context(), middleware.GetOwnerID(c), taskID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailToggleComplete)
		return
	}

	c.JSON(http.StatusOK, mapper.ToToggleCompleteResponse(current, next))
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	current, next, err := h.taskService.CompleteTask(c.Request.Context(), middleware.GetOwnerID(c), taskID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailToggleComplete)
		return
	}

	c.JSON(http.StatusOK, mapper.ToToggleCompleteResponse(current, next))
}

func (h *TaskHandler) SetPriority(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.SetPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.SetPriority(c.Request.Context(), middleware.GetOwnerID(c), taskID, domain.Priority(req.Priority))
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) AddTags(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.AddTags(c.Request.Context(), middleware.GetOwnerID(c), taskID, req.Tags)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) RemoveTags(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.RemoveTags(c.Request.Context(), middleware.GetOwnerID(c), taskID, req.Tags)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) SetDueDate(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.SetDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	dueDate, err := validation.ParseDueDate(req.DueDate)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.SetDueDate(c.Request.Context(), middleware.GetOwnerID(c), taskID, dueDate)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) SetRecurrence(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.RecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	recurrence, err := validation.BuildRecurrence(req)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.SetRecurrence(c.Request.Context(), middleware.GetOwnerID(c), taskID, recurrence)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) SetReminder(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.SetReminder(c.Request.Context(), middleware.GetOwnerID(c), taskID, req.OffsetMinutes)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) SnoozeReminder(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.SnoozeReminder(c.Request.Context(), middleware.GetOwnerID(c), taskID, req.Minutes)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListOverdue(c *gin.Context) {
	tasks, err := h.taskService.OverdueTasks(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListReminders)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) ListUpcoming(c *gin.Context) {
	lang := middleware.GetLang(c)

	windowDays := 7
	if value := c.Query("days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}
		windowDays = parsed
	}

	tasks, err := h.taskService.UpcomingTasks(c.Request.Context(), middleware.GetOwnerID(c), windowDays)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListReminders)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	lang := middleware.GetLang(c)

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}

// respondServiceError translates service errors into the API error
// envelope; anything unrecognized is logged and reported as a 500 with the
// operation's generic message key.
func respondServiceError(c *gin.Context, err error, failMsg string) {
	lang := middleware.GetLang(c)

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrPastDueDate):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgPastDueDate, lang))
	case errors.Is(err, domain.ErrMissingDueDate):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgMissingDueDate, lang))
	case errors.Is(err, domain.ErrInvalidRecurrence):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidRecurrence, lang))
	case errors.Is(err, domain.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgAlreadyCompleted, lang))
	case errors.Is(err, domain.ErrSnoozeUnavailable):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgSnoozeUnavailable, lang))
	case errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidTag),
		errors.Is(err, domain.ErrTooManyTags),
		errors.Is(err, domain.ErrInvalidReminder),
		errors.Is(err, validation.ErrInvalidTaskPayload):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
	default:
		zap.L().Error("task operation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, failMsg, lang))
	}
}
