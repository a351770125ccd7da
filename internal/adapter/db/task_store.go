package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

const (
	getTaskQuery = `
SELECT * FROM tasks WHERE owner_id = ? AND id = ?;
`

	listTasksQuery = `
SELECT * FROM tasks WHERE owner_id = ? ORDER BY id;
`

	listOwnersQuery = `
SELECT DISTINCT owner_id FROM tasks ORDER BY owner_id;
`

	insertTaskQuery = `
INSERT INTO tasks (
  owner_id, title, description, completed, priority, tags, due_date,
  recurrence_kind, recurrence_interval, recurrence_days, recurrence_end_date,
  reminder_offset_minutes, reminder_notified, parent_task_id, created_at, updated_at
) VALUES (
  :owner_id, :title, :description, :completed, :priority, :tags, :due_date,
  :recurrence_kind, :recurrence_interval, :recurrence_days, :recurrence_end_date,
  :reminder_offset_minutes, :reminder_notified, :parent_task_id, :created_at, :updated_at
);
`

	updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  completed = :completed,
  priority = :priority,
  tags = :tags,
  due_date = :due_date,
  recurrence_kind = :recurrence_kind,
  recurrence_interval = :recurrence_interval,
  recurrence_days = :recurrence_days,
  recurrence_end_date = :recurrence_end_date,
  reminder_offset_minutes = :reminder_offset_minutes,
  reminder_notified = :reminder_notified,
  parent_task_id = :parent_task_id,
  updated_at = :updated_at
WHERE owner_id = :owner_id AND id = :id;
`

	deleteTaskQuery = `
DELETE FROM tasks WHERE owner_id = ? AND id = ?;
`

	lockOwnerTasksQuery = `
SELECT id FROM tasks WHERE owner_id = ? FOR UPDATE;
`
)

// database is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx, so the
// same queries run inside and outside a transaction.
type database interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TaskStore persists tasks in MySQL. InTx serializes an owner's mutations
// with a transaction that locks the owner's rows, which gives the same
// critical-section guarantee the memory store gets from its mutex.
type TaskStore struct {
	db *sqlx.DB
}

var _ ports.TaskStore = (*TaskStore)(nil)

func NewTaskStore(db *sqlx.DB) *TaskStore {
	return &TaskStore{db: db}
}

type taskRow struct {
	ID                    uint64         `db:"id"`
	OwnerID               string         `db:"owner_id"`
	Title                 string         `db:"title"`
	Description           string         `db:"description"`
	Completed             bool           `db:"completed"`
	Priority              string         `db:"priority"`
	Tags                  sql.NullString `db:"tags"`
	DueDate               sql.NullTime   `db:"due_date"`
	RecurrenceKind        sql.NullString `db:"recurrence_kind"`
	RecurrenceInterval    sql.NullInt64  `db:"recurrence_interval"`
	RecurrenceDays        sql.NullString `db:"recurrence_days"`
	RecurrenceEndDate     sql.NullTime   `db:"recurrence_end_date"`
	ReminderOffsetMinutes sql.NullInt64  `db:"reminder_offset_minutes"`
	ReminderNotified      sql.NullBool   `db:"reminder_notified"`
	ParentTaskID          sql.NullInt64  `db:"parent_task_id"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

func (s *TaskStore) Get(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error) {
	return getTask(ctx, s.db, ownerID, taskID)
}

func (s *TaskStore) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return listTasks(ctx, s.db, ownerID)
}

func (s *TaskStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	return insertTask(ctx, s.db, task)
}

func (s *TaskStore) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	return updateTask(ctx, s.db, task)
}

func (s *TaskStore) Delete(ctx context.Context, ownerID string, taskID uint64) (bool, error) {
	return deleteTask(ctx, s.db, ownerID, taskID)
}

func (s *TaskStore) Owners(ctx context.Context) ([]string, error) {
	var owners []string
	if err := s.db.SelectContext(ctx, &owners, listOwnersQuery); err != nil {
		return nil, err
	}
	return owners, nil
}

func (s *TaskStore) InTx(ctx context.Context, ownerID string, fn func(ports.TaskStore) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	// Lock the owner's rows up front so concurrent transactions on the
	// same owner serialize instead of deadlocking on later writes.
	var ids []uint64
	if err := tx.SelectContext(ctx, &ids, lockOwnerTasksQuery, ownerID); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := fn(&txStore{tx: tx, ownerID: ownerID}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// txStore runs the store operations against an open transaction.
type txStore struct {
	tx      *sqlx.Tx
	ownerID string
}

var _ ports.TaskStore = (*txStore)(nil)

func (s *txStore) Get(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error) {
	return getTask(ctx, s.tx, ownerID, taskID)
}

func (s *txStore) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return listTasks(ctx, s.tx, ownerID)
}

func (s *txStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	return insertTask(ctx, s.tx, task)
}

func (s *txStore) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	return updateTask(ctx, s.tx, task)
}

func (s *txStore) Delete(ctx context.Context, ownerID string, taskID uint64) (bool, error) {
	return deleteTask(ctx, s.tx, ownerID, taskID)
}

func (s *txStore) Owners(ctx context.Context) ([]string, error) {
	return []string{s.ownerID}, nil
}

func (s *txStore) InTx(ctx context.Context, ownerID string, fn func(ports.TaskStore) error) error {
	return fn(s)
}

func getTask(ctx context.Context, q database, ownerID string, taskID uint64) (domain.Task, error) {
	var row taskRow
	if err := q.GetContext(ctx, &row, getTaskQuery, ownerID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapRowToTask(row)
}

func listTasks(ctx context.Context, q database, ownerID string) ([]domain.Task, error) {
	var rows []taskRow
	if err := q.SelectContext(ctx, &rows, listTasksQuery, ownerID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapRowToTask(row)
		if err != nil {
			// One corrupt row must not hide the rest of the list.
			zap.L().Warn("skipping malformed task row",
				zap.Uint64("task_id", row.ID),
				zap.String("owner_id", row.OwnerID),
				zap.Error(err),
			)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func insertTask(ctx context.Context, q database, task domain.Task) (domain.Task, error) {
	row, err := mapTaskToRow(task)
	if err != nil {
		return domain.Task{}, err
	}

	result, err := q.NamedExecContext(ctx, insertTaskQuery, row)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = uint64(id)
	return task, nil
}

func updateTask(ctx context.Context, q database, task domain.Task) (domain.Task, error) {
	row, err := mapTaskToRow(task)
	if err != nil {
		return domain.Task{}, err
	}

	result, err := q.NamedExecContext(ctx, updateTaskQuery, row)
	if err != nil {
		return domain.Task{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}
	if affected == 0 {
		// Could also mean an identical row; re-check existence.
		if _, err := getTask(ctx, q, task.OwnerID, task.ID); err != nil {
			return domain.Task{}, err
		}
	}
	return task, nil
}

func deleteTask(ctx context.Context, q database, ownerID string, taskID uint64) (bool, error) {
	result, err := q.ExecContext(ctx, deleteTaskQuery, ownerID, taskID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func mapRowToTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.Completed,
		Priority:    domain.Priority(row.Priority),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.Tags.Valid && row.Tags.String != "" {
		if err := json.Unmarshal([]byte(row.Tags.String), &task.Tags); err != nil {
			return domain.Task{}, err
		}
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	if row.RecurrenceKind.Valid {
		recurrence := domain.Recurrence{
			Kind:     domain.RecurrenceKind(row.RecurrenceKind.String),
			Interval: int(row.RecurrenceInterval.Int64),
		}
		if recurrence.Interval < 1 {
			recurrence.Interval = 1
		}
		if row.RecurrenceDays.Valid && row.RecurrenceDays.String != "" {
			if err := json.Unmarshal([]byte(row.RecurrenceDays.String), &recurrence.Days); err != nil {
				return domain.Task{}, err
			}
		}
		if row.RecurrenceEndDate.Valid {
			value := row.RecurrenceEndDate.Time
			recurrence.EndDate = &value
		}
		task.Recurrence = &recurrence
	}

	if row.ReminderOffsetMinutes.Valid {
		task.Reminder = &domain.Reminder{
			OffsetMinutes: int(row.ReminderOffsetMinutes.Int64),
			Notified:      row.ReminderNotified.Valid && row.ReminderNotified.Bool,
		}
	}

	if row.ParentTaskID.Valid {
		value := uint64(row.ParentTaskID.Int64)
		task.ParentTaskID = &value
	}

	return task, nil
}

func mapTaskToRow(task domain.Task) (taskRow, error) {
	row := taskRow{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if len(task.Tags) > 0 {
		encoded, err := json.Marshal(task.Tags)
		if err != nil {
			return taskRow{}, err
		}
		row.Tags = sql.NullString{String: string(encoded), Valid: true}
	}

	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}

	if task.Recurrence != nil {
		row.RecurrenceKind = sql.NullString{String: string(task.Recurrence.Kind), Valid: true}
		row.RecurrenceInterval = sql.NullInt64{Int64: int64(task.Recurrence.Interval), Valid: true}
		if len(task.Recurrence.Days) > 0 {
			encoded, err := json.Marshal(task.Recurrence.Days)
			if err != nil {
				return taskRow{}, err
			}
			row.RecurrenceDays = sql.NullString{String: string(encoded), Valid: true}
		}
		if task.Recurrence.EndDate != nil {
			row.RecurrenceEndDate = sql.NullTime{Time: *task.Recurrence.EndDate, Valid: true}
		}
	}

	if task.Reminder != nil {
		row.ReminderOffsetMinutes = sql.NullInt64{Int64: int64(task.Reminder.OffsetMinutes), Valid: true}
		row.ReminderNotified = sql.NullBool{Bool: task.Reminder.Notified, Valid: true}
	}

	if task.ParentTaskID != nil {
		row.ParentTaskID = sql.NullInt64{Int64: int64(*task.ParentTaskID), Valid: true}
	}

	return row, nil
}
