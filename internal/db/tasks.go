package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Joseda-hg/taskify/internal/model"
)

const taskColumns = "id, user_id, title, description, status, category, due_date, priority, created_at, updated_at"

func (s *Store) CreateTask(ctx context.Context, owner string, input model.TaskInput) (model.Task, error) {
	if err := model.Validate(input); err != nil {
		return model.Task{}, err
	}

	task := model.NewTask(s.newID(), owner, input, s.timestamp())
	row := taskRow(task)

	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		row.ID, row.UserID, row.Title, row.Description, row.Status, row.Category, row.DueDate, row.Priority, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *Store) GetTask(ctx context.Context, owner, id string) (model.Task, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", id, owner)
	task, err := scanTask(row)
	if err != nil {
		return model.Task{}, notFound(err)
	}
	return task, nil
}

// UpdateTask applies patch on top of the stored row. Fields left nil in the
// patch keep their value; updated_at always advances.
func (s *Store) UpdateTask(ctx context.Context, owner, id string, patch model.TaskPatch) (model.Task, error) {
	if err := model.ValidateTaskPatch(patch); err != nil {
		return model.Task{}, err
	}

	before, err := s.GetTask(ctx, owner, id)
	if err != nil {
		return model.Task{}, err
	}

	after := patch.Apply(before)
	after.UpdatedAt = model.Touch(before.UpdatedAt, s.timestamp())
	row := taskRow(after)

	result, err := s.DB.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, category = ?, due_date = ?, priority = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		row.Title, row.Description, row.Status, row.Category, row.DueDate, row.Priority, row.UpdatedAt, id, owner,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return model.Task{}, err
	}
	return after, nil
}

func (s *Store) DeleteTask(ctx context.Context, owner, id string) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, owner)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return checkAffected(result)
}

func (s *Store) ListTasks(ctx context.Context, owner string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? ORDER BY created_at DESC", owner)
}

func (s *Store) ListTasksByStatus(ctx context.Context, owner string, status model.Status) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? AND status = ? ORDER BY created_at DESC",
		owner, string(model.NormalizeStatus(status)))
}

func (s *Store) ListTasksByCategory(ctx context.Context, owner, category string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? AND category = ? ORDER BY created_at DESC",
		owner, category)
}

// SearchTasks returns tasks whose title or description contains term,
// compared case-insensitively as a literal substring.
func (s *Store) SearchTasks(ctx context.Context, owner, term string) ([]model.Task, error) {
	pattern := likePattern(term)
	return s.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		WHERE user_id = ?
		AND (LOWER(title) LIKE ? ESCAPE '`+likeEscape+`' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '`+likeEscape+`')
		ORDER BY created_at DESC`,
		owner, pattern, pattern)
}

func (s *Store) TaskStats(ctx context.Context, owner string) (model.TaskStats, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM tasks WHERE user_id = ? GROUP BY status", owner)
	if err != nil {
		return model.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}
	defer rows.Close()

	var stats model.TaskStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return model.TaskStats{}, err
		}
		stats.Total += count
		switch model.Status(status) {
		case model.StatusPending:
			stats.Pending = count
		case model.StatusInProgress:
			stats.InProgress = count
		case model.StatusCompleted:
			stats.Completed = count
		}
	}
	return stats, rows.Err()
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type taskRecord struct {
	ID          string
	UserID      string
	Title       string
	Description sql.NullString
	Status      string
	Category    sql.NullString
	DueDate     sql.NullString
	Priority    sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func taskRow(task model.Task) taskRecord {
	row := taskRecord{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: nullString(task.Description),
		Status:      string(task.Status),
		Category:    nullString(task.Category),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullString{String: task.DueDate.String(), Valid: true}
	}
	if task.Priority != nil {
		row.Priority = sql.NullString{String: string(*task.Priority), Valid: true}
	}
	return row
}

func scanTask(scanner rowScanner) (model.Task, error) {
	var row taskRecord
	if err := scanner.Scan(
		&row.ID, &row.UserID, &row.Title, &row.Description, &row.Status,
		&row.Category, &row.DueDate, &row.Priority, &row.CreatedAt, &row.UpdatedAt,
	); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: stringPtr(row.Description),
		Status:      model.Status(row.Status),
		Category:    stringPtr(row.Category),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.DueDate.Valid && row.DueDate.String != "" {
		due, err := model.ParseDate(row.DueDate.String)
		if err != nil {
			return model.Task{}, err
		}
		task.DueDate = &due
	}
	if row.Priority.Valid && row.Priority.String != "" {
		priority := model.Priority(row.Priority.String)
		task.Priority = &priority
	}
	return task, nil
}
