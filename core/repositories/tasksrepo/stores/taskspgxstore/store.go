// Package taskspgxstore implements task storage against PostgreSQL.
package taskspgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/infrastructure/postgresdb"
	"github.com/jharlan/tasklane/sdk/logger"
)

type Store struct {
	log *logger.Logger
	db  postgresdb.DB
}

func NewStore(log *logger.Logger, db postgresdb.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

const taskColumns = `task_id, task_list_id, owner_id, title, description, due_date, status, tag_id, created_at, updated_at`

func (s *Store) Create(ctx context.Context, task domain.Task) error {
	query := `INSERT INTO tasks (task_id, task_list_id, owner_id, title, description, due_date, status, tag_id, created_at, updated_at)
		VALUES (@task_id, @task_list_id, @owner_id, @title, @description, @due_date, @status, @tag_id, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"task_id":      task.ID,
		"task_list_id": task.TaskListID,
		"owner_id":     task.OwnerID,
		"title":        task.Title,
		"description":  task.Description,
		"due_date":     task.DueDate,
		"status":       task.Status,
		"tag_id":       task.TagID,
		"created_at":   task.CreatedAt,
		"updated_at":   task.UpdatedAt,
	}

	if _, err := s.db.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, taskID uuid.UUID) (domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = @task_id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return domain.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, tasksrepo.ErrTaskNotFound
		}
		return domain.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

func (s *Store) Update(ctx context.Context, task domain.Task) error {
	query := `UPDATE tasks
		SET title = @title, description = @description, due_date = @due_date,
			status = @status, tag_id = @tag_id, updated_at = @updated_at
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      task.Status,
		"tag_id":      task.TagID,
		"updated_at":  task.UpdatedAt,
	}

	result, err := s.db.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return tasksrepo.ErrTaskNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, taskID uuid.UUID) error {
	// Comments and access grants go with the task via ON DELETE CASCADE.
	query := `DELETE FROM tasks WHERE task_id = @task_id`

	result, err := s.db.Exec(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return tasksrepo.ErrTaskNotFound
	}

	return nil
}

func (s *Store) ListByList(ctx context.Context, listID uuid.UUID, page fop.Page) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE task_list_id = @task_list_id
		ORDER BY created_at, task_id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"task_list_id": listID,
		"limit":        page.Size,
		"offset":       page.Offset(),
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tasks, nil
}

func (s *Store) ListSharedWith(ctx context.Context, userID uuid.UUID, page fop.Page) ([]domain.Task, error) {
	query := `SELECT t.task_id, t.task_list_id, t.owner_id, t.title, t.description, t.due_date, t.status, t.tag_id, t.created_at, t.updated_at
		FROM tasks t
		JOIN task_access a ON a.task_id = t.task_id
		WHERE a.user_id = @user_id
		ORDER BY a.granted_at, t.task_id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"user_id": userID,
		"limit":   page.Size,
		"offset":  page.Offset(),
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tasks, nil
}

func (s *Store) DeleteOverdue(ctx context.Context, listID uuid.UUID, before time.Time) (int64, error) {
	query := `DELETE FROM tasks WHERE task_list_id = @task_list_id AND due_date < @before`

	args := pgx.NamedArgs{
		"task_list_id": listID,
		"before":       before,
	}

	result, err := s.db.Exec(ctx, query, args)
	if err != nil {
		return 0, postgresdb.HandlePgError(err)
	}

	return result.RowsAffected(), nil
}

func (s *Store) DetachTag(ctx context.Context, tagID uuid.UUID) error {
	query := `UPDATE tasks SET tag_id = NULL WHERE tag_id = @tag_id`

	if _, err := s.db.Exec(ctx, query, pgx.NamedArgs{"tag_id": tagID}); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}
