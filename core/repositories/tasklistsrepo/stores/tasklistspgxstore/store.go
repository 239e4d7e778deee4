// Package tasklistspgxstore implements task list storage against PostgreSQL.
package tasklistspgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
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

func (s *Store) Create(ctx context.Context, list domain.TaskList) error {
	query := `INSERT INTO task_lists (task_list_id, owner_id, title, created_at, updated_at)
		VALUES (@task_list_id, @owner_id, @title, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"task_list_id": list.ID,
		"owner_id":     list.OwnerID,
		"title":        list.Title,
		"created_at":   list.CreatedAt,
		"updated_at":   list.UpdatedAt,
	}

	if _, err := s.db.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, listID uuid.UUID) (domain.TaskList, error) {
	query := `SELECT task_list_id, owner_id, title, created_at, updated_at
		FROM task_lists WHERE task_list_id = @task_list_id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"task_list_id": listID})
	if err != nil {
		return domain.TaskList{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	list, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.TaskList])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TaskList{}, tasklistsrepo.ErrTaskListNotFound
		}
		return domain.TaskList{}, postgresdb.HandlePgError(err)
	}

	return list, nil
}

func (s *Store) Update(ctx context.Context, list domain.TaskList) error {
	query := `UPDATE task_lists
		SET title = @title, updated_at = @updated_at
		WHERE task_list_id = @task_list_id`

	args := pgx.NamedArgs{
		"task_list_id": list.ID,
		"title":        list.Title,
		"updated_at":   list.UpdatedAt,
	}

	result, err := s.db.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return tasklistsrepo.ErrTaskListNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, listID uuid.UUID) error {
	// Tasks in the list go with it via ON DELETE CASCADE.
	query := `DELETE FROM task_lists WHERE task_list_id = @task_list_id`

	result, err := s.db.Exec(ctx, query, pgx.NamedArgs{"task_list_id": listID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return tasklistsrepo.ErrTaskListNotFound
	}

	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID, page fop.Page) ([]domain.TaskList, error) {
	query := `SELECT task_list_id, owner_id, title, created_at, updated_at
		FROM task_lists
		WHERE owner_id = @owner_id
		ORDER BY created_at, task_list_id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    page.Size,
		"offset":   page.Offset(),
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	lists, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TaskList])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return lists, nil
}

func (s *Store) ExistsByTitle(ctx context.Context, ownerID uuid.UUID, title string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM task_lists WHERE owner_id = @owner_id AND title = @title
	)`

	args := pgx.NamedArgs{
		"owner_id": ownerID,
		"title":    title,
	}

	var exists bool
	if err := s.db.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		return false, postgresdb.HandlePgError(err)
	}

	return exists, nil
}

func (s *Store) FindWithOverdue(ctx context.Context, before time.Time) (domain.TaskList, error) {
	query := `SELECT l.task_list_id, l.owner_id, l.title, l.created_at, l.updated_at
		FROM task_lists l
		WHERE EXISTS (
			SELECT 1 FROM tasks t
			WHERE t.task_list_id = l.task_list_id AND t.due_date < @before
		)
		ORDER BY l.created_at, l.task_list_id
		LIMIT 1`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"before": before})
	if err != nil {
		return domain.TaskList{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	list, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.TaskList])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TaskList{}, tasklistsrepo.ErrTaskListNotFound
		}
		return domain.TaskList{}, postgresdb.HandlePgError(err)
	}

	return list, nil
}
