// Package accesspgxstore implements access grant storage against PostgreSQL.
package accesspgxstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/accessrepo"
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

func (s *Store) Create(ctx context.Context, grant domain.TaskAccess) error {
	query := `INSERT INTO task_access (task_id, user_id, granted_at)
		VALUES (@task_id, @user_id, @granted_at)`

	args := pgx.NamedArgs{
		"task_id":    grant.TaskID,
		"user_id":    grant.UserID,
		"granted_at": grant.GrantedAt,
	}

	if _, err := s.db.Exec(ctx, query, args); err != nil {
		err = postgresdb.HandlePgError(err)
		if errors.Is(err, postgresdb.ErrDBDuplicatedEntry) {
			return accessrepo.ErrAccessExists
		}
		return err
	}

	return nil
}

func (s *Store) Exists(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM task_access WHERE task_id = @task_id AND user_id = @user_id
	)`

	args := pgx.NamedArgs{
		"task_id": taskID,
		"user_id": userID,
	}

	var exists bool
	if err := s.db.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		return false, postgresdb.HandlePgError(err)
	}

	return exists, nil
}

func (s *Store) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	query := `DELETE FROM task_access WHERE task_id = @task_id AND user_id = @user_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
		"user_id": userID,
	}

	result, err := s.db.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return accessrepo.ErrAccessNotFound
	}

	return nil
}

func (s *Store) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAccess, error) {
	query := `SELECT task_id, user_id, granted_at
		FROM task_access
		WHERE task_id = @task_id
		ORDER BY granted_at, user_id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	grants, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TaskAccess])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return grants, nil
}
