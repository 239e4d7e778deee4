// Package userspgxstore implements user storage against PostgreSQL.
package userspgxstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
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

func (s *Store) Create(ctx context.Context, user domain.User) error {
	query := `INSERT INTO users (user_id, email, username, created_at)
		VALUES (@user_id, @email, @username, @created_at)`

	args := pgx.NamedArgs{
		"user_id":    user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}

	if _, err := s.db.Exec(ctx, query, args); err != nil {
		err = postgresdb.HandlePgError(err)
		if errors.Is(err, postgresdb.ErrDBDuplicatedEntry) {
			return usersrepo.ErrUserExists
		}
		return err
	}

	return nil
}

func (s *Store) Get(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	query := `SELECT user_id, email, username, created_at FROM users WHERE user_id = @user_id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return domain.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, usersrepo.ErrUserNotFound
		}
		return domain.User{}, postgresdb.HandlePgError(err)
	}

	return user, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT user_id, email, username, created_at FROM users WHERE email = @email`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"email": email})
	if err != nil {
		return domain.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, usersrepo.ErrUserNotFound
		}
		return domain.User{}, postgresdb.HandlePgError(err)
	}

	return user, nil
}

func (s *Store) List(ctx context.Context, page fop.Page) ([]domain.User, error) {
	query := `SELECT user_id, email, username, created_at FROM users
		ORDER BY created_at, user_id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"limit":  page.Size,
		"offset": page.Offset(),
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return users, nil
}

func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	// Lists, tasks, tags, comments and grants cascade from the schema.
	query := `DELETE FROM users WHERE user_id = @user_id`

	result, err := s.db.Exec(ctx, query, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return usersrepo.ErrUserNotFound
	}

	return nil
}
