// Package commentspgxstore implements comment storage against PostgreSQL.
package commentspgxstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo"
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

func (s *Store) Create(ctx context.Context, comment domain.Comment) error {
	query := `INSERT INTO comments (comment_id, task_id, author_id, text, created_at)
		VALUES (@comment_id, @task_id, @author_id, @text, @created_at)`

	args := pgx.NamedArgs{
		"comment_id": comment.ID,
		"task_id":    comment.TaskID,
		"author_id":  comment.AuthorID,
		"text":       comment.Text,
		"created_at": comment.CreatedAt,
	}

	if _, err := s.db.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, commentID uuid.UUID) (domain.Comment, error) {
	query := `SELECT comment_id, task_id, author_id, text, created_at
		FROM comments WHERE comment_id = @comment_id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"comment_id": commentID})
	if err != nil {
		return domain.Comment{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Comment{}, commentsrepo.ErrCommentNotFound
		}
		return domain.Comment{}, postgresdb.HandlePgError(err)
	}

	return comment, nil
}

func (s *Store) Delete(ctx context.Context, commentID uuid.UUID) error {
	query := `DELETE FROM comments WHERE comment_id = @comment_id`

	result, err := s.db.Exec(ctx, query, pgx.NamedArgs{"comment_id": commentID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return commentsrepo.ErrCommentNotFound
	}

	return nil
}

func (s *Store) ListByTask(ctx context.Context, taskID uuid.UUID, page fop.Page) ([]domain.Comment, error) {
	query := `SELECT comment_id, task_id, author_id, text, created_at
		FROM comments
		WHERE task_id = @task_id
		ORDER BY created_at, comment_id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"task_id": taskID,
		"limit":   page.Size,
		"offset":  page.Offset(),
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Comment])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return comments, nil
}
