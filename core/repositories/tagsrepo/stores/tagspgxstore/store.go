// Package tagspgxstore implements tag storage against PostgreSQL.
package tagspgxstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo"
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

func (s *Store) Create(ctx context.Context, tag domain.Tag) error {
	query := `INSERT INTO tags (tag_id, owner_id, name, created_at, updated_at)
		VALUES (@tag_id, @owner_id, @name, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"tag_id":     tag.ID,
		"owner_id":   tag.OwnerID,
		"name":       tag.Name,
		"created_at": tag.CreatedAt,
		"updated_at": tag.UpdatedAt,
	}

	if _, err := s.db.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, tagID uuid.UUID) (domain.Tag, error) {
	query := `SELECT tag_id, owner_id, name, created_at, updated_at
		FROM tags WHERE tag_id = @tag_id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"tag_id": tagID})
	if err != nil {
		return domain.Tag{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tag, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Tag])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, tagsrepo.ErrTagNotFound
		}
		return domain.Tag{}, postgresdb.HandlePgError(err)
	}

	return tag, nil
}

func (s *Store) Update(ctx context.Context, tag domain.Tag) error {
	query := `UPDATE tags
		SET name = @name, updated_at = @updated_at
		WHERE tag_id = @tag_id`

	args := pgx.NamedArgs{
		"tag_id":     tag.ID,
		"name":       tag.Name,
		"updated_at": tag.UpdatedAt,
	}

	result, err := s.db.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return tagsrepo.ErrTagNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, tagID uuid.UUID) error {
	query := `DELETE FROM tags WHERE tag_id = @tag_id`

	result, err := s.db.Exec(ctx, query, pgx.NamedArgs{"tag_id": tagID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return tagsrepo.ErrTagNotFound
	}

	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID, page fop.Page) ([]domain.Tag, error) {
	query := `SELECT tag_id, owner_id, name, created_at, updated_at
		FROM tags
		WHERE owner_id = @owner_id
		ORDER BY name, tag_id
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

	tags, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Tag])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tags, nil
}

func (s *Store) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM tags WHERE owner_id = @owner_id AND name = @name
	)`

	args := pgx.NamedArgs{
		"owner_id": ownerID,
		"name":     name,
	}

	var exists bool
	if err := s.db.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		return false, postgresdb.HandlePgError(err)
	}

	return exists, nil
}
