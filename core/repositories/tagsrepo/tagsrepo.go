// Package tagsrepo defines storage access for tags.
package tagsrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/sdk/logger"
)

var ErrTagNotFound = errors.New("tag not found")

// Storer defines the data storage interface for tags.
type Storer interface {
	Create(ctx context.Context, tag domain.Tag) error
	Get(ctx context.Context, tagID uuid.UUID) (domain.Tag, error)
	Update(ctx context.Context, tag domain.Tag) error
	Delete(ctx context.Context, tagID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page fop.Page) ([]domain.Tag, error)
	// ExistsByName checks name uniqueness within one owner's scope.
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
}

// Repository provides access to tag storage.
type Repository struct {
	Storer
	log *logger.Logger
}

// NewRepository creates a new tag repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{Storer: storer, log: log}
}
