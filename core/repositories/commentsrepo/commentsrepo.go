// Package commentsrepo defines storage access for task comments.
package commentsrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/sdk/logger"
)

var ErrCommentNotFound = errors.New("comment not found")

// Storer defines the data storage interface for comments.
type Storer interface {
	Create(ctx context.Context, comment domain.Comment) error
	Get(ctx context.Context, commentID uuid.UUID) (domain.Comment, error)
	Delete(ctx context.Context, commentID uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID, page fop.Page) ([]domain.Comment, error)
}

// Repository provides access to comment storage.
type Repository struct {
	Storer
	log *logger.Logger
}

// NewRepository creates a new comment repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{Storer: storer, log: log}
}
