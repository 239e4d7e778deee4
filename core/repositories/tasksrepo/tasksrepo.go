// Package tasksrepo defines storage access for tasks.
package tasksrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/sdk/logger"
)

var ErrTaskNotFound = errors.New("task not found")

// Storer defines the data storage interface for tasks.
type Storer interface {
	Create(ctx context.Context, task domain.Task) error
	Get(ctx context.Context, taskID uuid.UUID) (domain.Task, error)
	// Update writes the full tracked entity back; handlers re-fetch
	// immediately before mutating so stale reads never win.
	Update(ctx context.Context, task domain.Task) error
	// Delete removes the task; the store cascades to its comments and
	// access grants.
	Delete(ctx context.Context, taskID uuid.UUID) error
	ListByList(ctx context.Context, listID uuid.UUID, page fop.Page) ([]domain.Task, error)
	// ListSharedWith returns tasks the user holds a grant on (not owned).
	ListSharedWith(ctx context.Context, userID uuid.UUID, page fop.Page) ([]domain.Task, error)
	// DeleteOverdue bulk-deletes every task in the list due strictly
	// before the given instant and reports how many rows went away.
	DeleteOverdue(ctx context.Context, listID uuid.UUID, before time.Time) (int64, error)
	// DetachTag clears the tag reference on every task pointing at it.
	DetachTag(ctx context.Context, tagID uuid.UUID) error
}

// Repository provides access to task storage.
type Repository struct {
	Storer
	log *logger.Logger
}

// NewRepository creates a new task repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{Storer: storer, log: log}
}
