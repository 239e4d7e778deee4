// Package tasklistsrepo defines storage access for task lists.
package tasklistsrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/sdk/logger"
)

var ErrTaskListNotFound = errors.New("task list not found")

// Storer defines the data storage interface for task lists.
type Storer interface {
	Create(ctx context.Context, list domain.TaskList) error
	Get(ctx context.Context, listID uuid.UUID) (domain.TaskList, error)
	Update(ctx context.Context, list domain.TaskList) error
	// Delete removes the list; the store cascades to its tasks.
	Delete(ctx context.Context, listID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page fop.Page) ([]domain.TaskList, error)
	// ExistsByTitle checks title uniqueness within one owner's scope.
	ExistsByTitle(ctx context.Context, ownerID uuid.UUID, title string) (bool, error)
	// FindWithOverdue returns some list that contains a task due strictly
	// before the given instant, or ErrTaskListNotFound when none does. The
	// overdue sweeper uses it as its work queue.
	FindWithOverdue(ctx context.Context, before time.Time) (domain.TaskList, error)
}

// Repository provides access to task list storage.
type Repository struct {
	Storer
	log *logger.Logger
}

// NewRepository creates a new task list repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{Storer: storer, log: log}
}
