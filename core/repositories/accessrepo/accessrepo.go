// Package accessrepo defines storage access for task access grants.
package accessrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/sdk/logger"
)

var (
	ErrAccessNotFound = errors.New("task access not found")
	// ErrAccessExists surfaces the unique (task, user) constraint, the
	// last line of defense when two grant calls race.
	ErrAccessExists = errors.New("task access already granted")
)

// Storer defines the data storage interface for access grants.
type Storer interface {
	Create(ctx context.Context, grant domain.TaskAccess) error
	Exists(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	// Delete removes one grant; a missing row is ErrAccessNotFound, never
	// a silent no-op.
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAccess, error)
}

// Repository provides access to grant storage.
type Repository struct {
	Storer
	log *logger.Logger
}

// NewRepository creates a new access grant repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{Storer: storer, log: log}
}
