// Package usersrepo defines storage access for user accounts.
package usersrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/sdk/logger"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists surfaces the unique email/username constraint.
	ErrUserExists = errors.New("user already exists")
)

// Storer defines the data storage interface for users.
type Storer interface {
	Create(ctx context.Context, user domain.User) error
	Get(ctx context.Context, userID uuid.UUID) (domain.User, error)
	// GetByEmail looks up an account by its normalized address.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context, page fop.Page) ([]domain.User, error)
	// Delete removes the account; the store cascades everything the user
	// owns and every grant where the user is the grantee.
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Repository provides access to user storage.
type Repository struct {
	Storer
	log *logger.Logger
}

// NewRepository creates a new user repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{Storer: storer, log: log}
}
