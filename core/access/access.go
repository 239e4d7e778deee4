// Package access holds the decision logic for who may read, share and
// unshare tasks. Every task-scoped operation passes through here before
// touching storage.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
)

// TaskStore is the slice of task storage the engine needs.
type TaskStore interface {
	Get(ctx context.Context, taskID uuid.UUID) (domain.Task, error)
}

// GrantStore is the slice of grant storage the engine needs.
type GrantStore interface {
	Exists(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
}

// Service answers access questions against the given stores. Handlers run
// it inside the same transaction as the mutation it guards.
type Service struct {
	tasks  TaskStore
	grants GrantStore
}

func NewService(tasks TaskStore, grants GrantStore) *Service {
	return &Service{
		tasks:  tasks,
		grants: grants,
	}
}

// HasAccess reports whether userID owns the task or holds a grant on it.
// A missing task yields false, never an error, so callers can use it
// after deletes without special-casing.
func (s *Service) HasAccess(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrTaskNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get task: %w", err)
	}

	if task.OwnerID == userID {
		return true, nil
	}

	exists, err := s.grants.Exists(ctx, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("check grant: %w", err)
	}

	return exists, nil
}

// CanGrant evaluates the grant-creation policy. The rules run in a fixed
// order and the first failing rule wins; a nil candidate means the user
// lookup upstream found nothing. A non-nil Failure is a policy rejection,
// a non-nil error is an infrastructure fault.
func (s *Service) CanGrant(ctx context.Context, taskID, ownerID uuid.UUID, candidate *domain.User) (*mediator.Failure, error) {
	if candidate == nil {
		return &mediator.Failure{
			Code:    mediator.CodeValidation,
			Message: "cannot grant access to this task",
		}, nil
	}

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrTaskNotFound) {
			return noTaskAccessFailure(), nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.OwnerID != ownerID {
		return noTaskAccessFailure(), nil
	}

	if candidate.ID == task.OwnerID {
		return &mediator.Failure{
			Code:    mediator.CodeValidation,
			Message: "task cannot be shared with its owner",
		}, nil
	}

	exists, err := s.grants.Exists(ctx, taskID, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("check grant: %w", err)
	}
	if exists {
		return &mediator.Failure{
			Code:    mediator.CodeInvalidOperation,
			Message: "task already shared with this user",
		}, nil
	}

	return nil, nil
}

// CanRevoke evaluates the revocation policy: only the task owner may
// revoke, and only a grant that exists can be revoked. Ownership is not a
// grant, so an owner revoking themselves fails on the missing grant.
func (s *Service) CanRevoke(ctx context.Context, taskID, requesterID, granteeID uuid.UUID) (*mediator.Failure, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrTaskNotFound) {
			return noTaskAccessFailure(), nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.OwnerID != requesterID {
		return noTaskAccessFailure(), nil
	}

	exists, err := s.grants.Exists(ctx, taskID, granteeID)
	if err != nil {
		return nil, fmt.Errorf("check grant: %w", err)
	}
	if !exists {
		return &mediator.Failure{
			Code:    mediator.CodeNotFound,
			Message: "task access not found",
		}, nil
	}

	return nil, nil
}

// Rejections for a missing task and for a task owned by someone else are
// indistinguishable to the caller, so task ids cannot be probed.
func noTaskAccessFailure() *mediator.Failure {
	return &mediator.Failure{
		Code:    mediator.CodeValidation,
		Message: "current user has no access to this task",
	}
}
