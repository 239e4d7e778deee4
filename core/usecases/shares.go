package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/access"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/repositories/accessrepo"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
	"github.com/jharlan/tasklane/sdk/cryptids"
)

// GrantTaskAccess is the canonical, id-based share command.
type GrantTaskAccess struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
	UserID  uuid.UUID
}

// InviteUserByEmail resolves the invitee by address and then grants the
// same way GrantTaskAccess does. The token in the result is what a
// notification delivery would carry; delivery itself happens elsewhere.
type InviteUserByEmail struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
	Email   string
}

// Invite is the result of an email share.
type Invite struct {
	Grant domain.TaskAccess `json:"grant"`
	Token string            `json:"token"`
}

type RevokeTaskAccess struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
	UserID  uuid.UUID
}

type ListTaskShares struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
}

func accessService(repos *repositories.Bundle) *access.Service {
	return access.NewService(repos.Tasks, repos.Access)
}

// grantAccess runs the policy check and the insert in one transaction so
// no commit interleaves between them. The unique (task, user) constraint
// backstops the race two concurrent grants can still hit.
func grantAccess(ctx context.Context, cfg Config, taskID, ownerID uuid.UUID, candidate *domain.User) (mediator.Result[domain.TaskAccess], error) {
	uow, err := cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.TaskAccess]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	failure, err := accessService(repos).CanGrant(ctx, taskID, ownerID, candidate)
	if err != nil {
		return mediator.Result[domain.TaskAccess]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.TaskAccess](failure), nil
	}

	grant := domain.NewTaskAccess(taskID, candidate.ID, cfg.Clock.Now())

	if err := repos.Access.Create(ctx, grant); err != nil {
		if errors.Is(err, accessrepo.ErrAccessExists) {
			return mediator.Fail[domain.TaskAccess](mediator.CodeInvalidOperation, "task already shared with this user"), nil
		}
		return mediator.Result[domain.TaskAccess]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.TaskAccess]{}, err
	}

	return mediator.OK(grant), nil
}

type grantTaskAccessHandler struct {
	cfg Config
}

func (h *grantTaskAccessHandler) Handle(ctx context.Context, cmd GrantTaskAccess) (mediator.Result[domain.TaskAccess], error) {
	var candidate *domain.User
	user, err := h.cfg.Repos.Users.Get(ctx, cmd.UserID)
	switch {
	case err == nil:
		candidate = &user
	case !errors.Is(err, usersrepo.ErrUserNotFound):
		return mediator.Result[domain.TaskAccess]{}, err
	}

	return grantAccess(ctx, h.cfg, cmd.TaskID, cmd.OwnerID, candidate)
}

type inviteUserByEmailHandler struct {
	cfg Config
}

func (h *inviteUserByEmailHandler) Handle(ctx context.Context, cmd InviteUserByEmail) (mediator.Result[Invite], error) {
	var candidate *domain.User
	user, err := h.cfg.Repos.Users.GetByEmail(ctx, domain.NormalizeEmail(cmd.Email))
	switch {
	case err == nil:
		candidate = &user
	case !errors.Is(err, usersrepo.ErrUserNotFound):
		return mediator.Result[Invite]{}, err
	}

	result, err := grantAccess(ctx, h.cfg, cmd.TaskID, cmd.OwnerID, candidate)
	if err != nil {
		return mediator.Result[Invite]{}, err
	}
	if !result.Succeeded() {
		return mediator.FailFrom[Invite](result.Failure), nil
	}

	token, err := cryptids.GenerateToken()
	if err != nil {
		return mediator.Result[Invite]{}, err
	}

	return mediator.OK(Invite{Grant: result.Value, Token: token}), nil
}

type revokeTaskAccessHandler struct {
	cfg Config
}

func (h *revokeTaskAccessHandler) Handle(ctx context.Context, cmd RevokeTaskAccess) (mediator.Result[bool], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	failure, err := accessService(repos).CanRevoke(ctx, cmd.TaskID, cmd.OwnerID, cmd.UserID)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[bool](failure), nil
	}

	if err := repos.Access.Delete(ctx, cmd.TaskID, cmd.UserID); err != nil {
		if errors.Is(err, accessrepo.ErrAccessNotFound) {
			return mediator.Fail[bool](mediator.CodeNotFound, "task access not found"), nil
		}
		return mediator.Result[bool]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[bool]{}, err
	}

	return mediator.OK(true), nil
}

type listTaskSharesHandler struct {
	cfg Config
}

func (h *listTaskSharesHandler) Handle(ctx context.Context, cmd ListTaskShares) (mediator.Result[[]domain.TaskAccess], error) {
	_, failure, err := loadOwnedTask(ctx, h.cfg.Repos, cmd.TaskID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[[]domain.TaskAccess]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[[]domain.TaskAccess](failure), nil
	}

	grants, err := h.cfg.Repos.Access.ListByTask(ctx, cmd.TaskID)
	if err != nil {
		return mediator.Result[[]domain.TaskAccess]{}, err
	}

	return mediator.OK(grants), nil
}
