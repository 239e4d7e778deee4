package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
)

type RegisterUser struct {
	Email    string
	Username string
}

type GetUser struct {
	UserID uuid.UUID
}

type DeleteUser struct {
	UserID uuid.UUID
}

type registerUserHandler struct {
	cfg Config
}

func (h *registerUserHandler) Handle(ctx context.Context, cmd RegisterUser) (mediator.Result[domain.User], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.User]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	user, err := domain.NewUser(cmd.Email, cmd.Username, h.cfg.Clock.Now())
	if err != nil {
		return failViolation[domain.User](err)
	}

	if err := repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, usersrepo.ErrUserExists) {
			return mediator.Fail[domain.User](mediator.CodeInvalidOperation, "email or username is already taken"), nil
		}
		return mediator.Result[domain.User]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.User]{}, err
	}

	return mediator.OK(user), nil
}

type getUserHandler struct {
	cfg Config
}

func (h *getUserHandler) Handle(ctx context.Context, cmd GetUser) (mediator.Result[domain.User], error) {
	user, err := h.cfg.Repos.Users.Get(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, usersrepo.ErrUserNotFound) {
			return mediator.Fail[domain.User](mediator.CodeNotFound, "user not found"), nil
		}
		return mediator.Result[domain.User]{}, err
	}

	return mediator.OK(user), nil
}

type deleteUserHandler struct {
	cfg Config
}

func (h *deleteUserHandler) Handle(ctx context.Context, cmd DeleteUser) (mediator.Result[bool], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	// Everything the user owns and every grant naming them as grantee goes
	// with the account.
	if err := repos.Users.Delete(ctx, cmd.UserID); err != nil {
		if errors.Is(err, usersrepo.ErrUserNotFound) {
			return mediator.Fail[bool](mediator.CodeNotFound, "user not found"), nil
		}
		return mediator.Result[bool]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[bool]{}, err
	}

	return mediator.OK(true), nil
}
