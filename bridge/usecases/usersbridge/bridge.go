package usersbridge

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/bridge/scaffolding/errs"
	"github.com/jharlan/tasklane/bridge/scaffolding/fopbridge"
	"github.com/jharlan/tasklane/bridge/scaffolding/mid"
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
)

type bridge struct {
	usecases *usecases.Usecases
}

func newBridge(uc *usecases.Usecases) *bridge {
	return &bridge{usecases: uc}
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	return uuid.Parse(web.Param(r, key))
}

func (b *bridge) httpRegister(ctx context.Context, r *http.Request) web.Encoder {
	var input RegisterUserInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.RegisterUser.Send(ctx, usecases.RegisterUser{
		Email:    input.Email,
		Username: input.Username,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus(result.Value, http.StatusCreated)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	if _, err := mid.GetUserID(ctx); err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := pathUUID(r, "user_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid user_id")
	}

	result, err := b.usecases.GetUser.Send(ctx, usecases.GetUser{UserID: userID})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewRecordResponse(result.Value)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	callerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := pathUUID(r, "user_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid user_id")
	}

	// Accounts are self-service. A mismatch reads as not found so user
	// ids cannot be probed.
	if callerID != userID {
		return errs.Newf(errs.NotFound, "user not found")
	}

	result, err := b.usecases.DeleteUser.Send(ctx, usecases.DeleteUser{UserID: userID})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus[any](nil, http.StatusNoContent)
}
