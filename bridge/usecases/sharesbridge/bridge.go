package sharesbridge

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

func (b *bridge) httpGrant(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	var input GrantInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.GrantTaskAccess.Send(ctx, usecases.GrantTaskAccess{
		TaskID:  taskID,
		OwnerID: userID,
		UserID:  input.UserID,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus(result.Value, http.StatusCreated)
}

func (b *bridge) httpInvite(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	var input InviteInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.InviteUserByEmail.Send(ctx, usecases.InviteUserByEmail{
		TaskID:  taskID,
		OwnerID: userID,
		Email:   input.Email,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus(result.Value, http.StatusCreated)
}

func (b *bridge) httpRevoke(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	granteeID, err := pathUUID(r, "user_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid user_id")
	}

	result, err := b.usecases.RevokeTaskAccess.Send(ctx, usecases.RevokeTaskAccess{
		TaskID:  taskID,
		OwnerID: userID,
		UserID:  granteeID,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus[any](nil, http.StatusNoContent)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	result, err := b.usecases.ListTaskShares.Send(ctx, usecases.ListTaskShares{
		TaskID:  taskID,
		OwnerID: userID,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewNonPaginatedRecords(result.Value)
}
