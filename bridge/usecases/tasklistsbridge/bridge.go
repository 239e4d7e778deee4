package tasklistsbridge

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/bridge/scaffolding/errs"
	"github.com/jharlan/tasklane/bridge/scaffolding/fopbridge"
	"github.com/jharlan/tasklane/bridge/scaffolding/mid"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
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

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input CreateTaskListInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.CreateTaskList.Send(ctx, usecases.CreateTaskList{
		OwnerID: userID,
		Title:   input.Title,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus(result.Value, http.StatusCreated)
}

func (b *bridge) httpRename(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	listID, err := pathUUID(r, "task_list_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_list_id")
	}

	var input RenameTaskListInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.RenameTaskList.Send(ctx, usecases.RenameTaskList{
		ListID:  listID,
		OwnerID: userID,
		Title:   input.Title,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewRecordResponse(result.Value)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	listID, err := pathUUID(r, "task_list_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_list_id")
	}

	result, err := b.usecases.DeleteTaskList.Send(ctx, usecases.DeleteTaskList{
		ListID:  listID,
		OwnerID: userID,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus[any](nil, http.StatusNoContent)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	listID, err := pathUUID(r, "task_list_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_list_id")
	}

	result, err := b.usecases.GetTaskList.Send(ctx, usecases.GetTaskList{
		ListID:  listID,
		OwnerID: userID,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewRecordResponse(result.Value)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	page, err := fop.ParsePage(web.QueryParam(r, "page"), web.QueryParam(r, "size"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	result, err := b.usecases.ListTaskLists.Send(ctx, usecases.ListTaskLists{
		OwnerID: userID,
		Page:    page,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewPaginatedResponse(result.Value, page)
}
