package tagsbridge

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

	var input CreateTagInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.CreateTag.Send(ctx, usecases.CreateTag{
		OwnerID: userID,
		Name:    input.Name,
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

	tagID, err := pathUUID(r, "tag_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid tag_id")
	}

	var input RenameTagInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.RenameTag.Send(ctx, usecases.RenameTag{
		TagID:   tagID,
		OwnerID: userID,
		Name:    input.Name,
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

	tagID, err := pathUUID(r, "tag_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid tag_id")
	}

	result, err := b.usecases.DeleteTag.Send(ctx, usecases.DeleteTag{
		TagID:   tagID,
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

func (b *bridge) httpAttach(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	var input AttachTagInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.AttachTag.Send(ctx, usecases.AttachTag{
		TaskID:  taskID,
		TagID:   input.TagID,
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

func (b *bridge) httpDetach(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	result, err := b.usecases.DetachTag.Send(ctx, usecases.DetachTag{
		TaskID:  taskID,
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

	result, err := b.usecases.ListTags.Send(ctx, usecases.ListTags{
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
