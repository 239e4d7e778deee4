package commentsbridge

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

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	var input AddCommentInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.AddComment.Send(ctx, usecases.AddComment{
		TaskID:   taskID,
		AuthorID: userID,
		Text:     input.Text,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus(result.Value, http.StatusCreated)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	commentID, err := pathUUID(r, "comment_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid comment_id")
	}

	result, err := b.usecases.DeleteComment.Send(ctx, usecases.DeleteComment{
		CommentID: commentID,
		UserID:    userID,
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

	page, err := fop.ParsePage(web.QueryParam(r, "page"), web.QueryParam(r, "size"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	result, err := b.usecases.ListComments.Send(ctx, usecases.ListComments{
		TaskID: taskID,
		UserID: userID,
		Page:   page,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewPaginatedResponse(result.Value, page)
}
