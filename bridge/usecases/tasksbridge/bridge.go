package tasksbridge

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

	listID, err := pathUUID(r, "task_list_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_list_id")
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.CreateTask.Send(ctx, usecases.CreateTask{
		ListID:      listID,
		OwnerID:     userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponseWithStatus(result.Value, http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.UpdateTask.Send(ctx, usecases.UpdateTask{
		TaskID:      taskID,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return fopbridge.NewRecordResponse(result.Value)
}

func (b *bridge) httpSetStatus(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	var input SetStatusInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	result, err := b.usecases.SetTaskStatus.Send(ctx, usecases.SetTaskStatus{
		TaskID:  taskID,
		OwnerID: userID,
		Status:  input.Status,
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

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	result, err := b.usecases.DeleteTask.Send(ctx, usecases.DeleteTask{
		TaskID:  taskID,
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

func (b *bridge) httpDeleteOverdue(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	listID, err := pathUUID(r, "task_list_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_list_id")
	}

	result, err := b.usecases.DeleteOverdueTasks.Send(ctx, usecases.DeleteOverdueTasks{
		ListID:  listID,
		OwnerID: userID,
	})
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	if !result.Succeeded() {
		return errs.FromFailure(result.Failure)
	}

	return web.NewJSONResponse(DeletedCount{Deleted: result.Value})
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID, err := pathUUID(r, "task_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_id")
	}

	result, err := b.usecases.GetTask.Send(ctx, usecases.GetTask{
		TaskID: taskID,
		UserID: userID,
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

	listID, err := pathUUID(r, "task_list_id")
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task_list_id")
	}

	page, err := fop.ParsePage(web.QueryParam(r, "page"), web.QueryParam(r, "size"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	result, err := b.usecases.ListTasks.Send(ctx, usecases.ListTasks{
		ListID: listID,
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

func (b *bridge) httpListShared(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	page, err := fop.ParsePage(web.QueryParam(r, "page"), web.QueryParam(r, "size"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	result, err := b.usecases.ListSharedTasks.Send(ctx, usecases.ListSharedTasks{
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
