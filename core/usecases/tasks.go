package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
)

type CreateTask struct {
	ListID      uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	DueDate     *time.Time
}

type UpdateTask struct {
	TaskID      uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description *string
	DueDate     *time.Time
}

type SetTaskStatus struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
	Status  string
}

type DeleteTask struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
}

type DeleteOverdueTasks struct {
	ListID  uuid.UUID
	OwnerID uuid.UUID
}

type GetTask struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

type ListTasks struct {
	ListID uuid.UUID
	UserID uuid.UUID
	Page   fop.Page
}

type ListSharedTasks struct {
	UserID uuid.UUID
	Page   fop.Page
}

func taskNotFound() *mediator.Failure {
	return &mediator.Failure{Code: mediator.CodeNotFound, Message: "task not found"}
}

// loadVisibleTask fetches a task the user may read: the owner always, a
// grantee through their grant. Everyone else gets the same not-found
// failure as a missing task.
func loadVisibleTask(ctx context.Context, repos *repositories.Bundle, taskID, userID uuid.UUID) (domain.Task, *mediator.Failure, error) {
	task, err := repos.Tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrTaskNotFound) {
			return domain.Task{}, taskNotFound(), nil
		}
		return domain.Task{}, nil, err
	}

	if task.OwnerID == userID {
		return task, nil, nil
	}

	granted, err := repos.Access.Exists(ctx, taskID, userID)
	if err != nil {
		return domain.Task{}, nil, err
	}
	if !granted {
		return domain.Task{}, taskNotFound(), nil
	}

	return task, nil, nil
}

// loadOwnedTask fetches a task and verifies ownership; grants do not count.
func loadOwnedTask(ctx context.Context, repos *repositories.Bundle, taskID, ownerID uuid.UUID) (domain.Task, *mediator.Failure, error) {
	task, err := repos.Tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrTaskNotFound) {
			return domain.Task{}, taskNotFound(), nil
		}
		return domain.Task{}, nil, err
	}
	if task.OwnerID != ownerID {
		return domain.Task{}, taskNotFound(), nil
	}
	return task, nil, nil
}

type createTaskHandler struct {
	cfg Config
}

func (h *createTaskHandler) Handle(ctx context.Context, cmd CreateTask) (mediator.Result[domain.Task], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	list, failure, err := loadOwnedList(ctx, repos, cmd.ListID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Task](failure), nil
	}

	task, err := domain.NewTask(list, cmd.Title, cmd.Description, cmd.DueDate, h.cfg.Clock.Now())
	if err != nil {
		return failViolation[domain.Task](err)
	}

	if err := repos.Tasks.Create(ctx, task); err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Task]{}, err
	}

	return mediator.OK(task), nil
}

type updateTaskHandler struct {
	cfg Config
}

func (h *updateTaskHandler) Handle(ctx context.Context, cmd UpdateTask) (mediator.Result[domain.Task], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	// Re-fetch inside the transaction so the write never acts on a stale
	// read from a concurrent caller.
	task, failure, err := loadVisibleTask(ctx, repos, cmd.TaskID, cmd.UserID)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Task](failure), nil
	}

	now := h.cfg.Clock.Now()
	if err := task.Retitle(cmd.Title, now); err != nil {
		return failViolation[domain.Task](err)
	}
	task.Describe(cmd.Description, now)
	task.Reschedule(cmd.DueDate, now)

	if err := repos.Tasks.Update(ctx, task); err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Task]{}, err
	}

	return mediator.OK(task), nil
}

type setTaskStatusHandler struct {
	cfg Config
}

func (h *setTaskStatusHandler) Handle(ctx context.Context, cmd SetTaskStatus) (mediator.Result[domain.Task], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	task, failure, err := loadOwnedTask(ctx, repos, cmd.TaskID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Task](failure), nil
	}

	if err := task.SetStatus(domain.Status(cmd.Status), h.cfg.Clock.Now()); err != nil {
		return failViolation[domain.Task](err)
	}

	if err := repos.Tasks.Update(ctx, task); err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Task]{}, err
	}

	return mediator.OK(task), nil
}

type deleteTaskHandler struct {
	cfg Config
}

func (h *deleteTaskHandler) Handle(ctx context.Context, cmd DeleteTask) (mediator.Result[bool], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	_, failure, err := loadOwnedTask(ctx, repos, cmd.TaskID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[bool](failure), nil
	}

	// Comments and grants on the task go with it.
	if err := repos.Tasks.Delete(ctx, cmd.TaskID); err != nil {
		return mediator.Result[bool]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[bool]{}, err
	}

	return mediator.OK(true), nil
}

type deleteOverdueTasksHandler struct {
	cfg Config
}

func (h *deleteOverdueTasksHandler) Handle(ctx context.Context, cmd DeleteOverdueTasks) (mediator.Result[int64], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[int64]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	_, failure, err := loadOwnedList(ctx, repos, cmd.ListID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[int64]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[int64](failure), nil
	}

	// One sampled "now" for the whole bulk delete; a zero count is still a
	// success.
	count, err := repos.Tasks.DeleteOverdue(ctx, cmd.ListID, h.cfg.Clock.Now())
	if err != nil {
		return mediator.Result[int64]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[int64]{}, err
	}

	return mediator.OK(count), nil
}

type getTaskHandler struct {
	cfg Config
}

func (h *getTaskHandler) Handle(ctx context.Context, cmd GetTask) (mediator.Result[domain.Task], error) {
	task, failure, err := loadVisibleTask(ctx, h.cfg.Repos, cmd.TaskID, cmd.UserID)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Task](failure), nil
	}

	return mediator.OK(task), nil
}

type listTasksHandler struct {
	cfg Config
}

func (h *listTasksHandler) Handle(ctx context.Context, cmd ListTasks) (mediator.Result[[]domain.Task], error) {
	_, failure, err := loadOwnedList(ctx, h.cfg.Repos, cmd.ListID, cmd.UserID)
	if err != nil {
		return mediator.Result[[]domain.Task]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[[]domain.Task](failure), nil
	}

	page := cmd.Page
	if page.Size == 0 {
		page = fop.DefaultPage()
	}

	tasks, err := h.cfg.Repos.Tasks.ListByList(ctx, cmd.ListID, page)
	if err != nil {
		return mediator.Result[[]domain.Task]{}, err
	}

	return mediator.OK(tasks), nil
}

type listSharedTasksHandler struct {
	cfg Config
}

func (h *listSharedTasksHandler) Handle(ctx context.Context, cmd ListSharedTasks) (mediator.Result[[]domain.Task], error) {
	page := cmd.Page
	if page.Size == 0 {
		page = fop.DefaultPage()
	}

	tasks, err := h.cfg.Repos.Tasks.ListSharedWith(ctx, cmd.UserID, page)
	if err != nil {
		return mediator.Result[[]domain.Task]{}, err
	}

	return mediator.OK(tasks), nil
}
