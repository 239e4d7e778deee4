package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/core/unique"
)

type CreateTaskList struct {
	OwnerID uuid.UUID
	Title   string
}

type RenameTaskList struct {
	ListID  uuid.UUID
	OwnerID uuid.UUID
	Title   string
}

type DeleteTaskList struct {
	ListID  uuid.UUID
	OwnerID uuid.UUID
}

type GetTaskList struct {
	ListID  uuid.UUID
	OwnerID uuid.UUID
}

type ListTaskLists struct {
	OwnerID uuid.UUID
	Page    fop.Page
}

// listTitleExists scopes the uniqueness probe to one owner's lists.
func listTitleExists(repos *repositories.Bundle, ownerID uuid.UUID) unique.ExistsFunc {
	return func(ctx context.Context, name string) (bool, error) {
		return repos.TaskLists.ExistsByTitle(ctx, ownerID, name)
	}
}

// loadOwnedList fetches a list and verifies ownership. A missing list and a
// list owned by someone else report the same not-found failure.
func loadOwnedList(ctx context.Context, repos *repositories.Bundle, listID, ownerID uuid.UUID) (domain.TaskList, *mediator.Failure, error) {
	list, err := repos.TaskLists.Get(ctx, listID)
	if err != nil {
		if errors.Is(err, tasklistsrepo.ErrTaskListNotFound) {
			return domain.TaskList{}, &mediator.Failure{Code: mediator.CodeNotFound, Message: "task list not found"}, nil
		}
		return domain.TaskList{}, nil, err
	}
	if list.OwnerID != ownerID {
		return domain.TaskList{}, &mediator.Failure{Code: mediator.CodeNotFound, Message: "task list not found"}, nil
	}
	return list, nil, nil
}

type createTaskListHandler struct {
	cfg Config
}

func (h *createTaskListHandler) Handle(ctx context.Context, cmd CreateTaskList) (mediator.Result[domain.TaskList], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	title, err := unique.Resolve(ctx, strings.TrimSpace(cmd.Title), listTitleExists(repos, cmd.OwnerID))
	if err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}

	list, err := domain.NewTaskList(cmd.OwnerID, title, h.cfg.Clock.Now())
	if err != nil {
		return failViolation[domain.TaskList](err)
	}

	if err := repos.TaskLists.Create(ctx, list); err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}

	return mediator.OK(list), nil
}

type renameTaskListHandler struct {
	cfg Config
}

func (h *renameTaskListHandler) Handle(ctx context.Context, cmd RenameTaskList) (mediator.Result[domain.TaskList], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	list, failure, err := loadOwnedList(ctx, repos, cmd.ListID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.TaskList](failure), nil
	}

	// An identity rename only collides with itself; skip resolution and
	// the write entirely.
	title := strings.TrimSpace(cmd.Title)
	if title == list.Title {
		return mediator.OK(list), nil
	}

	title, err = unique.Resolve(ctx, title, listTitleExists(repos, cmd.OwnerID))
	if err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}

	if err := list.Rename(title, h.cfg.Clock.Now()); err != nil {
		return failViolation[domain.TaskList](err)
	}

	if err := repos.TaskLists.Update(ctx, list); err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}

	return mediator.OK(list), nil
}

type deleteTaskListHandler struct {
	cfg Config
}

func (h *deleteTaskListHandler) Handle(ctx context.Context, cmd DeleteTaskList) (mediator.Result[bool], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	_, failure, err := loadOwnedList(ctx, repos, cmd.ListID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[bool](failure), nil
	}

	if err := repos.TaskLists.Delete(ctx, cmd.ListID); err != nil {
		return mediator.Result[bool]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[bool]{}, err
	}

	return mediator.OK(true), nil
}

type getTaskListHandler struct {
	cfg Config
}

func (h *getTaskListHandler) Handle(ctx context.Context, cmd GetTaskList) (mediator.Result[domain.TaskList], error) {
	list, failure, err := loadOwnedList(ctx, h.cfg.Repos, cmd.ListID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[domain.TaskList]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.TaskList](failure), nil
	}

	return mediator.OK(list), nil
}

type listTaskListsHandler struct {
	cfg Config
}

func (h *listTaskListsHandler) Handle(ctx context.Context, cmd ListTaskLists) (mediator.Result[[]domain.TaskList], error) {
	page := cmd.Page
	if page.Size == 0 {
		page = fop.DefaultPage()
	}

	lists, err := h.cfg.Repos.TaskLists.ListByOwner(ctx, cmd.OwnerID, page)
	if err != nil {
		return mediator.Result[[]domain.TaskList]{}, err
	}

	return mediator.OK(lists), nil
}
