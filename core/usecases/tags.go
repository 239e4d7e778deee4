package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/core/unique"
)

type CreateTag struct {
	OwnerID uuid.UUID
	Name    string
}

type RenameTag struct {
	TagID   uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

type DeleteTag struct {
	TagID   uuid.UUID
	OwnerID uuid.UUID
}

type AttachTag struct {
	TaskID  uuid.UUID
	TagID   uuid.UUID
	OwnerID uuid.UUID
}

type DetachTag struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
}

type ListTags struct {
	OwnerID uuid.UUID
	Page    fop.Page
}

func tagNameExists(repos *repositories.Bundle, ownerID uuid.UUID) unique.ExistsFunc {
	return func(ctx context.Context, name string) (bool, error) {
		return repos.Tags.ExistsByName(ctx, ownerID, name)
	}
}

func loadOwnedTag(ctx context.Context, repos *repositories.Bundle, tagID, ownerID uuid.UUID) (domain.Tag, *mediator.Failure, error) {
	tag, err := repos.Tags.Get(ctx, tagID)
	if err != nil {
		if errors.Is(err, tagsrepo.ErrTagNotFound) {
			return domain.Tag{}, &mediator.Failure{Code: mediator.CodeNotFound, Message: "tag not found"}, nil
		}
		return domain.Tag{}, nil, err
	}
	if tag.OwnerID != ownerID {
		return domain.Tag{}, &mediator.Failure{Code: mediator.CodeNotFound, Message: "tag not found"}, nil
	}
	return tag, nil, nil
}

type createTagHandler struct {
	cfg Config
}

func (h *createTagHandler) Handle(ctx context.Context, cmd CreateTag) (mediator.Result[domain.Tag], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.Tag]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	name, err := unique.Resolve(ctx, strings.TrimSpace(cmd.Name), tagNameExists(repos, cmd.OwnerID))
	if err != nil {
		return mediator.Result[domain.Tag]{}, err
	}

	tag, err := domain.NewTag(cmd.OwnerID, name, h.cfg.Clock.Now())
	if err != nil {
		return failViolation[domain.Tag](err)
	}

	if err := repos.Tags.Create(ctx, tag); err != nil {
		return mediator.Result[domain.Tag]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Tag]{}, err
	}

	return mediator.OK(tag), nil
}

type renameTagHandler struct {
	cfg Config
}

func (h *renameTagHandler) Handle(ctx context.Context, cmd RenameTag) (mediator.Result[domain.Tag], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.Tag]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	tag, failure, err := loadOwnedTag(ctx, repos, cmd.TagID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[domain.Tag]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Tag](failure), nil
	}

	name := strings.TrimSpace(cmd.Name)
	if name == tag.Name {
		return mediator.OK(tag), nil
	}

	name, err = unique.Resolve(ctx, name, tagNameExists(repos, cmd.OwnerID))
	if err != nil {
		return mediator.Result[domain.Tag]{}, err
	}

	if err := tag.Rename(name, h.cfg.Clock.Now()); err != nil {
		return failViolation[domain.Tag](err)
	}

	if err := repos.Tags.Update(ctx, tag); err != nil {
		return mediator.Result[domain.Tag]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Tag]{}, err
	}

	return mediator.OK(tag), nil
}

type deleteTagHandler struct {
	cfg Config
}

func (h *deleteTagHandler) Handle(ctx context.Context, cmd DeleteTag) (mediator.Result[bool], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	_, failure, err := loadOwnedTag(ctx, repos, cmd.TagID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[bool](failure), nil
	}

	// Tasks keep existing; only their tag reference is cleared.
	if err := repos.Tasks.DetachTag(ctx, cmd.TagID); err != nil {
		return mediator.Result[bool]{}, err
	}
	if err := repos.Tags.Delete(ctx, cmd.TagID); err != nil {
		return mediator.Result[bool]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[bool]{}, err
	}

	return mediator.OK(true), nil
}

type attachTagHandler struct {
	cfg Config
}

func (h *attachTagHandler) Handle(ctx context.Context, cmd AttachTag) (mediator.Result[domain.Task], error) {
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

	// Tags are owner-scoped, so a task can only carry its owner's tag.
	tag, failure, err := loadOwnedTag(ctx, repos, cmd.TagID, cmd.OwnerID)
	if err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Task](failure), nil
	}

	task.AttachTag(tag.ID, h.cfg.Clock.Now())

	if err := repos.Tasks.Update(ctx, task); err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Task]{}, err
	}

	return mediator.OK(task), nil
}

type detachTagHandler struct {
	cfg Config
}

func (h *detachTagHandler) Handle(ctx context.Context, cmd DetachTag) (mediator.Result[domain.Task], error) {
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

	task.DetachTag(h.cfg.Clock.Now())

	if err := repos.Tasks.Update(ctx, task); err != nil {
		return mediator.Result[domain.Task]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Task]{}, err
	}

	return mediator.OK(task), nil
}

type listTagsHandler struct {
	cfg Config
}

func (h *listTagsHandler) Handle(ctx context.Context, cmd ListTags) (mediator.Result[[]domain.Tag], error) {
	page := cmd.Page
	if page.Size == 0 {
		page = fop.DefaultPage()
	}

	tags, err := h.cfg.Repos.Tags.ListByOwner(ctx, cmd.OwnerID, page)
	if err != nil {
		return mediator.Result[[]domain.Tag]{}, err
	}

	return mediator.OK(tags), nil
}
