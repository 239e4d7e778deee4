package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
)

type AddComment struct {
	TaskID   uuid.UUID
	AuthorID uuid.UUID
	Text     string
}

type DeleteComment struct {
	CommentID uuid.UUID
	UserID    uuid.UUID
}

type ListComments struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Page   fop.Page
}

type addCommentHandler struct {
	cfg Config
}

func (h *addCommentHandler) Handle(ctx context.Context, cmd AddComment) (mediator.Result[domain.Comment], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[domain.Comment]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	// Anyone who can read the task can comment on it.
	_, failure, err := loadVisibleTask(ctx, repos, cmd.TaskID, cmd.AuthorID)
	if err != nil {
		return mediator.Result[domain.Comment]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[domain.Comment](failure), nil
	}

	comment, err := domain.NewComment(cmd.TaskID, cmd.AuthorID, cmd.Text, h.cfg.Clock.Now())
	if err != nil {
		return failViolation[domain.Comment](err)
	}

	if err := repos.Comments.Create(ctx, comment); err != nil {
		return mediator.Result[domain.Comment]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[domain.Comment]{}, err
	}

	return mediator.OK(comment), nil
}

type deleteCommentHandler struct {
	cfg Config
}

func (h *deleteCommentHandler) Handle(ctx context.Context, cmd DeleteComment) (mediator.Result[bool], error) {
	uow, err := h.cfg.Transactor.Begin(ctx)
	if err != nil {
		return mediator.Result[bool]{}, err
	}
	defer uow.Rollback(ctx)
	repos := uow.Repos()

	comment, err := repos.Comments.Get(ctx, cmd.CommentID)
	if err != nil {
		if errors.Is(err, commentsrepo.ErrCommentNotFound) {
			return mediator.Fail[bool](mediator.CodeNotFound, "comment not found"), nil
		}
		return mediator.Result[bool]{}, err
	}

	// The author may delete their own comment; the task owner may delete
	// any comment on their task.
	if comment.AuthorID != cmd.UserID {
		_, failure, err := loadOwnedTask(ctx, repos, comment.TaskID, cmd.UserID)
		if err != nil {
			return mediator.Result[bool]{}, err
		}
		if failure != nil {
			return mediator.Fail[bool](mediator.CodeNotFound, "comment not found"), nil
		}
	}

	if err := repos.Comments.Delete(ctx, cmd.CommentID); err != nil {
		return mediator.Result[bool]{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return mediator.Result[bool]{}, err
	}

	return mediator.OK(true), nil
}

type listCommentsHandler struct {
	cfg Config
}

func (h *listCommentsHandler) Handle(ctx context.Context, cmd ListComments) (mediator.Result[[]domain.Comment], error) {
	_, failure, err := loadVisibleTask(ctx, h.cfg.Repos, cmd.TaskID, cmd.UserID)
	if err != nil {
		return mediator.Result[[]domain.Comment]{}, err
	}
	if failure != nil {
		return mediator.FailFrom[[]domain.Comment](failure), nil
	}

	page := cmd.Page
	if page.Size == 0 {
		page = fop.DefaultPage()
	}

	comments, err := h.cfg.Repos.Comments.ListByTask(ctx, cmd.TaskID, page)
	if err != nil {
		return mediator.Result[[]domain.Comment]{}, err
	}

	return mediator.OK(comments), nil
}
