package usecases

import (
	"context"
	"errors"

	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
	"github.com/jharlan/tasklane/infrastructure/workers"
	"github.com/jharlan/tasklane/sdk/logger"
)

// SweepJob is one task list holding at least one overdue task.
type SweepJob struct {
	List    domain.TaskList
	Deleted int64
}

func (j SweepJob) GetID() string {
	return j.List.ID.String()
}

// OverdueSweeper feeds the worker pool with lists that contain overdue
// tasks and purges them on the list owner's behalf. Deleting overdue tasks
// is idempotent, so two workers racing on the same list is harmless.
type OverdueSweeper struct {
	log *logger.Logger
	cfg Config
}

func NewOverdueSweeper(log *logger.Logger, cfg Config) *OverdueSweeper {
	return &OverdueSweeper{
		log: log,
		cfg: cfg,
	}
}

func (s *OverdueSweeper) Checkout(ctx context.Context, _ string) (SweepJob, error) {
	list, err := s.cfg.Repos.TaskLists.FindWithOverdue(ctx, s.cfg.Clock.Now())
	if err != nil {
		if errors.Is(err, tasklistsrepo.ErrTaskListNotFound) {
			return SweepJob{}, workers.ErrNoWorkAvailable
		}
		return SweepJob{}, err
	}

	return SweepJob{List: list}, nil
}

func (s *OverdueSweeper) Process(ctx context.Context, job SweepJob) (SweepJob, error) {
	uow, err := s.cfg.Transactor.Begin(ctx)
	if err != nil {
		return job, err
	}
	defer uow.Rollback(ctx)

	count, err := uow.Repos().Tasks.DeleteOverdue(ctx, job.List.ID, s.cfg.Clock.Now())
	if err != nil {
		return job, err
	}
	if err := uow.Commit(ctx); err != nil {
		return job, err
	}

	job.Deleted = count
	return job, nil
}

func (s *OverdueSweeper) Complete(ctx context.Context, job SweepJob, processingTimeMS int) error {
	s.log.InfoContext(ctx, "swept overdue tasks",
		"task_list_id", job.List.ID,
		"deleted", job.Deleted,
		"duration_ms", processingTimeMS)
	return nil
}

func (s *OverdueSweeper) Fail(ctx context.Context, job SweepJob, err error) error {
	s.log.ErrorContext(ctx, "overdue sweep failed",
		"task_list_id", job.List.ID,
		"error", err)
	return nil
}
