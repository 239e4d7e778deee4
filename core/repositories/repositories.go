// Package repositories aggregates the per-entity repositories and the
// request-scoped unit of work that mutation handlers commit through.
package repositories

import (
	"context"

	"github.com/jharlan/tasklane/core/repositories/accessrepo"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
)

// Bundle holds one repository per entity kind. Read paths use a
// pool-backed bundle directly; mutation handlers get a second bundle bound
// to a transaction through Begin.
type Bundle struct {
	Users     *usersrepo.Repository
	TaskLists *tasklistsrepo.Repository
	Tasks     *tasksrepo.Repository
	Tags      *tagsrepo.Repository
	Comments  *commentsrepo.Repository
	Access    *accessrepo.Repository
}

// UnitOfWork scopes a set of repositories to one transaction. Policy reads
// and the writes they guard share the same transaction, so no commit
// interleaves between check and mutation.
type UnitOfWork interface {
	// Repos returns the bundle bound to this transaction.
	Repos() *Bundle
	// Commit makes the work durable.
	Commit(ctx context.Context) error
	// Rollback discards the work; calling it after Commit is a no-op, so
	// it is safe to defer.
	Rollback(ctx context.Context) error
}

// Transactor starts units of work.
type Transactor interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
