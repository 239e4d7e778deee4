package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jharlan/tasklane/core/repositories/accessrepo"
	"github.com/jharlan/tasklane/core/repositories/accessrepo/stores/accesspgxstore"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo/stores/commentspgxstore"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo/stores/tagspgxstore"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo/stores/tasklistspgxstore"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
	"github.com/jharlan/tasklane/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jharlan/tasklane/infrastructure/postgresdb"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Postgres wires pgx-backed stores into a Bundle and starts
// transaction-scoped units of work off the same pool.
type Postgres struct {
	log   *logger.Logger
	pool  *postgresdb.Pool
	repos *Bundle
}

// NewPostgres builds the pool-backed bundle.
func NewPostgres(log *logger.Logger, pool *postgresdb.Pool) *Postgres {
	return &Postgres{
		log:   log,
		pool:  pool,
		repos: newBundle(log, pool),
	}
}

func newBundle(log *logger.Logger, db postgresdb.DB) *Bundle {
	return &Bundle{
		Users:     usersrepo.NewRepository(log, userspgxstore.NewStore(log, db)),
		TaskLists: tasklistsrepo.NewRepository(log, tasklistspgxstore.NewStore(log, db)),
		Tasks:     tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, db)),
		Tags:      tagsrepo.NewRepository(log, tagspgxstore.NewStore(log, db)),
		Comments:  commentsrepo.NewRepository(log, commentspgxstore.NewStore(log, db)),
		Access:    accessrepo.NewRepository(log, accesspgxstore.NewStore(log, db)),
	}
}

// Repos returns the pool-backed bundle for reads outside a transaction.
func (p *Postgres) Repos() *Bundle {
	return p.repos
}

// Begin starts a transaction and returns a bundle bound to it.
func (p *Postgres) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &pgUow{
		tx:    tx,
		repos: newBundle(p.log, tx),
	}, nil
}

type pgUow struct {
	tx    pgx.Tx
	repos *Bundle
}

func (u *pgUow) Repos() *Bundle {
	return u.repos
}

func (u *pgUow) Commit(ctx context.Context) error {
	return u.tx.Commit(ctx)
}

func (u *pgUow) Rollback(ctx context.Context) error {
	err := u.tx.Rollback(ctx)
	if err == nil || err == pgx.ErrTxClosed {
		return nil
	}
	return err
}
