package usecases_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/repositories/accessrepo"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/workers"
	"github.com/jharlan/tasklane/sdk/logger"
)

func TestCreateTagSuffixesDuplicateName(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")

	first, err := uc.CreateTag.Send(context.Background(), usecases.CreateTag{OwnerID: owner.ID, Name: "urgent"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if first.Value.Name != "urgent" {
		t.Errorf("got name %q, want urgent", first.Value.Name)
	}

	second, err := uc.CreateTag.Send(context.Background(), usecases.CreateTag{OwnerID: owner.ID, Name: "urgent"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if second.Value.Name != "urgent (1)" {
		t.Errorf("got name %q, want urgent (1)", second.Value.Name)
	}
}

func TestRenameTagNoOpSkipsResolver(t *testing.T) {
	m, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")

	tag, err := uc.CreateTag.Send(context.Background(), usecases.CreateTag{OwnerID: owner.ID, Name: "urgent"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	probesBefore := m.tagNameProbes
	res, err := uc.RenameTag.Send(context.Background(), usecases.RenameTag{
		TagID:   tag.Value.ID,
		OwnerID: owner.ID,
		Name:    "urgent",
	})
	if err != nil {
		t.Fatalf("RenameTag: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("RenameTag failed: %s", res.Failure.Message)
	}
	if m.tagNameProbes != probesBefore {
		t.Error("resolver probed during identity rename")
	}
}

func TestDeleteTagDetachesFromTasks(t *testing.T) {
	m, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")

	tag, err := uc.CreateTag.Send(context.Background(), usecases.CreateTag{OwnerID: owner.ID, Name: "urgent"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if _, err := uc.AttachTag.Send(context.Background(), usecases.AttachTag{
		TaskID:  task.ID,
		TagID:   tag.Value.ID,
		OwnerID: owner.ID,
	}); err != nil {
		t.Fatalf("AttachTag: %v", err)
	}

	res, err := uc.DeleteTag.Send(context.Background(), usecases.DeleteTag{TagID: tag.Value.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("DeleteTag failed: %s", res.Failure.Message)
	}

	m.mu.Lock()
	got := m.tasks[task.ID]
	m.mu.Unlock()
	if got.TagID != nil {
		t.Error("task still references the deleted tag")
	}
}

func TestAttachForeignTagRejected(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u1@example.com", "u1")
	other := registerUser(t, uc, "u2@example.com", "u2")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")

	tag, err := uc.CreateTag.Send(context.Background(), usecases.CreateTag{OwnerID: other.ID, Name: "urgent"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	res, err := uc.AttachTag.Send(context.Background(), usecases.AttachTag{
		TaskID:  task.ID,
		TagID:   tag.Value.ID,
		OwnerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("AttachTag: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("attached another user's tag")
	}
	if res.Failure.Code != mediator.CodeNotFound {
		t.Errorf("got code %v, want not found", res.Failure.Code)
	}
}

func sweeperFixture(t *testing.T) (*memStore, *usecases.Usecases, *usecases.OverdueSweeper) {
	t.Helper()
	m := newMemStore()
	log := logger.NewDefault(logger.WithOutput(io.Discard))

	repos := &repositories.Bundle{
		Users:     usersrepo.NewRepository(log, memUsers{m}),
		TaskLists: tasklistsrepo.NewRepository(log, memLists{m}),
		Tasks:     tasksrepo.NewRepository(log, memTasks{m}),
		Tags:      tagsrepo.NewRepository(log, memTags{m}),
		Comments:  commentsrepo.NewRepository(log, memComments{m}),
		Access:    accessrepo.NewRepository(log, memGrants{m}),
	}
	cfg := usecases.Config{
		Log:        log,
		Repos:      repos,
		Transactor: &memTransactor{repos: repos},
		Clock:      fixedClock{now: testNow},
	}

	return m, usecases.New(cfg), usecases.NewOverdueSweeper(log, cfg)
}

func TestSweeperCheckoutWithoutWork(t *testing.T) {
	_, uc, sweeper := sweeperFixture(t)
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	createTask(t, uc, list.ID, owner.ID, "fresh")

	if _, err := sweeper.Checkout(context.Background(), "w1"); err != workers.ErrNoWorkAvailable {
		t.Errorf("got %v, want ErrNoWorkAvailable", err)
	}
}

func TestSweeperPurgesOverdueTasks(t *testing.T) {
	m, uc, sweeper := sweeperFixture(t)
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "stale")

	// Backdate the due date behind the handlers' validation.
	past := testNow.Add(-time.Hour)
	m.mu.Lock()
	stale := m.tasks[task.ID]
	stale.DueDate = &past
	m.tasks[task.ID] = stale
	m.mu.Unlock()

	job, err := sweeper.Checkout(context.Background(), "w1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if job.List.ID != list.ID {
		t.Fatalf("checked out list %v, want %v", job.List.ID, list.ID)
	}

	job, err = sweeper.Process(context.Background(), job)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if job.Deleted != 1 {
		t.Errorf("deleted %d tasks, want 1", job.Deleted)
	}

	if _, err := sweeper.Checkout(context.Background(), "w1"); err != workers.ErrNoWorkAvailable {
		t.Errorf("got %v after sweep, want ErrNoWorkAvailable", err)
	}
}
