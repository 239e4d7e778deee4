package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/usecases"
)

func TestCreateTaskListSuffixesDuplicateTitle(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")

	first := createList(t, uc, owner.ID, "Home")
	if first.Title != "Home" {
		t.Errorf("got title %q, want Home", first.Title)
	}

	second := createList(t, uc, owner.ID, "Home")
	if second.Title != "Home (1)" {
		t.Errorf("got title %q, want Home (1)", second.Title)
	}
}

func TestCreateTaskListScopesUniquenessPerOwner(t *testing.T) {
	_, uc := newFixture()
	u1 := registerUser(t, uc, "u1@example.com", "u1")
	u2 := registerUser(t, uc, "u2@example.com", "u2")

	l1 := createList(t, uc, u1.ID, "Work")
	l2 := createList(t, uc, u2.ID, "Work")

	if l1.Title != "Work" || l2.Title != "Work" {
		t.Errorf("got titles %q and %q, want both Work", l1.Title, l2.Title)
	}
}

func TestRenameTaskListNoOpSkipsResolver(t *testing.T) {
	m, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")

	probesBefore := m.listTitleProbes

	res, err := uc.RenameTaskList.Send(context.Background(), usecases.RenameTaskList{
		ListID:  list.ID,
		OwnerID: owner.ID,
		Title:   "Home",
	})
	if err != nil {
		t.Fatalf("RenameTaskList: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("RenameTaskList failed: %s", res.Failure.Message)
	}
	if res.Value.Title != "Home" {
		t.Errorf("got title %q, want Home", res.Value.Title)
	}
	if m.listTitleProbes != probesBefore {
		t.Errorf("resolver probed %d times during identity rename, want 0", m.listTitleProbes-probesBefore)
	}
}

func TestRenameTaskListResolvesCollision(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	createList(t, uc, owner.ID, "Home")
	other := createList(t, uc, owner.ID, "Errands")

	res, err := uc.RenameTaskList.Send(context.Background(), usecases.RenameTaskList{
		ListID:  other.ID,
		OwnerID: owner.ID,
		Title:   "Home",
	})
	if err != nil {
		t.Fatalf("RenameTaskList: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("RenameTaskList failed: %s", res.Failure.Message)
	}
	if res.Value.Title != "Home (1)" {
		t.Errorf("got title %q, want Home (1)", res.Value.Title)
	}
}

func TestRenameTaskListOfAnotherUser(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u1@example.com", "u1")
	stranger := registerUser(t, uc, "u2@example.com", "u2")
	list := createList(t, uc, owner.ID, "Home")

	res, err := uc.RenameTaskList.Send(context.Background(), usecases.RenameTaskList{
		ListID:  list.ID,
		OwnerID: stranger.ID,
		Title:   "Stolen",
	})
	if err != nil {
		t.Fatalf("RenameTaskList: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("expected a failure")
	}
	if res.Failure.Code != mediator.CodeNotFound {
		t.Errorf("got code %v, want not found", res.Failure.Code)
	}
}

func TestDeleteTaskListCascadesToTasks(t *testing.T) {
	m, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")

	res, err := uc.DeleteTaskList.Send(context.Background(), usecases.DeleteTaskList{ListID: list.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("DeleteTaskList: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("DeleteTaskList failed: %s", res.Failure.Message)
	}

	m.mu.Lock()
	_, taskLeft := m.tasks[task.ID]
	m.mu.Unlock()
	if taskLeft {
		t.Error("task survived its list's deletion")
	}
}

func TestCreateTaskRejectsPastDueDate(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")

	past := testNow.Add(-24 * time.Hour)
	res, err := uc.CreateTask.Send(context.Background(), usecases.CreateTask{
		ListID:  list.ID,
		OwnerID: owner.ID,
		Title:   "Buy milk",
		DueDate: &past,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("expected a validation failure")
	}
	if res.Failure.Code != mediator.CodeValidation {
		t.Errorf("got code %v, want validation", res.Failure.Code)
	}
	if res.Failure.Message != "due date cannot be in the past" {
		t.Errorf("got message %q", res.Failure.Message)
	}

	future := testNow.Add(24 * time.Hour)
	res, err = uc.CreateTask.Send(context.Background(), usecases.CreateTask{
		ListID:  list.ID,
		OwnerID: owner.ID,
		Title:   "Buy milk",
		DueDate: &future,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("CreateTask with future due date failed: %s", res.Failure.Message)
	}
}

func TestCreateTaskValidationShortCircuitsHandler(t *testing.T) {
	m, uc := newFixture()

	res, err := uc.CreateTask.Send(context.Background(), usecases.CreateTask{Title: "orphan"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("expected a validation failure")
	}

	m.mu.Lock()
	taskCount := len(m.tasks)
	m.mu.Unlock()
	if taskCount != 0 {
		t.Errorf("handler ran despite validation failure, %d tasks stored", taskCount)
	}
}

func TestCreateTaskInheritsListOwner(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")

	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")
	if task.OwnerID != owner.ID {
		t.Errorf("task owner %v does not match list owner %v", task.OwnerID, owner.ID)
	}
}

func TestDeleteOverdueTasks(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")

	// Created with a future date, then rescheduled into the past so
	// creation validation does not interfere.
	task := createTask(t, uc, list.ID, owner.ID, "stale")
	past := testNow.Add(-time.Hour)
	if _, err := uc.UpdateTask.Send(context.Background(), usecases.UpdateTask{
		TaskID:  task.ID,
		UserID:  owner.ID,
		Title:   "stale",
		DueDate: &past,
	}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	createTask(t, uc, list.ID, owner.ID, "fresh")

	res, err := uc.DeleteOverdueTasks.Send(context.Background(), usecases.DeleteOverdueTasks{ListID: list.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("DeleteOverdueTasks: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("DeleteOverdueTasks failed: %s", res.Failure.Message)
	}
	if res.Value != 1 {
		t.Errorf("deleted %d tasks, want 1", res.Value)
	}
}

func TestDeleteOverdueTasksZeroCountIsSuccess(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	createTask(t, uc, list.ID, owner.ID, "fresh")

	res, err := uc.DeleteOverdueTasks.Send(context.Background(), usecases.DeleteOverdueTasks{ListID: list.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("DeleteOverdueTasks: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("DeleteOverdueTasks failed: %s", res.Failure.Message)
	}
	if res.Value != 0 {
		t.Errorf("deleted %d tasks, want 0", res.Value)
	}
}

func TestSetTaskStatus(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")

	res, err := uc.SetTaskStatus.Send(context.Background(), usecases.SetTaskStatus{
		TaskID:  task.ID,
		OwnerID: owner.ID,
		Status:  "done",
	})
	if err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("SetTaskStatus failed: %s", res.Failure.Message)
	}
	if string(res.Value.Status) != "done" {
		t.Errorf("got status %q, want done", res.Value.Status)
	}
}

func TestSetTaskStatusRejectsUnknownStatus(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u@example.com", "u")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")

	res, err := uc.SetTaskStatus.Send(context.Background(), usecases.SetTaskStatus{
		TaskID:  task.ID,
		OwnerID: owner.ID,
		Status:  "paused",
	})
	if err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("expected a failure")
	}
	if res.Failure.Code != mediator.CodeValidation {
		t.Errorf("got code %v, want validation", res.Failure.Code)
	}
}

func TestSetTaskStatusRequiresOwnership(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u1@example.com", "u1")
	grantee := registerUser(t, uc, "u2@example.com", "u2")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")
	shareTask(t, uc, task.ID, owner.ID, grantee.ID)

	res, err := uc.SetTaskStatus.Send(context.Background(), usecases.SetTaskStatus{
		TaskID:  task.ID,
		OwnerID: grantee.ID,
		Status:  "done",
	})
	if err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("expected a failure")
	}
	if res.Failure.Code != mediator.CodeNotFound {
		t.Errorf("got code %v, want not found", res.Failure.Code)
	}
}

func TestUpdateTaskByGrantee(t *testing.T) {
	_, uc := newFixture()
	owner := registerUser(t, uc, "u1@example.com", "u1")
	grantee := registerUser(t, uc, "u2@example.com", "u2")
	list := createList(t, uc, owner.ID, "Home")
	task := createTask(t, uc, list.ID, owner.ID, "Buy milk")
	shareTask(t, uc, task.ID, owner.ID, grantee.ID)

	res, err := uc.UpdateTask.Send(context.Background(), usecases.UpdateTask{
		TaskID: task.ID,
		UserID: grantee.ID,
		Title:  "Buy oat milk",
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("UpdateTask by grantee failed: %s", res.Failure.Message)
	}
	if res.Value.Title != "Buy oat milk" {
		t.Errorf("got title %q", res.Value.Title)
	}
}
