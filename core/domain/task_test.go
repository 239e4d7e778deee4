package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testList(t *testing.T) domain.TaskList {
	t.Helper()
	list, err := domain.NewTaskList(uuid.New(), "Inbox", testNow)
	if err != nil {
		t.Fatalf("NewTaskList: %v", err)
	}
	return list
}

func TestNewTaskInheritsListOwner(t *testing.T) {
	list := testList(t)

	task, err := domain.NewTask(list, "Buy milk", nil, nil, testNow)
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}

	if task.OwnerID != list.OwnerID {
		t.Errorf("OwnerID = %v, want list owner %v", task.OwnerID, list.OwnerID)
	}
	if task.TaskListID != list.ID {
		t.Errorf("TaskListID = %v, want %v", task.TaskListID, list.ID)
	}
	if task.Status != domain.StatusNotStarted {
		t.Errorf("Status = %v, want %v", task.Status, domain.StatusNotStarted)
	}
}

func TestNewTaskTitleRules(t *testing.T) {
	list := testList(t)

	if _, err := domain.NewTask(list, "   ", nil, nil, testNow); err == nil {
		t.Error("expected violation for blank title")
	}

	long := strings.Repeat("x", 201)
	_, err := domain.NewTask(list, long, nil, nil, testNow)
	if err == nil {
		t.Fatal("expected violation for long title")
	}
	var rv *domain.RuleViolation
	if !errors.As(err, &rv) {
		t.Fatalf("error %v is not a RuleViolation", err)
	}
	if rv.Field != "title" {
		t.Errorf("Field = %q, want title", rv.Field)
	}

	task, err := domain.NewTask(list, "  padded  ", nil, nil, testNow)
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	if task.Title != "padded" {
		t.Errorf("Title = %q, want trimmed", task.Title)
	}
}

func TestSetStatusFreeForm(t *testing.T) {
	list := testList(t)
	task, _ := domain.NewTask(list, "t", nil, nil, testNow)

	// Any defined status can be set from any other, including backwards.
	for _, s := range []domain.Status{domain.StatusDone, domain.StatusNotStarted, domain.StatusInProgress} {
		if err := task.SetStatus(s, testNow); err != nil {
			t.Errorf("SetStatus(%v): %v", s, err)
		}
		if task.Status != s {
			t.Errorf("Status = %v, want %v", task.Status, s)
		}
	}

	if err := task.SetStatus(domain.Status("archived"), testNow); err == nil {
		t.Error("expected violation for unknown status")
	}
}

func TestTagDetachLeavesReferenceOnly(t *testing.T) {
	list := testList(t)
	task, _ := domain.NewTask(list, "t", nil, nil, testNow)

	tagID := uuid.New()
	task.AttachTag(tagID, testNow)
	if task.TagID == nil || *task.TagID != tagID {
		t.Fatalf("TagID = %v, want %v", task.TagID, tagID)
	}

	task.DetachTag(testNow)
	if task.TagID != nil {
		t.Errorf("TagID = %v, want nil after detach", task.TagID)
	}
}

func TestOverdue(t *testing.T) {
	list := testList(t)

	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	overdue, _ := domain.NewTask(list, "a", nil, &past, testNow)
	pending, _ := domain.NewTask(list, "b", nil, &future, testNow)
	undated, _ := domain.NewTask(list, "c", nil, nil, testNow)

	if !overdue.Overdue(testNow) {
		t.Error("task due in the past should be overdue")
	}
	if pending.Overdue(testNow) {
		t.Error("task due in the future should not be overdue")
	}
	if undated.Overdue(testNow) {
		t.Error("task with no due date should not be overdue")
	}
	// Strictly before: a task due exactly now is not overdue.
	exact, _ := domain.NewTask(list, "d", nil, &testNow, testNow)
	if exact.Overdue(testNow) {
		t.Error("task due exactly now should not be overdue")
	}
}

func TestNewCommentTrims(t *testing.T) {
	c, err := domain.NewComment(uuid.New(), uuid.New(), "  hello  ", testNow)
	if err != nil {
		t.Fatalf("NewComment: %v", err)
	}
	if c.Text != "hello" {
		t.Errorf("Text = %q, want trimmed", c.Text)
	}

	if _, err := domain.NewComment(uuid.New(), uuid.New(), "   ", testNow); err == nil {
		t.Error("expected violation for blank comment")
	}
}

func TestTagNameBound(t *testing.T) {
	if _, err := domain.NewTag(uuid.New(), strings.Repeat("x", 51), testNow); err == nil {
		t.Error("expected violation for 51-char tag name")
	}
	if _, err := domain.NewTag(uuid.New(), strings.Repeat("x", 50), testNow); err != nil {
		t.Errorf("50-char tag name should be valid: %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	got := domain.NormalizeEmail("  Bob@Example.COM ")
	if got != "bob@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
