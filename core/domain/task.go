package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a task's progress state. The setter accepts any defined status
// in any order; there is no forward-only constraint.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ParseStatus validates a status string coming from outside the domain.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", violation("status", "%q is not a valid task status", s)
}

// Task belongs to exactly one task list. OwnerID duplicates the list
// owner's id so access checks never have to traverse the list; the pair is
// fixed at creation and never diverges.
type Task struct {
	ID          uuid.UUID  `db:"task_id" json:"task_id"`
	TaskListID  uuid.UUID  `db:"task_list_id" json:"task_list_id"`
	OwnerID     uuid.UUID  `db:"owner_id" json:"owner_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	Status      Status     `db:"status" json:"status"`
	TagID       *uuid.UUID `db:"tag_id" json:"tag_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

const maxTaskTitleLength = 200

// NewTask builds a task inside the given list. The ownerID must be the
// list owner's id; handlers look it up from the list they already verified.
func NewTask(list TaskList, title string, description *string, dueDate *time.Time, now time.Time) (Task, error) {
	title, err := checkTaskTitle(title)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:          uuid.New(),
		TaskListID:  list.ID,
		OwnerID:     list.OwnerID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      StatusNotStarted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetStatus moves the task to the given status.
func (t *Task) SetStatus(s Status, now time.Time) error {
	if _, err := ParseStatus(string(s)); err != nil {
		return err
	}
	t.Status = s
	t.UpdatedAt = now
	return nil
}

// Retitle replaces the title.
func (t *Task) Retitle(title string, now time.Time) error {
	title, err := checkTaskTitle(title)
	if err != nil {
		return err
	}
	t.Title = title
	t.UpdatedAt = now
	return nil
}

// Describe replaces the description; nil clears it.
func (t *Task) Describe(description *string, now time.Time) {
	t.Description = description
	t.UpdatedAt = now
}

// Reschedule replaces the due date; nil clears it.
func (t *Task) Reschedule(dueDate *time.Time, now time.Time) {
	t.DueDate = dueDate
	t.UpdatedAt = now
}

// AttachTag points the task at a tag. Tags are attached by reference only.
func (t *Task) AttachTag(tagID uuid.UUID, now time.Time) {
	t.TagID = &tagID
	t.UpdatedAt = now
}

// DetachTag clears the tag reference. The tag itself is untouched.
func (t *Task) DetachTag(now time.Time) {
	t.TagID = nil
	t.UpdatedAt = now
}

// Overdue reports whether the task's due date is strictly before now.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

func checkTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", violation("title", "task title is required")
	}
	if len(title) > maxTaskTitleLength {
		return "", violation("title", "task title cannot exceed %d characters", maxTaskTitleLength)
	}
	return title, nil
}
