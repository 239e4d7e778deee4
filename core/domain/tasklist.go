package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskList groups tasks under one owner. Its title is unique within that
// owner's lists only; two users may both have a list called "Work".
type TaskList struct {
	ID        uuid.UUID `db:"task_list_id" json:"task_list_id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const maxListTitleLength = 200

// NewTaskList builds a list owned by ownerID. The caller resolves title
// collisions before construction.
func NewTaskList(ownerID uuid.UUID, title string, now time.Time) (TaskList, error) {
	title, err := checkListTitle(title)
	if err != nil {
		return TaskList{}, err
	}

	return TaskList{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename replaces the title. The caller is responsible for skipping the
// uniqueness check entirely when the new title equals the current one.
func (l *TaskList) Rename(title string, now time.Time) error {
	title, err := checkListTitle(title)
	if err != nil {
		return err
	}
	l.Title = title
	l.UpdatedAt = now
	return nil
}

func checkListTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", violation("title", "task list title is required")
	}
	if len(title) > maxListTitleLength {
		return "", violation("title", "task list title cannot exceed %d characters", maxListTitleLength)
	}
	return title, nil
}
