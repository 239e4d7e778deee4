package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is authored by one user on one task.
type Comment struct {
	ID        uuid.UUID `db:"comment_id" json:"comment_id"`
	TaskID    uuid.UUID `db:"task_id" json:"task_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewComment builds a comment with trimmed, non-empty text.
func NewComment(taskID, authorID uuid.UUID, text string, now time.Time) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, violation("text", "comment text is required")
	}

	return Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: now,
	}, nil
}
