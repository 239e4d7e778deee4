package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskAccess grants a non-owner user the right to read and act on a task.
// The (TaskID, UserID) pair is unique and never names the task's owner;
// ownership supersedes sharing.
type TaskAccess struct {
	TaskID    uuid.UUID `db:"task_id" json:"task_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	GrantedAt time.Time `db:"granted_at" json:"granted_at"`
}

// NewTaskAccess builds a grant. Policy checks (owner match, duplicate
// grants, self-share) run in the access engine before construction.
func NewTaskAccess(taskID, userID uuid.UUID, now time.Time) TaskAccess {
	return TaskAccess{
		TaskID:    taskID,
		UserID:    userID,
		GrantedAt: now,
	}
}
