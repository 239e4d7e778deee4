package tasksbridge

import "time"

// CreateTaskInput is the request body for creating a task.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskInput is the request body for rewriting a task's fields.
type UpdateTaskInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// SetStatusInput is the request body for a status transition.
type SetStatusInput struct {
	Status string `json:"status"`
}

// DeletedCount reports how many rows a bulk delete removed.
type DeletedCount struct {
	Deleted int64 `json:"deleted"`
}
