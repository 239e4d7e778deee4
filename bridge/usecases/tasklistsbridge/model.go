package tasklistsbridge

// CreateTaskListInput is the request body for creating a task list.
type CreateTaskListInput struct {
	Title string `json:"title"`
}

// RenameTaskListInput is the request body for renaming a task list.
type RenameTaskListInput struct {
	Title string `json:"title"`
}
