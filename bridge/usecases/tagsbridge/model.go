package tagsbridge

import "github.com/google/uuid"

// CreateTagInput is the request body for creating a tag.
type CreateTagInput struct {
	Name string `json:"name"`
}

// RenameTagInput is the request body for renaming a tag.
type RenameTagInput struct {
	Name string `json:"name"`
}

// AttachTagInput is the request body for labeling a task.
type AttachTagInput struct {
	TagID uuid.UUID `json:"tag_id"`
}
