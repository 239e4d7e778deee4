package sharesbridge

import "github.com/google/uuid"

// GrantInput is the request body for sharing a task by user id.
type GrantInput struct {
	UserID uuid.UUID `json:"user_id"`
}

// InviteInput is the request body for sharing a task by email.
type InviteInput struct {
	Email string `json:"email"`
}
