package usersbridge

// RegisterUserInput is the request body for registering a user.
type RegisterUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}
