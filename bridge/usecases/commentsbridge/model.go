package commentsbridge

// AddCommentInput is the request body for commenting on a task.
type AddCommentInput struct {
	Text string `json:"text"`
}
