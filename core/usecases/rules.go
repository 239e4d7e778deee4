package usecases

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
)

// Validation rules are pure functions over the request value: format-level
// checks only, no storage reads. The pipeline may run them concurrently.

func requireID(errs []mediator.FieldError, id uuid.UUID, field string) []mediator.FieldError {
	if id == uuid.Nil {
		errs = append(errs, mediator.FieldError{Field: field, Message: field + " is required"})
	}
	return errs
}

func requireText(errs []mediator.FieldError, value, field, message string) []mediator.FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, mediator.FieldError{Field: field, Message: message})
	}
	return errs
}

func ruleCreateTaskList(cmd CreateTaskList) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireText(errs, cmd.Title, "title", "task list title is required")
	return errs
}

func ruleRenameTaskList(cmd RenameTaskList) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.ListID, "task_list_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireText(errs, cmd.Title, "title", "task list title is required")
	return errs
}

func ruleDeleteTaskList(cmd DeleteTaskList) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.ListID, "task_list_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleGetTaskList(cmd GetTaskList) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.ListID, "task_list_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleListTaskLists(cmd ListTaskLists) []mediator.FieldError {
	return requireID(nil, cmd.OwnerID, "owner_id")
}

func ruleCreateTaskFormat(cmd CreateTask) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.ListID, "task_list_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireText(errs, cmd.Title, "title", "task title is required")
	return errs
}

// ruleCreateTaskDueDate closes over the clock so tests can pin "now". The
// sample is taken once per rule invocation.
func ruleCreateTaskDueDate(clock Clock) mediator.Rule[CreateTask] {
	return func(cmd CreateTask) []mediator.FieldError {
		if cmd.DueDate == nil {
			return nil
		}
		if cmd.DueDate.Before(clock.Now()) {
			return []mediator.FieldError{{Field: "due_date", Message: "due date cannot be in the past"}}
		}
		return nil
	}
}

func ruleUpdateTask(cmd UpdateTask) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	errs = requireText(errs, cmd.Title, "title", "task title is required")
	return errs
}

func ruleSetTaskStatus(cmd SetTaskStatus) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireText(errs, cmd.Status, "status", "status is required")
	return errs
}

func ruleDeleteTask(cmd DeleteTask) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleDeleteOverdueTasks(cmd DeleteOverdueTasks) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.ListID, "task_list_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleGetTask(cmd GetTask) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	return errs
}

func ruleListTasks(cmd ListTasks) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.ListID, "task_list_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	return errs
}

func ruleListSharedTasks(cmd ListSharedTasks) []mediator.FieldError {
	return requireID(nil, cmd.UserID, "user_id")
}

func ruleCreateTag(cmd CreateTag) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireText(errs, cmd.Name, "name", "tag name is required")
	return errs
}

func ruleRenameTag(cmd RenameTag) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TagID, "tag_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireText(errs, cmd.Name, "name", "tag name is required")
	return errs
}

func ruleDeleteTag(cmd DeleteTag) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TagID, "tag_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleAttachTag(cmd AttachTag) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.TagID, "tag_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleDetachTag(cmd DetachTag) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleListTags(cmd ListTags) []mediator.FieldError {
	return requireID(nil, cmd.OwnerID, "owner_id")
}

func ruleAddComment(cmd AddComment) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.AuthorID, "author_id")
	errs = requireText(errs, cmd.Text, "text", "comment text is required")
	return errs
}

func ruleDeleteComment(cmd DeleteComment) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.CommentID, "comment_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	return errs
}

func ruleListComments(cmd ListComments) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	return errs
}

func ruleGrantTaskAccess(cmd GrantTaskAccess) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	return errs
}

func ruleInviteFormat(cmd InviteUserByEmail) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleInviteEmail(cmd InviteUserByEmail) []mediator.FieldError {
	email := domain.NormalizeEmail(cmd.Email)
	if email == "" {
		return []mediator.FieldError{{Field: "email", Message: "email is required"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []mediator.FieldError{{Field: "email", Message: "email is not a valid address"}}
	}
	return nil
}

func ruleRevokeTaskAccess(cmd RevokeTaskAccess) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	errs = requireID(errs, cmd.UserID, "user_id")
	return errs
}

func ruleListTaskShares(cmd ListTaskShares) []mediator.FieldError {
	var errs []mediator.FieldError
	errs = requireID(errs, cmd.TaskID, "task_id")
	errs = requireID(errs, cmd.OwnerID, "owner_id")
	return errs
}

func ruleRegisterUser(cmd RegisterUser) []mediator.FieldError {
	var errs []mediator.FieldError
	email := domain.NormalizeEmail(cmd.Email)
	if email == "" {
		errs = append(errs, mediator.FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, mediator.FieldError{Field: "email", Message: "email is not a valid address"})
	}
	errs = requireText(errs, cmd.Username, "username", "username is required")
	return errs
}

func ruleGetUser(cmd GetUser) []mediator.FieldError {
	return requireID(nil, cmd.UserID, "user_id")
}

func ruleDeleteUser(cmd DeleteUser) []mediator.FieldError {
	return requireID(nil, cmd.UserID, "user_id")
}

// failViolation converts an entity rule violation into a validation
// failure. Any other error is passed through untouched for the boundary to
// surface generically.
func failViolation[T any](err error) (mediator.Result[T], error) {
	var rv *domain.RuleViolation
	if errors.As(err, &rv) {
		return mediator.Fail[T](mediator.CodeValidation, "%s", rv.Message), nil
	}
	return mediator.Result[T]{}, err
}
