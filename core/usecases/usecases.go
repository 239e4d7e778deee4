// Package usecases binds every command and query of the task tracker to a
// validated pipeline. Handlers open a unit of work, run access and
// uniqueness policy inside it, mutate entities and commit; business
// rejections come back as typed results, infrastructure faults as errors.
package usecases

import (
	"time"

	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/mediator"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Clock supplies the single time sample a handler uses per invocation.
type Clock interface {
	Now() time.Time
}

// UTCClock reads the wall clock in UTC.
type UTCClock struct{}

func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}

// Config carries the dependencies the use cases run on.
type Config struct {
	Log        *logger.Logger
	Repos      *repositories.Bundle
	Transactor repositories.Transactor
	Clock      Clock
}

// Usecases exposes one pipeline per operation. Reads go through the
// pool-backed bundle; mutations open their own transaction.
type Usecases struct {
	CreateTaskList *mediator.Pipeline[CreateTaskList, domain.TaskList]
	RenameTaskList *mediator.Pipeline[RenameTaskList, domain.TaskList]
	DeleteTaskList *mediator.Pipeline[DeleteTaskList, bool]
	GetTaskList    *mediator.Pipeline[GetTaskList, domain.TaskList]
	ListTaskLists  *mediator.Pipeline[ListTaskLists, []domain.TaskList]

	CreateTask         *mediator.Pipeline[CreateTask, domain.Task]
	UpdateTask         *mediator.Pipeline[UpdateTask, domain.Task]
	SetTaskStatus      *mediator.Pipeline[SetTaskStatus, domain.Task]
	DeleteTask         *mediator.Pipeline[DeleteTask, bool]
	DeleteOverdueTasks *mediator.Pipeline[DeleteOverdueTasks, int64]
	GetTask            *mediator.Pipeline[GetTask, domain.Task]
	ListTasks          *mediator.Pipeline[ListTasks, []domain.Task]
	ListSharedTasks    *mediator.Pipeline[ListSharedTasks, []domain.Task]

	CreateTag *mediator.Pipeline[CreateTag, domain.Tag]
	RenameTag *mediator.Pipeline[RenameTag, domain.Tag]
	DeleteTag *mediator.Pipeline[DeleteTag, bool]
	AttachTag *mediator.Pipeline[AttachTag, domain.Task]
	DetachTag *mediator.Pipeline[DetachTag, domain.Task]
	ListTags  *mediator.Pipeline[ListTags, []domain.Tag]

	AddComment    *mediator.Pipeline[AddComment, domain.Comment]
	DeleteComment *mediator.Pipeline[DeleteComment, bool]
	ListComments  *mediator.Pipeline[ListComments, []domain.Comment]

	GrantTaskAccess   *mediator.Pipeline[GrantTaskAccess, domain.TaskAccess]
	InviteUserByEmail *mediator.Pipeline[InviteUserByEmail, Invite]
	RevokeTaskAccess  *mediator.Pipeline[RevokeTaskAccess, bool]
	ListTaskShares    *mediator.Pipeline[ListTaskShares, []domain.TaskAccess]

	RegisterUser *mediator.Pipeline[RegisterUser, domain.User]
	GetUser      *mediator.Pipeline[GetUser, domain.User]
	DeleteUser   *mediator.Pipeline[DeleteUser, bool]
}

// New wires every pipeline. Rule registration order is load-bearing: the
// first registered rule that rejects decides the returned message.
func New(cfg Config) *Usecases {
	return &Usecases{
		CreateTaskList: mediator.NewPipeline[CreateTaskList, domain.TaskList](
			&createTaskListHandler{cfg: cfg},
			ruleCreateTaskList,
		),
		RenameTaskList: mediator.NewPipeline[RenameTaskList, domain.TaskList](
			&renameTaskListHandler{cfg: cfg},
			ruleRenameTaskList,
		),
		DeleteTaskList: mediator.NewPipeline[DeleteTaskList, bool](
			&deleteTaskListHandler{cfg: cfg},
			ruleDeleteTaskList,
		),
		GetTaskList: mediator.NewPipeline[GetTaskList, domain.TaskList](
			&getTaskListHandler{cfg: cfg},
			ruleGetTaskList,
		),
		ListTaskLists: mediator.NewPipeline[ListTaskLists, []domain.TaskList](
			&listTaskListsHandler{cfg: cfg},
			ruleListTaskLists,
		),

		CreateTask: mediator.NewPipeline[CreateTask, domain.Task](
			&createTaskHandler{cfg: cfg},
			ruleCreateTaskFormat,
			ruleCreateTaskDueDate(cfg.Clock),
		),
		UpdateTask: mediator.NewPipeline[UpdateTask, domain.Task](
			&updateTaskHandler{cfg: cfg},
			ruleUpdateTask,
		),
		SetTaskStatus: mediator.NewPipeline[SetTaskStatus, domain.Task](
			&setTaskStatusHandler{cfg: cfg},
			ruleSetTaskStatus,
		),
		DeleteTask: mediator.NewPipeline[DeleteTask, bool](
			&deleteTaskHandler{cfg: cfg},
			ruleDeleteTask,
		),
		DeleteOverdueTasks: mediator.NewPipeline[DeleteOverdueTasks, int64](
			&deleteOverdueTasksHandler{cfg: cfg},
			ruleDeleteOverdueTasks,
		),
		GetTask: mediator.NewPipeline[GetTask, domain.Task](
			&getTaskHandler{cfg: cfg},
			ruleGetTask,
		),
		ListTasks: mediator.NewPipeline[ListTasks, []domain.Task](
			&listTasksHandler{cfg: cfg},
			ruleListTasks,
		),
		ListSharedTasks: mediator.NewPipeline[ListSharedTasks, []domain.Task](
			&listSharedTasksHandler{cfg: cfg},
			ruleListSharedTasks,
		),

		CreateTag: mediator.NewPipeline[CreateTag, domain.Tag](
			&createTagHandler{cfg: cfg},
			ruleCreateTag,
		),
		RenameTag: mediator.NewPipeline[RenameTag, domain.Tag](
			&renameTagHandler{cfg: cfg},
			ruleRenameTag,
		),
		DeleteTag: mediator.NewPipeline[DeleteTag, bool](
			&deleteTagHandler{cfg: cfg},
			ruleDeleteTag,
		),
		AttachTag: mediator.NewPipeline[AttachTag, domain.Task](
			&attachTagHandler{cfg: cfg},
			ruleAttachTag,
		),
		DetachTag: mediator.NewPipeline[DetachTag, domain.Task](
			&detachTagHandler{cfg: cfg},
			ruleDetachTag,
		),
		ListTags: mediator.NewPipeline[ListTags, []domain.Tag](
			&listTagsHandler{cfg: cfg},
			ruleListTags,
		),

		AddComment: mediator.NewPipeline[AddComment, domain.Comment](
			&addCommentHandler{cfg: cfg},
			ruleAddComment,
		),
		DeleteComment: mediator.NewPipeline[DeleteComment, bool](
			&deleteCommentHandler{cfg: cfg},
			ruleDeleteComment,
		),
		ListComments: mediator.NewPipeline[ListComments, []domain.Comment](
			&listCommentsHandler{cfg: cfg},
			ruleListComments,
		),

		GrantTaskAccess: mediator.NewPipeline[GrantTaskAccess, domain.TaskAccess](
			&grantTaskAccessHandler{cfg: cfg},
			ruleGrantTaskAccess,
		),
		InviteUserByEmail: mediator.NewPipeline[InviteUserByEmail, Invite](
			&inviteUserByEmailHandler{cfg: cfg},
			ruleInviteFormat,
			ruleInviteEmail,
		),
		RevokeTaskAccess: mediator.NewPipeline[RevokeTaskAccess, bool](
			&revokeTaskAccessHandler{cfg: cfg},
			ruleRevokeTaskAccess,
		),
		ListTaskShares: mediator.NewPipeline[ListTaskShares, []domain.TaskAccess](
			&listTaskSharesHandler{cfg: cfg},
			ruleListTaskShares,
		),

		RegisterUser: mediator.NewPipeline[RegisterUser, domain.User](
			&registerUserHandler{cfg: cfg},
			ruleRegisterUser,
		),
		GetUser: mediator.NewPipeline[GetUser, domain.User](
			&getUserHandler{cfg: cfg},
			ruleGetUser,
		),
		DeleteUser: mediator.NewPipeline[DeleteUser, bool](
			&deleteUserHandler{cfg: cfg},
			ruleDeleteUser,
		),
	}
}
