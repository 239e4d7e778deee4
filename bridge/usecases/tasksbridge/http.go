// Package tasksbridge contains HTTP route registration for tasks.
package tasksbridge

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Config holds configuration for the task bridge.
type Config struct {
	Log      *logger.Logger
	Usecases *usecases.Usecases
}

// AddHTTPRoutes registers all HTTP routes for tasks. Task creation and
// listing hang off their list; shared listing is caller-scoped.
func AddHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.POST("/task-lists/{task_list_id}/tasks", b.httpCreate)
	group.GET("/task-lists/{task_list_id}/tasks", b.httpList)
	group.DELETE("/task-lists/{task_list_id}/tasks/overdue", b.httpDeleteOverdue)

	group.GET("/tasks/shared", b.httpListShared)
	group.GET("/tasks/{task_id}", b.httpGetByID)
	group.PUT("/tasks/{task_id}", b.httpUpdate)
	group.PUT("/tasks/{task_id}/status", b.httpSetStatus)
	group.DELETE("/tasks/{task_id}", b.httpDelete)
}
