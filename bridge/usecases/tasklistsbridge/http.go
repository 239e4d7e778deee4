// Package tasklistsbridge contains HTTP route registration for task lists.
package tasklistsbridge

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Config holds configuration for the task list bridge.
type Config struct {
	Log      *logger.Logger
	Usecases *usecases.Usecases
}

// AddHTTPRoutes registers all HTTP routes for task lists.
func AddHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.GET("/task-lists", b.httpList)
	group.GET("/task-lists/{task_list_id}", b.httpGetByID)
	group.POST("/task-lists", b.httpCreate)
	group.PUT("/task-lists/{task_list_id}", b.httpRename)
	group.DELETE("/task-lists/{task_list_id}", b.httpDelete)
}
