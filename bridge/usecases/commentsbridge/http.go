// Package commentsbridge contains HTTP route registration for comments.
package commentsbridge

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Config holds configuration for the comment bridge.
type Config struct {
	Log      *logger.Logger
	Usecases *usecases.Usecases
}

// AddHTTPRoutes registers all HTTP routes for comments.
func AddHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.POST("/tasks/{task_id}/comments", b.httpCreate)
	group.GET("/tasks/{task_id}/comments", b.httpList)
	group.DELETE("/comments/{comment_id}", b.httpDelete)
}
