// Package sharesbridge contains HTTP route registration for task sharing.
package sharesbridge

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Config holds configuration for the share bridge.
type Config struct {
	Log      *logger.Logger
	Usecases *usecases.Usecases
}

// AddHTTPRoutes registers all HTTP routes for sharing.
func AddHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.GET("/tasks/{task_id}/shares", b.httpList)
	group.POST("/tasks/{task_id}/shares", b.httpGrant)
	group.POST("/tasks/{task_id}/invites", b.httpInvite)
	group.DELETE("/tasks/{task_id}/shares/{user_id}", b.httpRevoke)
}
