// Package tagsbridge contains HTTP route registration for tags.
package tagsbridge

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Config holds configuration for the tag bridge.
type Config struct {
	Log      *logger.Logger
	Usecases *usecases.Usecases
}

// AddHTTPRoutes registers all HTTP routes for tags, including the
// attach/detach routes that live under tasks.
func AddHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.GET("/tags", b.httpList)
	group.POST("/tags", b.httpCreate)
	group.PUT("/tags/{tag_id}", b.httpRename)
	group.DELETE("/tags/{tag_id}", b.httpDelete)

	group.PUT("/tasks/{task_id}/tag", b.httpAttach)
	group.DELETE("/tasks/{task_id}/tag", b.httpDetach)
}
