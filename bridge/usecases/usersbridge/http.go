// Package usersbridge contains HTTP route registration for users.
package usersbridge

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Config holds configuration for the user bridge.
type Config struct {
	Log      *logger.Logger
	Usecases *usecases.Usecases
}

// AddPublicHTTPRoutes registers the routes that work without a caller
// identity. Registration has to, there is no user yet.
func AddPublicHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.POST("/users", b.httpRegister)
}

// AddHTTPRoutes registers the identity-scoped user routes.
func AddHTTPRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Usecases)

	group.GET("/users/{user_id}", b.httpGetByID)
	group.DELETE("/users/{user_id}", b.httpDelete)
}
