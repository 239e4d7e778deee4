// Package api composes the bridges onto the web handler.
package api

import (
	"github.com/jharlan/tasklane/app/tasklane/config"
	"github.com/jharlan/tasklane/bridge/scaffolding/mid"
	"github.com/jharlan/tasklane/bridge/usecases/commentsbridge"
	"github.com/jharlan/tasklane/bridge/usecases/sharesbridge"
	"github.com/jharlan/tasklane/bridge/usecases/tagsbridge"
	"github.com/jharlan/tasklane/bridge/usecases/tasklistsbridge"
	"github.com/jharlan/tasklane/bridge/usecases/tasksbridge"
	"github.com/jharlan/tasklane/bridge/usecases/usersbridge"
	"github.com/jharlan/tasklane/infrastructure/web"
)

// AddRoutes registers every bridge under /v1. Registration is the only
// route outside the identity requirement.
func AddRoutes(handler *web.WebHandler, cfg config.Tasklane) {
	public := handler.Group("/v1")
	usersbridge.AddPublicHTTPRoutes(public, usersbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})

	authed := handler.Group("/v1", mid.WithUser())

	usersbridge.AddHTTPRoutes(authed, usersbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})
	tasklistsbridge.AddHTTPRoutes(authed, tasklistsbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})
	tasksbridge.AddHTTPRoutes(authed, tasksbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})
	tagsbridge.AddHTTPRoutes(authed, tagsbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})
	commentsbridge.AddHTTPRoutes(authed, commentsbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})
	sharesbridge.AddHTTPRoutes(authed, sharesbridge.Config{
		Log:      cfg.Log,
		Usecases: cfg.Usecases,
	})
}
