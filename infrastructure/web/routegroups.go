package web

import "strings"

// RouteGroup shares a path prefix and middleware across routes.
type RouteGroup struct {
	webHandler *WebHandler
	prefix     string
	middleware []Middleware
}

func (wh *WebHandler) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: wh,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	allMiddleware := append(g.middleware, middleware...)
	g.webHandler.Handle(method, g.prefix+path, handler, allMiddleware...)
}

func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	combined := append(g.middleware, middleware...)
	return &RouteGroup{
		webHandler: g.webHandler,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: combined,
	}
}
