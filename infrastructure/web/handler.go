package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jharlan/tasklane/sdk/environment"
	"github.com/jharlan/tasklane/sdk/logger"
)

// WebHandler owns the mux and the global middleware chain.
type WebHandler struct {
	mux *http.ServeMux
	log *logger.Logger

	corsOrigins    []string
	defaultHeaders map[string]string

	globalMiddleware []Middleware
}

// HandlerOptions is the exportable configuration struct.
type HandlerOptions struct {
	CORSOrigins []string `env:"CORS_ORIGINS" default:"*" separator:","`
}

// HandlerOption overrides a configured setting.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	log              *logger.Logger
	corsOrigins      []string
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger.
func WithLogging(log *logger.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithCORS sets CORS origins.
func WithCORS(origins []string) HandlerOption {
	return func(o *handlerOptions) {
		o.corsOrigins = origins
	}
}

// WithDefaultHeaders sets headers applied to every response.
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		if o.defaultHeaders == nil {
			o.defaultHeaders = make(map[string]string)
		}
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithGlobalMiddleware adds middleware applied to every route.
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandlerFromEnv creates a WebHandler configured from environment
// variables.
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	var options HandlerOptions
	if err := environment.ParseEnvTags(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return newWebHandler(options, opts...), nil
}

// NewWebHandler creates a WebHandler with explicit options.
func NewWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	return newWebHandler(cfg, opts...)
}

func newWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	internalOpts := &handlerOptions{
		corsOrigins:      cfg.CORSOrigins,
		globalMiddleware: make([]Middleware, 0),
	}
	for _, opt := range opts {
		opt(internalOpts)
	}
	if internalOpts.defaultHeaders == nil {
		internalOpts.defaultHeaders = make(map[string]string)
	}

	handler := &WebHandler{
		mux:              http.NewServeMux(),
		log:              internalOpts.log,
		corsOrigins:      internalOpts.corsOrigins,
		defaultHeaders:   internalOpts.defaultHeaders,
		globalMiddleware: internalOpts.globalMiddleware,
	}

	// CORS runs outermost so preflights never reach the other middleware.
	if len(handler.corsOrigins) > 0 {
		handler.globalMiddleware = append([]Middleware{handler.corsMiddleware()}, handler.globalMiddleware...)
	}

	return handler
}

// Handle registers a handler under "METHOD /path" with the global chain
// plus any route middleware applied.
func (wh *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := wh.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := setWriter(r.Context(), w)
		for k, v := range wh.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && wh.log != nil {
			wh.log.ErrorContext(ctx, "respond error", "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	wh.mux.HandleFunc(pattern, httpHandler)
}

// HandleRaw registers a plain http.Handler, skipping the global chain.
func (wh *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	wh.mux.Handle(pattern, handler)
}

func (wh *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wh.mux.ServeHTTP(w, r)
}
