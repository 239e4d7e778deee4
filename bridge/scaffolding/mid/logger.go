package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			log.InfoContext(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)

			resp := next(ctx, r)

			log.InfoContext(ctx, "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"since", time.Since(now).String())

			return resp
		}
	}
}
