package mid

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/jharlan/tasklane/bridge/scaffolding/errs"
	"github.com/jharlan/tasklane/infrastructure/web"
)

// Panics recovers from panics in the call chain and converts them into
// errors so the Errors middleware can report them.
func Panics() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) (resp web.Encoder) {
			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					resp = errs.Newf(errs.InternalOnlyLog, "PANIC [%v] TRACE[%s]", rec, string(trace))
				}
			}()

			return next(ctx, r)
		}
	}
}
