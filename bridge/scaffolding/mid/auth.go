package mid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/bridge/scaffolding/errs"
	"github.com/jharlan/tasklane/infrastructure/web"
)

// userHeader names the header carrying the caller identity. Upstream
// infrastructure is trusted to have authenticated it.
const userHeader = "X-User-ID"

// WithUser extracts the caller's user id from the request header and
// stores it in the context for the bridges.
func WithUser() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			raw := r.Header.Get(userHeader)
			if raw == "" {
				return errs.Newf(errs.Unauthenticated, "missing %s header", userHeader)
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "malformed %s header", userHeader)
			}

			return next(setUserID(ctx, userID), r)
		}
	}
}
