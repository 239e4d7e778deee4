package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jharlan/tasklane/infrastructure/web"
)

type payload struct {
	Name string `json:"name"`
}

func TestHandleRoutesByMethodAndPath(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{})

	wh.GET("/things/{thing_id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(payload{Name: web.Param(r, "thing_id")})
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/abc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("got content type %q", ct)
	}

	var got payload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "abc" {
		t.Errorf("got name %q, want %q", got.Name, "abc")
	}

	rec = httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/things/abc", nil))
	if rec.Code == http.StatusOK {
		t.Error("unregistered method matched the GET route")
	}
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{})

	var order []string
	tag := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	group := wh.Group("/v1", tag("group"))
	nested := group.Group("/admin", tag("nested"))
	nested.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(payload{Name: "pong"})
	}, tag("route"))

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	want := []string{"group", "nested", "route"}
	if len(order) != len(want) {
		t.Fatalf("got %d middleware invocations, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("middleware %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestCORSHeadersOnRequest(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{CORSOrigins: []string{"*"}})

	wh.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(payload{Name: "pong"})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("got allow-origin %q, want %q", got, "*")
	}
}

func TestNoContentSkipsBody(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{})

	wh.DELETE("/things/{thing_id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponseWithStatus[any](nil, http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/things/abc", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("got body %q, want empty", rec.Body.String())
	}
}

func TestDefaultHeadersApplied(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithDefaultHeaders(map[string]string{"X-Frame-Options": "DENY"}))

	wh.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(payload{Name: "pong"})
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("got %q, want DENY", got)
	}
}
