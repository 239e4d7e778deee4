// Package web is a small framework layer over net/http: handlers return
// an Encoder instead of writing to the ResponseWriter, middleware wraps
// handlers, and route groups share prefixes and middleware.
package web

import (
	"context"
	"net/http"
)

// Encoder defines behavior that can encode a data model and provide the
// content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc handles an http request and returns something to encode.
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Middleware wraps a HandlerFunc.
type Middleware func(HandlerFunc) HandlerFunc
