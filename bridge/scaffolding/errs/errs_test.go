package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jharlan/tasklane/bridge/scaffolding/errs"
	"github.com/jharlan/tasklane/core/mediator"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code errs.Code
		want int
	}{
		{errs.Internal, http.StatusInternalServerError},
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.InvalidOperation, http.StatusBadRequest},
		{errs.NotFound, http.StatusNotFound},
		{errs.Unauthenticated, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		e := errs.Newf(tc.code, "boom")
		if got := e.HTTPStatus(); got != tc.want {
			t.Errorf("code %d: got status %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestFromFailure(t *testing.T) {
	cases := []struct {
		mc   mediator.Code
		want int
	}{
		{mediator.CodeNotFound, http.StatusNotFound},
		{mediator.CodeValidation, http.StatusBadRequest},
		{mediator.CodeInvalidOperation, http.StatusBadRequest},
	}

	for _, tc := range cases {
		e := errs.FromFailure(&mediator.Failure{Code: tc.mc, Message: "nope"})
		if got := e.HTTPStatus(); got != tc.want {
			t.Errorf("mediator code %q: got status %d, want %d", tc.mc, got, tc.want)
		}
		if e.Message != "nope" {
			t.Errorf("got message %q, want %q", e.Message, "nope")
		}
	}
}

func TestEncodeOmitsInternalDetail(t *testing.T) {
	e := errs.Newf(errs.NotFound, "task not found")

	data, contentType, err := e.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("got content type %q", contentType)
	}

	var body map[string]string
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["error"] != "task not found" {
		t.Errorf("got error %q", body["error"])
	}
	if body["code"] != "not_found" {
		t.Errorf("got code %q", body["code"])
	}
	if _, ok := body["FileName"]; ok {
		t.Error("file name leaked into response")
	}
}

func TestGetErrorWrapsUnknown(t *testing.T) {
	plain := errors.New("pg: connection refused")

	e := errs.GetError(plain)
	if e.Code != errs.Internal {
		t.Errorf("got code %d, want Internal", e.Code)
	}

	wrapped := fmt.Errorf("outer: %w", errs.Newf(errs.NotFound, "gone"))
	if got := errs.GetError(wrapped); got.Code != errs.NotFound {
		t.Errorf("got code %d, want NotFound", got.Code)
	}
	if !errs.IsError(wrapped) {
		t.Error("IsError missed wrapped bridge error")
	}
}

func TestCallerIsRecorded(t *testing.T) {
	e := errs.Newf(errs.Internal, "boom")
	if e.FileName == "" || e.FuncName == "" {
		t.Errorf("caller not recorded: file=%q func=%q", e.FileName, e.FuncName)
	}
}
