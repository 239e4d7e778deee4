// Package errs provides the error type returned by bridge handlers.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/jharlan/tasklane/core/mediator"
)

// Code classifies a handler error for HTTP status mapping.
type Code int

const (
	Internal Code = iota
	InternalOnlyLog
	InvalidArgument
	NotFound
	InvalidOperation
	Unauthenticated
)

var codeNames = map[Code]string{
	Internal:         "internal",
	InternalOnlyLog:  "internal",
	InvalidArgument:  "invalid_argument",
	NotFound:         "not_found",
	InvalidOperation: "invalid_operation",
	Unauthenticated:  "unauthenticated",
}

var httpStatuses = map[Code]int{
	Internal:         http.StatusInternalServerError,
	InternalOnlyLog:  http.StatusInternalServerError,
	InvalidArgument:  http.StatusBadRequest,
	NotFound:         http.StatusNotFound,
	InvalidOperation: http.StatusBadRequest,
	Unauthenticated:  http.StatusUnauthorized,
}

// Error is the bridge error. It carries the call site so the error
// middleware can log where it came from.
type Error struct {
	Code     Code   `json:"-"`
	Message  string `json:"message"`
	FuncName string `json:"-"`
	FileName string `json:"-"`
}

// New constructs an error from a code and an underlying error.
func New(code Code, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error from a code and a format string.
func Newf(code Code, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// FromFailure converts a mediator failure into a bridge error.
func FromFailure(f *mediator.Failure) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	code := Internal
	switch f.Code {
	case mediator.CodeNotFound:
		code = NotFound
	case mediator.CodeValidation:
		code = InvalidArgument
	case mediator.CodeInvalidOperation:
		code = InvalidOperation
	}

	return &Error{
		Code:     code,
		Message:  f.Message,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	type response struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}

	data, err := json.Marshal(response{Error: e.Message, Code: codeNames[e.Code]})
	if err != nil {
		return nil, "", err
	}

	return data, "application/json", nil
}

// HTTPStatus returns the status code for the error.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatuses[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsError reports whether err is a bridge error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// GetError extracts the bridge error, or wraps err as internal.
func GetError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: Internal, Message: err.Error()}
}
