// Package result defines the uniform envelope returned by the service layer.
//
// Services report expected outcomes (bad input, missing entity, duplicate)
// as a Result and reserve Go errors for unexpected failures such as the
// database being unavailable. Controllers turn a Result into an HTTP
// status and JSON body; an error becomes a generic 500.
package result

import "net/http"

// Code classifies a Result.
type Code string

const (
	CodeOK           Code = "ok"
	CodeCreated      Code = "created"
	CodeInvalid      Code = "invalid"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
)

// StatusFor maps a Code to its HTTP status hint.
// Conflicts are reported as 400 to keep the existing client contract.
func StatusFor(c Code) int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeCreated:
		return http.StatusCreated
	case CodeInvalid, CodeConflict:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Result is the service-layer envelope.
type Result[T any] struct {
	Success    bool
	Code       Code
	StatusCode int
	Message    string
	Data       T
	Count      int  // number of items for list results
	IsList     bool // set by List; Count is meaningful
}

// Is reports whether r carries the given code.
func (r Result[T]) Is(c Code) bool { return r.Code == c }

func ok[T any](c Code, data T, msg string) Result[T] {
	return Result[T]{Success: true, Code: c, StatusCode: StatusFor(c), Message: msg, Data: data}
}

func fail[T any](c Code, msg string) Result[T] {
	return Result[T]{Code: c, StatusCode: StatusFor(c), Message: msg}
}

// OK wraps a successful read or update.
func OK[T any](data T, msg string) Result[T] { return ok(CodeOK, data, msg) }

// Created wraps a successful create.
func Created[T any](data T, msg string) Result[T] { return ok(CodeCreated, data, msg) }

// List wraps a successful list read and records its length in Count.
// A nil slice is replaced by an empty one so it encodes as [].
func List[T any](items []T, msg string) Result[[]T] {
	if items == nil {
		items = []T{}
	}
	r := ok(CodeOK, items, msg)
	r.Count = len(items)
	r.IsList = true
	return r
}

func Invalid[T any](msg string) Result[T]      { return fail[T](CodeInvalid, msg) }
func NotFound[T any](msg string) Result[T]     { return fail[T](CodeNotFound, msg) }
func Conflict[T any](msg string) Result[T]     { return fail[T](CodeConflict, msg) }
func Unauthorized[T any](msg string) Result[T] { return fail[T](CodeUnauthorized, msg) }
