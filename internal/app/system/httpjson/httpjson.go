// Package httpjson writes the API's JSON envelope and decodes request bodies.
//
// Every response has the shape
//
//	{ "success": bool, "message": "...", "<key>": payload, "count": n }
//
// where message, the payload key and count are present only when set.
package httpjson

import (
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies accepted by Decode.
const MaxBodyBytes = 1 << 20

// InternalErrorMessage is the only detail a client sees for a 500.
const InternalErrorMessage = "Internal server error"

// BadBodyMessage is written when a request body cannot be decoded.
const BadBodyMessage = "Invalid request body"

// ErrBadBody is returned by Decode for an empty, oversized or malformed body.
var ErrBadBody = errors.New("invalid JSON body")

// Write encodes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("httpjson: marshal failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// Fail writes {success:false, message}.
func Fail(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]any{"success": false, "message": msg})
}

// InternalError logs err and writes a generic 500.
func InternalError(w http.ResponseWriter, log *zap.Logger, what string, err error) {
	log.Error(what, zap.Error(err))
	Fail(w, http.StatusInternalServerError, InternalErrorMessage)
}

// Envelope builds the success body for payload under key.
// An empty key omits the payload.
func Envelope(msg, key string, payload any) map[string]any {
	body := map[string]any{"success": true}
	if msg != "" {
		body["message"] = msg
	}
	if key != "" {
		body[key] = payload
	}
	return body
}

// FromResult writes a service result. Successful results carry Data under
// key, plus count for list results; failures carry only the message.
func FromResult[T any](w http.ResponseWriter, res result.Result[T], key string) {
	if !res.Success {
		Fail(w, res.StatusCode, res.Message)
		return
	}
	body := Envelope(res.Message, key, res.Data)
	if res.IsList {
		body["count"] = res.Count
	}
	Write(w, res.StatusCode, body)
}

// Decode reads a JSON body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrBadBody
		}
		return errors.Join(ErrBadBody, err)
	}
	return nil
}
