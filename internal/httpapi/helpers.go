package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nhle/geodev/internal/project"
	"github.com/nhle/geodev/internal/schema"
	"github.com/nhle/geodev/internal/task"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// requestError is a client error that is not a field validation failure.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

// decodeJSON reads a single JSON value into v. Unknown fields are ignored.
// Type mismatches and a missing body are reported as validation errors;
// syntax errors as a bad request.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return schema.NewFieldError(field, "must be a "+jsonKind(typeErr.Type.Kind().String()))
		case errors.As(err, &maxErr):
			return &requestError{status: http.StatusRequestEntityTooLarge, msg: "payload too large"}
		case errors.Is(err, io.EOF):
			return schema.NewFieldError("body", "field required")
		default:
			return &requestError{status: http.StatusBadRequest, msg: "invalid JSON: " + err.Error()}
		}
	}
	if dec.More() {
		return &requestError{status: http.StatusBadRequest, msg: "invalid JSON: multiple JSON values"}
	}
	return nil
}

func jsonKind(goKind string) string {
	switch goKind {
	case "struct", "map":
		return "object"
	case "slice", "array":
		return "list"
	case "int", "int64", "int32":
		return "integer"
	default:
		return goKind
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

type errorBody struct {
	Detail string              `json:"detail"`
	Errors []schema.FieldError `json:"errors,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Detail: msg})
}

// writeServiceError maps an error from decoding or a service call onto a
// response. Anything unrecognized is logged and reported as internal.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *schema.ValidationError
	var rerr *requestError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Detail: "validation failed",
			Errors: verr.Fields,
		})
	case errors.As(err, &rerr):
		writeError(w, rerr.status, rerr.msg)
	case errors.Is(err, project.ErrNotFound), errors.Is(err, task.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.WarnContext(r.Context(), "request timed out",
			"rid", RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"rid", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
