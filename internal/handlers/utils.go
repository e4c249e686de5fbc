package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akolanti/DocChat/internal/adapter"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already out, nothing left to tell the client
		logRH.Error("Error encoding response", "error", err)
	}
}

func traceId(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

// validateContext writes a 503 and returns false when the request cannot be
// served.
func validateContext(w http.ResponseWriter, ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		logRH.WithTrace(ctx).Warn("context error", "error", err)
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Request cancelled")
		return false
	}
	if handlerInstance == nil {
		logRH.WithTrace(ctx).Error("Handlers used before InitJobHandler")
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

// writeSessionError maps session store failures onto status codes.
func writeSessionError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, chatModel.ErrSessionNotFound):
		WriteErrorResponse(w, http.StatusNotFound, id, "Session not found")
	case errors.Is(err, chatModel.ErrSessionBusy):
		WriteErrorResponse(w, http.StatusConflict, id, "A question is already being answered for this session")
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Internal error")
	}
}

// unreadableUpload replays a failed request body read as the upload stream.
type unreadableUpload struct {
	err error
}

func (u unreadableUpload) Read([]byte) (int, error) {
	return 0, u.err
}
