// Package httpresponse writes the JSON bodies shared by every controller.
package httpresponse

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "techassist/internal/errors"
	"techassist/internal/infrastructure/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func JSON(w http.ResponseWriter, log *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func ValidationError(w http.ResponseWriter, log *zap.Logger, message string, details ...apperrors.ValidationDetail) {
	if details == nil {
		details = []apperrors.ValidationDetail{}
	}
	JSON(w, log, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

// Error maps err to a status code. Validation, not-found and conflict errors
// carry their own message; anything else is logged and reported as
// "error <action>" without the underlying detail.
func Error(w http.ResponseWriter, r *http.Request, fallback *zap.Logger, action string, err error) {
	log := logger.FromContext(r.Context(), fallback)

	if ve, ok := apperrors.IsValidationError(err); ok {
		ValidationError(w, log, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		JSON(w, log, http.StatusNotFound, ErrorResponse{Error: "NOT_FOUND", Message: nfe.Message})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		JSON(w, log, http.StatusConflict, ErrorResponse{Error: "CONFLICT", Message: ce.Message})
		return
	}

	log.Error("request failed", zap.String("action", action), zap.Error(err))
	JSON(w, log, http.StatusInternalServerError, ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "error " + action,
	})
}

// DecodeJSON reads the request body into dst and writes a validation error
// when it is not valid JSON. It reports whether decoding succeeded.
func DecodeJSON(w http.ResponseWriter, r *http.Request, fallback *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log := logger.FromContext(r.Context(), fallback)
		log.Warn("invalid JSON body", zap.Error(err))
		ValidationError(w, log, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

// PathID parses the "id" URL parameter. On failure it writes a validation
// error and returns false.
func PathID(w http.ResponseWriter, r *http.Request, fallback *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		ValidationError(w, logger.FromContext(r.Context(), fallback), "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}
