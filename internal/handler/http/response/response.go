package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope of every JSON body the API writes.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries a stable code and, for validation failures and
// record clashes, the offending fields.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
	codeEncodingFailure = "ENCODING_ERROR"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "status", statusCode, "error", err)
		_ = json.NewEncoder(w).Encode(Response{
			Error: &ErrorDetail{Code: codeEncodingFailure, Message: "Failed to encode response"},
		})
	}
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, Response{
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Success responses

func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created is used by every operation that inserts attendance rows.
func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error responses

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeError(w, http.StatusBadRequest, CodeBadRequest, message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeError(w, http.StatusUnprocessableEntity, CodeValidation, "Validation failed", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, CodeForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, CodeNotFound, message, nil)
}

// Conflict reports a clash on the one-record-per-employee-per-date key.
// details names the slot, e.g. {"date": "2025-01-13", "employee_id": "..."}.
func Conflict(w http.ResponseWriter, message string, details map[string]string) {
	writeError(w, http.StatusConflict, CodeConflict, message, details)
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, CodeInternal, message, nil)
}
