package handlers

import (
	"errors"
	"net/http"

	"user-profile-api/internal/models"
	"user-profile-api/internal/repositories"
)

// ErrorResponse is the normalized error body. Every error carries a
// top-level error string; validation failures add the violated fields.
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []models.FieldViolation `json:"details,omitempty"`
}

// Messages for responses that carry no record payload
const (
	msgUserCreated = "User created successfully"
	msgUserUpdated = "User updated successfully"
	msgUserDeleted = "User deleted successfully"
)

// StatusForError maps the error taxonomy onto HTTP status codes.
// Anything unclassified is an internal error.
func StatusForError(err error) int {
	var vErr *models.ViolationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case repositories.IsNotFound(err):
		return http.StatusNotFound
	case repositories.IsDuplicate(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody builds the response body for an error. Internal failures
// get a generic description, never the underlying error text.
func ErrorBody(err error) ErrorResponse {
	var vErr *models.ViolationError
	switch {
	case errors.As(err, &vErr):
		return ErrorResponse{Error: "Validation failed", Details: vErr.Violations}
	case repositories.IsNotFound(err):
		return ErrorResponse{Error: "User not found"}
	case repositories.IsDuplicate(err):
		return ErrorResponse{Error: "User already exists"}
	default:
		return ErrorResponse{Error: "Internal server error"}
	}
}
