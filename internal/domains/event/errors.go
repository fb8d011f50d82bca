package event

import (
	"errors"
	"net/http"

	"artplatform-backend/internal/infrastructure/storage"
)

var (
	// Validation errors (local, never reach the database)
	ErrNameRequired     = errors.New("event name is required")
	ErrLocationRequired = errors.New("event location is required")
	ErrStartRequired    = errors.New("event start date is required")
	ErrEndBeforeStart   = errors.New("event end date cannot be earlier than its start date")
	ErrDescriptionLong  = errors.New("event description exceeds maximum length")

	// Business rule errors
	ErrEventNotFound = errors.New("event not found")

	// Collaborator errors. Wrapped around the storage error so the cause
	// stays visible in the response body.
	ErrUploadFailed = errors.New("image upload failed")
)

// ToHTTPStatus maps domain errors to HTTP status codes. Upload failures
// are 502 (the object store misbehaved, not us); rejected image payloads
// are the client's 400.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrLocationRequired),
		errors.Is(err, ErrStartRequired),
		errors.Is(err, ErrEndBeforeStart),
		errors.Is(err, ErrDescriptionLong),
		errors.Is(err, storage.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
