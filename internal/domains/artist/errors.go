package artist

import (
	"errors"
	"net/http"

	"artplatform-backend/internal/infrastructure/storage"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrBioTooLong     = errors.New("artist bio exceeds maximum length")

	// Wrapped around the storage error so the cause stays visible.
	ErrUploadFailed = errors.New("portrait upload failed")
)

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrArtistNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBioTooLong), errors.Is(err, storage.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
