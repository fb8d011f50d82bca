package artwork

import (
	"errors"
	"net/http"

	"artplatform-backend/internal/infrastructure/storage"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrPriceRequired   = errors.New("price is required for artworks on sale")
	ErrUnknownArtist   = errors.New("referenced artist does not exist")

	// Wrapped around the storage error so the cause stays visible.
	ErrUploadFailed = errors.New("artwork image upload failed")
)

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrArtworkNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPriceRequired),
		errors.Is(err, ErrUnknownArtist),
		errors.Is(err, storage.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
