package artwork

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"artplatform-backend/internal/infrastructure/storage"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", ErrArtworkNotFound, http.StatusNotFound},
		{"missing price", ErrPriceRequired, http.StatusBadRequest},
		{"unknown artist", ErrUnknownArtist, http.StatusBadRequest},
		{"rejected image payload", fmt.Errorf("%w: not a decodable image", storage.ErrInvalidImage), http.StatusBadRequest},
		{"upload failure", fmt.Errorf("%w: bucket unavailable", ErrUploadFailed), http.StatusBadGateway},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToHTTPStatus(tt.err))
		})
	}
}
