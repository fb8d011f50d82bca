package service

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/artist/model"
)

// ServiceInterface defines artist business logic
type ServiceInterface interface {
	ListArtists(ctx context.Context, search string) ([]model.Artist, error)
	GetArtist(ctx context.Context, id uuid.UUID) (*model.Artist, error)
	CreateArtist(ctx context.Context, req model.ArtistRequest, portrait *model.ImageUpload) (*model.Artist, error)
	UpdateArtist(ctx context.Context, id uuid.UUID, req model.ArtistRequest, portrait *model.ImageUpload) (*model.Artist, error)
	DeleteArtist(ctx context.Context, id uuid.UUID) error
}
