package service

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/artwork/model"
)

// ServiceInterface defines artwork business logic
type ServiceInterface interface {
	ListArtworks(ctx context.Context) ([]model.Artwork, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error)
	GetArtwork(ctx context.Context, id uuid.UUID) (*model.Artwork, error)
	CreateArtwork(ctx context.Context, req model.ArtworkRequest, image *model.ImageUpload) (*model.Artwork, error)
	UpdateArtwork(ctx context.Context, id uuid.UUID, req model.ArtworkRequest, image *model.ImageUpload) (*model.Artwork, error)
	DeleteArtwork(ctx context.Context, id uuid.UUID) error
}
