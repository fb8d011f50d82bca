package repository

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/artwork/model"
)

// RepositoryInterface defines data access for artworks
type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Artwork, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Artwork, error)
	Create(ctx context.Context, artwork *model.Artwork) (*model.Artwork, error)
	Update(ctx context.Context, artwork *model.Artwork) (*model.Artwork, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
