package repository

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/artist/model"
)

// RepositoryInterface defines data access for artists
type RepositoryInterface interface {
	List(ctx context.Context, search string) ([]model.Artist, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Artist, error)
	Create(ctx context.Context, artist *model.Artist) (*model.Artist, error)
	Update(ctx context.Context, artist *model.Artist) (*model.Artist, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
