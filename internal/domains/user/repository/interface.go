package repository

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/user/model"
)

// RepositoryInterface defines data access for users
type RepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
