package repository

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/event/model"
)

// RepositoryInterface defines data access for events
type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementAttendees(ctx context.Context, id uuid.UUID) (int, error)
}
