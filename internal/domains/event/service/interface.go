package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"artplatform-backend/internal/domains/event/model"
)

// ServiceInterface defines event business logic
type ServiceInterface interface {
	ListEvents(ctx context.Context, view model.View) ([]model.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*model.EventResponse, error)
	CreateEvent(ctx context.Context, req model.CreateEventRequest, image *model.ImageUpload) (*model.EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req model.UpdateEventRequest, image *model.ImageUpload) (*model.EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	Attend(ctx context.Context, id uuid.UUID) (int, error)
	ExportEvents(ctx context.Context) (*excelize.File, error)
}
