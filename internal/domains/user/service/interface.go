package service

import (
	"context"

	"github.com/google/uuid"

	"artplatform-backend/internal/domains/user/model"
)

// ServiceInterface defines auth business logic
type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	Refresh(ctx context.Context, req model.RefreshRequest) (*model.TokenResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}
