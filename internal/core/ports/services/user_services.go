package services

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// UserReaderSvc defines read operations for user profiles.
type UserReaderSvc interface {
	// GetUserByID retrieves a profile by UID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of profiles.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserSvcFacade combines all user-profile service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
}
