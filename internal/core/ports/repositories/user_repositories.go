package repositories

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// UserReader defines read operations for user profiles.
type UserReader interface {
	// FindUserByID retrieves a profile by UID. Returns apperrors.ErrNotFound
	// when no profile exists (registered but not yet approved).
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of profiles, newest first.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user profiles.
type UserWriter interface {
	// UpsertUser merge-writes a profile keyed by UID. Merge semantics: fields
	// left empty on the incoming record do not clobber existing values.
	UpsertUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// CredentialRepository defines persistence for identity credentials.
type CredentialRepository interface {
	// SaveCredential persists a new credential. Returns apperrors.ErrDuplicate
	// when the email already has an account.
	SaveCredential(ctx context.Context, cred domain.Credential) error

	FindCredentialByUID(ctx context.Context, uid string) (*domain.Credential, error)
	FindCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error)

	// FindCredentialByProviderDetails looks up an external-provider credential.
	FindCredentialByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Credential, error)
}
