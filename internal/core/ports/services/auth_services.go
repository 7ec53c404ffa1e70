package services

import (
	"context"
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade manages identity credentials. Profiles are a separate
// concern: a credential exists from registration, a profile only after
// approval or provisioning.
type AuthSvcFacade interface {
	// Register creates a local credential. Returns apperrors.ErrDuplicate
	// when the email already has an account.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Credential, error)

	// Authenticate verifies email+password against the stored hash.
	// Returns apperrors.ErrUnauthorized on mismatch or unknown email.
	Authenticate(ctx context.Context, email, password string) (*domain.Credential, error)

	// GetOrCreateOAuthCredential finds or creates a credential for a
	// validated external-provider identity.
	GetOrCreateOAuthCredential(ctx context.Context, provider domain.AuthProvider, providerUserID, email, displayName string) (*domain.Credential, error)

	// GetCredentialByUID retrieves the identity record for a UID. Needed by
	// flows that run before a profile exists, such as onboarding.
	GetCredentialByUID(ctx context.Context, uid string) (*domain.Credential, error)
}

// TokenSvcFacade issues application JWTs.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, uid string) (string, time.Time, error)
}

// GoogleOAuthSvcFacade wraps the Google side of the sign-in code exchange.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates the CSRF state token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the consent-screen URL carrying the state.
	GetGoogleLoginURL(ctx context.Context, state string) string

	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
