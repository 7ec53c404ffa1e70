package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/internal/utils"
	"github.com/seshego-consulting/portal_backend/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

type authService struct {
	BaseService
	credRepo portsrepo.CredentialRepository
}

// NewAuthService creates the credential service.
func NewAuthService(credRepo portsrepo.CredentialRepository) portssvc.AuthSvcFacade {
	return &authService{credRepo: credRepo}
}

// Register creates a local credential. The account cannot reach any portal
// feature until onboarding is approved, so no profile is written here.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Credential, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := domain.Credential{
		UID:          uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: &hash,
		DisplayName:  req.DisplayName,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    time.Now(),
	}

	if err := s.credRepo.SaveCredential(ctx, cred); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to save credential during registration")
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}

	s.LogInfo(ctx, "registered new account", "uid", cred.UID)
	return &cred, nil
}

// Authenticate verifies email+password. Unknown email and wrong password
// collapse into the same ErrUnauthorized so callers cannot probe accounts.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*domain.Credential, error) {
	cred, err := s.credRepo.FindCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "failed to look up credential during login")
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}

	if cred.PasswordHash == nil || !utils.CheckPasswordHash(password, *cred.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return cred, nil
}

// GetOrCreateOAuthCredential finds the credential for a validated external
// identity, creating one on first sign-in. Lookup is by provider details
// first, then by email so a local account can be linked to its Google
// identity.
func (s *authService) GetOrCreateOAuthCredential(ctx context.Context, provider domain.AuthProvider, providerUserID, email, displayName string) (*domain.Credential, error) {
	cred, err := s.credRepo.FindCredentialByProviderDetails(ctx, provider, providerUserID)
	if err == nil {
		return cred, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed provider credential lookup")
		return nil, fmt.Errorf("failed provider credential lookup: %w", err)
	}

	cred, err = s.credRepo.FindCredentialByEmail(ctx, email)
	if err == nil {
		return cred, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed email credential lookup")
		return nil, fmt.Errorf("failed email credential lookup: %w", err)
	}

	newCred := domain.Credential{
		UID:            uuid.NewString(),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		DisplayName:    displayName,
		AuthProvider:   provider,
		ProviderUserID: &providerUserID,
		CreatedAt:      time.Now(),
	}
	if err := s.credRepo.SaveCredential(ctx, newCred); err != nil {
		s.LogError(ctx, err, "failed to save oauth credential")
		return nil, fmt.Errorf("failed to save oauth credential: %w", err)
	}

	s.LogInfo(ctx, "created credential from external provider", "uid", newCred.UID, "provider", string(provider))
	return &newCred, nil
}

// GetCredentialByUID retrieves the identity record for a UID.
func (s *authService) GetCredentialByUID(ctx context.Context, uid string) (*domain.Credential, error) {
	cred, err := s.credRepo.FindCredentialByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load credential by uid", "uid", uid)
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	return cred, nil
}

// tokenService implements the TokenSvcFacade for issuing JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given UID.
func (s *tokenService) GenerateAccessToken(ctx context.Context, uid string) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(uid, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates the Google sign-in service.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for the OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	// 16 bytes -> 32 char hex string
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
