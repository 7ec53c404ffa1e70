package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/core/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/internal/utils"
	"github.com/seshego-consulting/portal_backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockCredRepo *MockCredentialRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockCredRepo = new(MockCredentialRepository)
	suite.service = services.NewAuthService(suite.mockCredRepo)
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "Owner@Acme.Test", Password: "s3cret-pass", DisplayName: "Thandi Nkosi"}

	suite.mockCredRepo.On("SaveCredential", ctx, mock.MatchedBy(func(c domain.Credential) bool {
		return c.Email == "owner@acme.test" &&
			c.AuthProvider == domain.ProviderLocal &&
			c.PasswordHash != nil && utils.CheckPasswordHash(req.Password, *c.PasswordHash)
	})).Return(nil).Once()

	cred, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(cred.UID)
	suite.Equal("owner@acme.test", cred.Email)
	suite.mockCredRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "owner@acme.test", Password: "s3cret-pass", DisplayName: "Thandi Nkosi"}

	suite.mockCredRepo.On("SaveCredential", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	cred, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	password := "s3cret-pass"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	stored := &domain.Credential{UID: uuid.NewString(), Email: "owner@acme.test", PasswordHash: &hash, AuthProvider: domain.ProviderLocal}

	suite.mockCredRepo.On("FindCredentialByEmail", ctx, "owner@acme.test").Return(stored, nil).Once()

	cred, err := suite.service.Authenticate(ctx, "owner@acme.test", password)

	suite.Require().NoError(err)
	suite.Equal(stored.UID, cred.UID)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the-right-one")
	suite.Require().NoError(err)
	stored := &domain.Credential{UID: uuid.NewString(), Email: "owner@acme.test", PasswordHash: &hash}

	suite.mockCredRepo.On("FindCredentialByEmail", ctx, "owner@acme.test").Return(stored, nil).Once()

	cred, err := suite.service.Authenticate(ctx, "owner@acme.test", "the-wrong-one")

	suite.Require().Error(err)
	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockCredRepo.On("FindCredentialByEmail", ctx, "nobody@acme.test").Return(nil, apperrors.ErrNotFound).Once()

	cred, err := suite.service.Authenticate(ctx, "nobody@acme.test", "whatever")

	suite.Require().Error(err)
	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_OAuthOnlyCredential() {
	ctx := context.Background()
	stored := &domain.Credential{UID: uuid.NewString(), Email: "owner@acme.test", AuthProvider: domain.ProviderGoogle}

	suite.mockCredRepo.On("FindCredentialByEmail", ctx, "owner@acme.test").Return(stored, nil).Once()

	cred, err := suite.service.Authenticate(ctx, "owner@acme.test", "anything")

	suite.Require().Error(err)
	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestGetOrCreateOAuthCredential_ExistingByProvider() {
	ctx := context.Background()
	providerUserID := "google-sub-123"
	stored := &domain.Credential{UID: uuid.NewString(), Email: "owner@acme.test", AuthProvider: domain.ProviderGoogle}

	suite.mockCredRepo.On("FindCredentialByProviderDetails", ctx, domain.ProviderGoogle, providerUserID).Return(stored, nil).Once()

	cred, err := suite.service.GetOrCreateOAuthCredential(ctx, domain.ProviderGoogle, providerUserID, "owner@acme.test", "Thandi Nkosi")

	suite.Require().NoError(err)
	suite.Equal(stored, cred)
	suite.mockCredRepo.AssertNotCalled(suite.T(), "SaveCredential", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestGetOrCreateOAuthCredential_LinksByEmail() {
	ctx := context.Background()
	providerUserID := "google-sub-123"
	stored := &domain.Credential{UID: uuid.NewString(), Email: "owner@acme.test", AuthProvider: domain.ProviderLocal}

	suite.mockCredRepo.On("FindCredentialByProviderDetails", ctx, domain.ProviderGoogle, providerUserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCredRepo.On("FindCredentialByEmail", ctx, "owner@acme.test").Return(stored, nil).Once()

	cred, err := suite.service.GetOrCreateOAuthCredential(ctx, domain.ProviderGoogle, providerUserID, "owner@acme.test", "Thandi Nkosi")

	suite.Require().NoError(err)
	suite.Equal(stored, cred)
}

func (suite *AuthServiceTestSuite) TestGetOrCreateOAuthCredential_CreatesOnFirstSignIn() {
	ctx := context.Background()
	providerUserID := "google-sub-123"

	suite.mockCredRepo.On("FindCredentialByProviderDetails", ctx, domain.ProviderGoogle, providerUserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCredRepo.On("FindCredentialByEmail", ctx, "owner@acme.test").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCredRepo.On("SaveCredential", ctx, mock.MatchedBy(func(c domain.Credential) bool {
		return c.AuthProvider == domain.ProviderGoogle &&
			c.ProviderUserID != nil && *c.ProviderUserID == providerUserID &&
			c.PasswordHash == nil
	})).Return(nil).Once()

	cred, err := suite.service.GetOrCreateOAuthCredential(ctx, domain.ProviderGoogle, providerUserID, "owner@acme.test", "Thandi Nkosi")

	suite.Require().NoError(err)
	suite.NotEmpty(cred.UID)
	suite.mockCredRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_RepoError() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "owner@acme.test", Password: "s3cret-pass", DisplayName: "Thandi Nkosi"}

	suite.mockCredRepo.On("SaveCredential", ctx, mock.Anything).Return(assert.AnError).Once()

	cred, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(cred)
	suite.ErrorIs(err, assert.AnError)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestGoogleOAuthService_LoginURLCarriesState(t *testing.T) {
	svc := services.NewGoogleOAuthService(&config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "https://portal.example.test/auth/callback",
	})

	state, err := svc.GenerateStateString(context.Background())
	assert.NoError(t, err)
	assert.Len(t, state, 32)

	otherState, err := svc.GenerateStateString(context.Background())
	assert.NoError(t, err)
	assert.NotEqual(t, state, otherState)

	url := svc.GetGoogleLoginURL(context.Background(), state)
	assert.Contains(t, url, "state="+state)
	assert.Contains(t, url, "client_id=client-id")
}
