package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	uid := uuid.NewString()
	expected := &domain.User{UserID: uid, Email: "owner@acme.test", Role: domain.RoleClient}

	suite.mockRepo.On("FindUserByID", ctx, uid).Return(expected, nil).Once()

	user, err := suite.service.GetUserByID(ctx, uid)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	uid := uuid.NewString()

	suite.mockRepo.On("FindUserByID", ctx, uid).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, uid)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	expected := []domain.User{{UserID: uuid.NewString()}, {UserID: uuid.NewString()}}

	suite.mockRepo.On("FindUsers", ctx, 50, 0).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, 50, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, users)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("FindUsers", ctx, 50, 0).Return(nil, assert.AnError).Once()

	users, err := suite.service.ListUsers(ctx, 50, 0)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, assert.AnError)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
