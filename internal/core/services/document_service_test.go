package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/core/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo  *MockDocumentRepository
	mockUserRepo *MockUserRepository
	mockFiles    *MockFileStorage
	service      portssvc.DocumentSvcFacade
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockFiles = new(MockFileStorage)
	suite.service = services.NewDocumentService(suite.mockDocRepo, suite.mockUserRepo, suite.mockFiles)
}

func assignRequest(targetUID string) dto.AssignDocumentRequest {
	return dto.AssignDocumentRequest{
		Title:        "Service Agreement",
		TargetUserID: targetUID,
		FileName:     "service agreement final.pdf",
		ContentType:  "application/pdf",
		Payload:      []byte("%PDF-1.4 stub"),
		UploadedBy:   "admin@seshego.test",
	}
}

func (suite *DocumentServiceTestSuite) TestAssign_ToClient() {
	ctx := context.Background()
	targetUID := uuid.NewString()
	target := &domain.User{UserID: targetUID, Email: "owner@acme.test", Role: domain.RoleClient, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, targetUID).Return(target, nil).Once()
	suite.mockFiles.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "documents/"+targetUID+"/") &&
			strings.HasSuffix(key, "_service_agreement_final.pdf")
	}), "application/pdf", mock.Anything).Return("https://files.example.test/doc.pdf", nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(d domain.Document) bool {
		return d.AssignedRole == domain.RoleClient &&
			d.ClientID != nil && *d.ClientID == targetUID &&
			d.EmployeeID == nil &&
			d.AssignedToID == targetUID && d.AssignedToEmail == "owner@acme.test" &&
			d.Status == "pending" && d.FileURL == "https://files.example.test/doc.pdf"
	})).Return(nil).Once()

	doc, err := suite.service.Assign(ctx, assignRequest(targetUID))

	suite.Require().NoError(err)
	suite.Equal(domain.RoleClient, doc.AssignedRole)
	suite.Nil(doc.EmployeeEmail)
	suite.mockDocRepo.AssertExpectations(suite.T())
	suite.mockFiles.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestAssign_ToEmployeeDefaultsActive() {
	ctx := context.Background()
	targetUID := uuid.NewString()
	target := &domain.User{UserID: targetUID, Email: "sipho@acme.test", Role: domain.RoleEmployee, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, targetUID).Return(target, nil).Once()
	suite.mockFiles.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("https://files.example.test/doc.pdf", nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(d domain.Document) bool {
		return d.AssignedRole == domain.RoleEmployee &&
			d.EmployeeID != nil && *d.EmployeeID == targetUID &&
			d.ClientID == nil && d.Status == "active"
	})).Return(nil).Once()

	doc, err := suite.service.Assign(ctx, assignRequest(targetUID))

	suite.Require().NoError(err)
	suite.Equal("active", doc.Status)
}

func (suite *DocumentServiceTestSuite) TestAssign_StatusOutsideRoleVocabulary() {
	ctx := context.Background()
	targetUID := uuid.NewString()
	target := &domain.User{UserID: targetUID, Email: "sipho@acme.test", Role: domain.RoleEmployee, IsActive: true}
	req := assignRequest(targetUID)
	req.Status = "signed" // client vocabulary, not employee

	suite.mockUserRepo.On("FindUserByID", ctx, targetUID).Return(target, nil).Once()

	doc, err := suite.service.Assign(ctx, req)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFiles.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestAssign_AdminTargetRejected() {
	ctx := context.Background()
	targetUID := uuid.NewString()
	target := &domain.User{UserID: targetUID, Email: "admin@seshego.test", Role: domain.RoleAdmin, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, targetUID).Return(target, nil).Once()

	doc, err := suite.service.Assign(ctx, assignRequest(targetUID))

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestAssign_TargetNotFound() {
	ctx := context.Background()
	targetUID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, targetUID).Return(nil, apperrors.ErrNotFound).Once()

	doc, err := suite.service.Assign(ctx, assignRequest(targetUID))

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestAssign_NoRecordWhenUploadFails() {
	ctx := context.Background()
	targetUID := uuid.NewString()
	target := &domain.User{UserID: targetUID, Email: "owner@acme.test", Role: domain.RoleClient, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, targetUID).Return(target, nil).Once()
	suite.mockFiles.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError).Once()

	doc, err := suite.service.Assign(ctx, assignRequest(targetUID))

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestListForUser_UIDHit() {
	ctx := context.Background()
	uid := uuid.NewString()
	expected := []domain.Document{{DocumentID: uuid.NewString(), AssignedToID: uid}}

	suite.mockDocRepo.On("FindDocumentsByAssignedID", ctx, uid).Return(expected, nil).Once()

	docs, err := suite.service.ListForUser(ctx, uid, "owner@acme.test")

	suite.Require().NoError(err)
	suite.Equal(expected, docs)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindDocumentsByAssignedEmail", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestListForUser_EmailFallback() {
	ctx := context.Background()
	uid := uuid.NewString()
	email := "owner@acme.test"
	expected := []domain.Document{{DocumentID: uuid.NewString(), AssignedToEmail: email}}

	suite.mockDocRepo.On("FindDocumentsByAssignedID", ctx, uid).Return([]domain.Document{}, nil).Once()
	suite.mockDocRepo.On("FindDocumentsByAssignedEmail", ctx, email).Return(expected, nil).Once()

	docs, err := suite.service.ListForUser(ctx, uid, email)

	suite.Require().NoError(err)
	suite.Equal(expected, docs)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpdateStatus_WithinRoleVocabulary() {
	ctx := context.Background()
	docID := uuid.NewString()
	doc := &domain.Document{DocumentID: docID, AssignedRole: domain.RoleClient, Status: "pending"}

	suite.mockDocRepo.On("FindDocumentByID", ctx, docID).Return(doc, nil).Once()
	suite.mockDocRepo.On("UpdateDocumentStatus", ctx, docID, "signed").Return(nil).Once()

	err := suite.service.UpdateStatus(ctx, docID, "Signed")

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpdateStatus_OutsideRoleVocabulary() {
	ctx := context.Background()
	docID := uuid.NewString()
	doc := &domain.Document{DocumentID: docID, AssignedRole: domain.RoleEmployee, Status: "active"}

	suite.mockDocRepo.On("FindDocumentByID", ctx, docID).Return(doc, nil).Once()

	err := suite.service.UpdateStatus(ctx, docID, "signed")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
