package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/core/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/pkg/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OnboardingServiceTestSuite struct {
	suite.Suite
	mockSubRepo  *MockSubmissionRepository
	mockUserRepo *MockUserRepository
	service      portssvc.OnboardingSvcFacade
}

func (suite *OnboardingServiceTestSuite) SetupTest() {
	suite.mockSubRepo = new(MockSubmissionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		PortalName:      "Seshego Portal",
		FrontendBaseURL: "https://portal.example.test",
	}
	suite.service = services.NewOnboardingService(cfg, suite.mockSubRepo, suite.mockUserRepo)
}

func validForm() dto.SaveSubmissionRequest {
	return dto.SaveSubmissionRequest{
		CompanyName:   "Acme Mining",
		ContactPerson: "Thandi Nkosi",
		ContactEmail:  "thandi@acme.test",
		ContactPhone:  "+27 11 555 0100",
		AddressLine1:  "1 Main Road",
		City:          "Johannesburg",
		Province:      "Gauteng",
		PostalCode:    "2000",
	}
}

// --- SaveDraft ---

func (suite *OnboardingServiceTestSuite) TestSaveDraft_NewSubmission() {
	ctx := context.Background()
	uid := uuid.NewString()

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubRepo.On("UpsertSubmission", ctx, mock.MatchedBy(func(s domain.OnboardingSubmission) bool {
		return s.SubmissionID == uid && s.UID == uid && s.Status == domain.SubmissionDraft && s.SubmittedAt == nil
	})).Return(nil).Once()

	sub, err := suite.service.SaveDraft(ctx, uid, "owner@acme.test", dto.SaveSubmissionRequest{CompanyName: "Acme Mining"})

	suite.Require().NoError(err)
	suite.Equal(domain.SubmissionDraft, sub.Status)
	suite.Equal("Acme Mining", sub.CompanyName)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *OnboardingServiceTestSuite) TestSaveDraft_NeverReopensDecision() {
	ctx := context.Background()
	uid := uuid.NewString()
	approvedAt := time.Now().Add(-time.Hour)
	existing := &domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		CompanyName:  "Acme Mining",
		Status:       domain.SubmissionApproved,
		ApprovedAt:   &approvedAt,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()

	sub, err := suite.service.SaveDraft(ctx, uid, "owner@acme.test", dto.SaveSubmissionRequest{CompanyName: "Renamed Ltd"})

	suite.Require().NoError(err)
	suite.Equal(domain.SubmissionApproved, sub.Status)
	suite.Equal("Acme Mining", sub.CompanyName)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpsertSubmission", mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestSaveDraft_KeepsSubmittedStatus() {
	ctx := context.Background()
	uid := uuid.NewString()
	submittedAt := time.Now().Add(-time.Minute)
	existing := &domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		Status:       domain.SubmissionSubmitted,
		SubmittedAt:  &submittedAt,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()
	suite.mockSubRepo.On("UpsertSubmission", ctx, mock.MatchedBy(func(s domain.OnboardingSubmission) bool {
		return s.Status == domain.SubmissionSubmitted && s.SubmittedAt != nil && s.CompanyName == "Updated Ltd"
	})).Return(nil).Once()

	sub, err := suite.service.SaveDraft(ctx, uid, "owner@acme.test", dto.SaveSubmissionRequest{CompanyName: "Updated Ltd"})

	suite.Require().NoError(err)
	suite.Equal(domain.SubmissionSubmitted, sub.Status)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

// --- Submit ---

func (suite *OnboardingServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()
	uid := uuid.NewString()

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubRepo.On("UpsertSubmission", ctx, mock.MatchedBy(func(s domain.OnboardingSubmission) bool {
		return s.Status == domain.SubmissionSubmitted && s.SubmittedAt != nil && s.RejectReason == ""
	})).Return(nil).Once()

	events, cancel := suite.service.Subscribe()
	defer cancel()

	sub, err := suite.service.Submit(ctx, uid, "owner@acme.test", validForm())

	suite.Require().NoError(err)
	suite.Equal(domain.SubmissionSubmitted, sub.Status)
	suite.Require().NotNil(sub.SubmittedAt)

	select {
	case event := <-events:
		suite.Equal(domain.SubmissionEventSubmitted, event.Type)
		suite.Equal(uid, event.SubmissionID)
	case <-time.After(time.Second):
		suite.Fail("expected a feed event after submit")
	}
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *OnboardingServiceTestSuite) TestSubmit_MissingFieldFailsFirst() {
	ctx := context.Background()
	form := validForm()
	form.CompanyName = "  "
	form.City = ""

	sub, err := suite.service.Submit(ctx, uuid.NewString(), "owner@acme.test", form)

	suite.Require().Error(err)
	suite.Nil(sub)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "companyName")
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpsertSubmission", mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestSubmit_RejectsMalformedEmail() {
	ctx := context.Background()
	form := validForm()
	form.ContactEmail = "not-an-email"

	sub, err := suite.service.Submit(ctx, uuid.NewString(), "owner@acme.test", form)

	suite.Require().Error(err)
	suite.Nil(sub)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "contactEmail")
}

func (suite *OnboardingServiceTestSuite) TestSubmit_ApprovedCannotResubmit() {
	ctx := context.Background()
	uid := uuid.NewString()
	existing := &domain.OnboardingSubmission{SubmissionID: uid, UID: uid, Status: domain.SubmissionApproved}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()

	sub, err := suite.service.Submit(ctx, uid, "owner@acme.test", validForm())

	suite.Require().Error(err)
	suite.Nil(sub)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpsertSubmission", mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestSubmit_RejectedMayResubmit() {
	ctx := context.Background()
	uid := uuid.NewString()
	rejectedAt := time.Now().Add(-time.Hour)
	existing := &domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		Status:       domain.SubmissionRejected,
		RejectReason: "Missing VAT number",
		RejectedAt:   &rejectedAt,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()
	suite.mockSubRepo.On("UpsertSubmission", ctx, mock.MatchedBy(func(s domain.OnboardingSubmission) bool {
		return s.Status == domain.SubmissionSubmitted && s.RejectReason == "" && s.RejectedAt == nil
	})).Return(nil).Once()

	sub, err := suite.service.Submit(ctx, uid, "owner@acme.test", validForm())

	suite.Require().NoError(err)
	suite.Equal(domain.SubmissionSubmitted, sub.Status)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

// --- ListForReview ---

func (suite *OnboardingServiceTestSuite) TestListForReview_PendingBucketIncludesLegacyStatuses() {
	ctx := context.Background()
	subs := []domain.OnboardingSubmission{
		{SubmissionID: "a", CompanyName: "Acme Mining", Status: domain.SubmissionSubmitted},
		{SubmissionID: "b", CompanyName: "Beta Farms", Status: domain.SubmissionPending},
		{SubmissionID: "c", CompanyName: "Old Records", Status: ""},
		{SubmissionID: "d", CompanyName: "Done Deal", Status: domain.SubmissionApproved},
	}

	suite.mockSubRepo.On("FindSubmissions", ctx, 100).Return(subs, nil).Once()

	got, err := suite.service.ListForReview(ctx, "pending", "", 100)

	suite.Require().NoError(err)
	suite.Len(got, 3)
	for _, sub := range got {
		suite.NotEqual(domain.SubmissionApproved, sub.Status)
	}
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *OnboardingServiceTestSuite) TestListForReview_SearchIsCaseInsensitive() {
	ctx := context.Background()
	subs := []domain.OnboardingSubmission{
		{SubmissionID: "a", CompanyName: "Acme Mining", Status: domain.SubmissionSubmitted},
		{SubmissionID: "b", CompanyName: "Beta Farms", ContactPerson: "Anna Acker", Status: domain.SubmissionSubmitted},
		{SubmissionID: "c", CompanyName: "Gamma Logistics", Status: domain.SubmissionSubmitted},
	}

	suite.mockSubRepo.On("FindSubmissions", ctx, 100).Return(subs, nil).Once()

	got, err := suite.service.ListForReview(ctx, "pending", "ACME", 100)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal("a", got[0].SubmissionID)
}

func (suite *OnboardingServiceTestSuite) TestListForReview_RejectedBucket() {
	ctx := context.Background()
	subs := []domain.OnboardingSubmission{
		{SubmissionID: "a", Status: domain.SubmissionSubmitted},
		{SubmissionID: "b", Status: domain.SubmissionRejected},
	}

	suite.mockSubRepo.On("FindSubmissions", ctx, 100).Return(subs, nil).Once()

	got, err := suite.service.ListForReview(ctx, "rejected", "", 100)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal("b", got[0].SubmissionID)
}

// --- Approve / Reject ---

func (suite *OnboardingServiceTestSuite) TestApprove_PromotesProfileAndQueuesMail() {
	ctx := context.Background()
	uid := uuid.NewString()
	reviewerUID := uuid.NewString()
	existing := &domain.OnboardingSubmission{
		SubmissionID:  uid,
		UID:           uid,
		Email:         "owner@acme.test",
		CompanyName:   "Acme Mining",
		ContactPerson: "Thandi Nkosi",
		AddressLine1:  "1 Main Road",
		City:          "Johannesburg",
		Province:      "Gauteng",
		PostalCode:    "2000",
		Status:        domain.SubmissionSubmitted,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()
	suite.mockSubRepo.On("ApproveSubmission", ctx,
		mock.MatchedBy(func(s domain.OnboardingSubmission) bool {
			return s.Status == domain.SubmissionApproved && s.ApprovedAt != nil
		}),
		mock.MatchedBy(func(p domain.User) bool {
			return p.UserID == uid && p.Role == domain.RoleClient && p.IsActive &&
				p.CompanyID != nil && *p.CompanyID != "" &&
				p.CreatedBy == reviewerUID &&
				strings.Contains(p.Address, "Johannesburg")
		}),
		mock.MatchedBy(func(m domain.Notification) bool {
			return len(m.To) == 1 && m.To[0] == "owner@acme.test" &&
				strings.Contains(m.Subject, "Access Approved")
		}),
	).Return(nil).Once()

	events, cancel := suite.service.Subscribe()
	defer cancel()

	err := suite.service.Approve(ctx, uid, reviewerUID)

	suite.Require().NoError(err)
	select {
	case event := <-events:
		suite.Equal(domain.SubmissionEventApproved, event.Type)
	case <-time.After(time.Second):
		suite.Fail("expected a feed event after approval")
	}
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *OnboardingServiceTestSuite) TestApprove_AlreadyApproved() {
	ctx := context.Background()
	uid := uuid.NewString()
	existing := &domain.OnboardingSubmission{SubmissionID: uid, UID: uid, Status: domain.SubmissionApproved}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()

	err := suite.service.Approve(ctx, uid, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "ApproveSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestApprove_LegacyRowWithoutAccountIdentity() {
	ctx := context.Background()
	// Old records imported before account linking carry no uid/email.
	existing := &domain.OnboardingSubmission{
		SubmissionID: "legacy-row",
		CompanyName:  "Acme Mining",
		Status:       domain.SubmissionSubmitted,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, "legacy-row").Return(existing, nil).Once()

	err := suite.service.Approve(ctx, "legacy-row", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "ApproveSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestApprove_MissingEmailOnly() {
	ctx := context.Background()
	uid := uuid.NewString()
	existing := &domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		CompanyName:  "Acme Mining",
		Status:       domain.SubmissionSubmitted,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()

	err := suite.service.Approve(ctx, uid, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "ApproveSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestApprove_NotFound() {
	ctx := context.Background()
	uid := uuid.NewString()

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Approve(ctx, uid, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OnboardingServiceTestSuite) TestReject_QueuesMailWithReason() {
	ctx := context.Background()
	uid := uuid.NewString()
	reason := "Missing VAT number"
	existing := &domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		Email:        "owner@acme.test",
		CompanyName:  "Acme Mining",
		Status:       domain.SubmissionSubmitted,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()
	suite.mockSubRepo.On("RejectSubmission", ctx, uid, mock.AnythingOfType("time.Time"), reason,
		mock.MatchedBy(func(m domain.Notification) bool {
			return strings.Contains(m.Subject, "Registration Update") &&
				strings.Contains(m.HTML, reason)
		}),
	).Return(nil).Once()

	err := suite.service.Reject(ctx, uid, reason, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *OnboardingServiceTestSuite) TestReject_MissingEmail() {
	ctx := context.Background()
	uid := uuid.NewString()
	existing := &domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		CompanyName:  "Acme Mining",
		Status:       domain.SubmissionSubmitted,
	}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()

	err := suite.service.Reject(ctx, uid, "Missing VAT number", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "RejectSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestReject_AlreadyDecided() {
	ctx := context.Background()
	uid := uuid.NewString()
	existing := &domain.OnboardingSubmission{SubmissionID: uid, UID: uid, Status: domain.SubmissionRejected}

	suite.mockSubRepo.On("FindSubmissionByID", ctx, uid).Return(existing, nil).Once()

	err := suite.service.Reject(ctx, uid, "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "RejectSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardingService(t *testing.T) {
	suite.Run(t, new(OnboardingServiceTestSuite))
}
