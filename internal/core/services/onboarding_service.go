package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/pkg/config"
)

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type onboardingService struct {
	BaseService
	cfg      *config.Config
	subRepo  portsrepo.SubmissionRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
	feed     *submissionFeed
}

// NewOnboardingService creates the onboarding workflow service.
func NewOnboardingService(cfg *config.Config, subRepo portsrepo.SubmissionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.OnboardingSvcFacade {
	return &onboardingService{
		cfg:      cfg,
		subRepo:  subRepo,
		userRepo: userRepo,
		feed:     newSubmissionFeed(),
	}
}

// SaveDraft persists partial form state without validation. A decided
// submission is returned unchanged; autosave must never reopen a decision.
func (s *onboardingService) SaveDraft(ctx context.Context, uid, email string, req dto.SaveSubmissionRequest) (*domain.OnboardingSubmission, error) {
	existing, err := s.findExisting(ctx, uid)
	if err != nil {
		return nil, err
	}

	if existing != nil && domain.NormalizeSubmissionStatus(string(existing.Status)).IsTerminal() {
		return existing, nil
	}

	sub := s.applyForm(existing, uid, email, req)
	if existing != nil && domain.NormalizeSubmissionStatus(string(existing.Status)).AwaitingReview() && existing.SubmittedAt != nil {
		// Edits after submit are saved but the submission stays in review.
		sub.Status = existing.Status
		sub.SubmittedAt = existing.SubmittedAt
	} else {
		sub.Status = domain.SubmissionDraft
	}

	if err := s.subRepo.UpsertSubmission(ctx, *sub); err != nil {
		s.LogError(ctx, err, "failed to save draft", "uid", uid)
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return sub, nil
}

// Submit validates the full form and moves the submission into review.
// A rejected submission may be corrected and submitted again; an approved
// one may not.
func (s *onboardingService) Submit(ctx context.Context, uid, email string, req dto.SaveSubmissionRequest) (*domain.OnboardingSubmission, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	existing, err := s.findExisting(ctx, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil && domain.NormalizeSubmissionStatus(string(existing.Status)) == domain.SubmissionApproved {
		return nil, apperrors.NewPreconditionFailedError("submission has already been approved")
	}

	now := time.Now()
	sub := s.applyForm(existing, uid, email, req)
	sub.Status = domain.SubmissionSubmitted
	sub.SubmittedAt = &now
	sub.RejectReason = ""
	sub.RejectedAt = nil

	if err := s.subRepo.UpsertSubmission(ctx, *sub); err != nil {
		s.LogError(ctx, err, "failed to submit onboarding form", "uid", uid)
		return nil, fmt.Errorf("failed to submit onboarding form: %w", err)
	}

	s.LogInfo(ctx, "onboarding submitted", "uid", uid, "company", sub.CompanyName)
	s.feed.publish(domain.SubmissionEvent{
		Type:         domain.SubmissionEventSubmitted,
		SubmissionID: sub.SubmissionID,
		CompanyName:  sub.CompanyName,
		Status:       sub.Status,
		At:           now,
	})
	return sub, nil
}

func (s *onboardingService) GetOwnSubmission(ctx context.Context, uid string) (*domain.OnboardingSubmission, error) {
	sub, err := s.subRepo.FindSubmissionByID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load own submission", "uid", uid)
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return sub, nil
}

// ListForReview returns one of the three review buckets, optionally filtered
// by a case-insensitive substring across the identifying fields.
func (s *onboardingService) ListForReview(ctx context.Context, status, search string, limit int) ([]domain.OnboardingSubmission, error) {
	subs, err := s.subRepo.FindSubmissions(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "failed to list submissions for review")
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	bucket := domain.NormalizeSubmissionStatus(status)
	needle := strings.ToLower(strings.TrimSpace(search))

	filtered := []domain.OnboardingSubmission{}
	for _, sub := range subs {
		got := domain.NormalizeSubmissionStatus(string(sub.Status))
		switch bucket {
		case domain.SubmissionApproved, domain.SubmissionRejected:
			if got != bucket {
				continue
			}
		default:
			// The pending view also includes drafts-in-name-only: records
			// with no recognisable status end up here after normalization.
			if !got.AwaitingReview() {
				continue
			}
		}
		if needle != "" && !submissionMatches(&sub, needle) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered, nil
}

// Approve flips the submission to approved, promotes it into a client
// profile and enqueues the approval email, all in one transaction.
func (s *onboardingService) Approve(ctx context.Context, submissionID, reviewerUID string) error {
	sub, err := s.subRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load submission for approval", "submission_id", submissionID)
		return fmt.Errorf("failed to load submission: %w", err)
	}
	if domain.NormalizeSubmissionStatus(string(sub.Status)) == domain.SubmissionApproved {
		return apperrors.NewPreconditionFailedError("submission has already been approved")
	}
	// A legacy row without an account uid or email cannot be promoted: the
	// profile would be keyed on "" and the mail addressed to nobody.
	if sub.UID == "" || sub.Email == "" {
		return apperrors.NewPreconditionFailedError("submission has no linked account uid or email")
	}

	now := time.Now()
	sub.ApprovedAt = &now
	sub.Status = domain.SubmissionApproved

	// A fresh companyId is minted here; the profile upsert keeps any
	// existing one, so re-approval cannot orphan provisioned employees.
	companyID := uuid.NewString()
	profile := domain.User{
		UserID:        sub.UID,
		Email:         firstNonEmpty(sub.Email, sub.ContactEmail),
		Role:          domain.RoleClient,
		CompanyID:     &companyID,
		CompanyName:   sub.CompanyName,
		ContactPerson: sub.ContactPerson,
		Address:       sub.Address(),
		VatOrReg:      sub.VatOrReg,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     reviewerUID,
			LastUpdatedAt: now,
			LastUpdatedBy: reviewerUID,
		},
	}

	mail := approvalEmail(s.cfg, sub)
	if err := s.subRepo.ApproveSubmission(ctx, *sub, profile, mail); err != nil {
		s.LogError(ctx, err, "failed to approve submission", "submission_id", submissionID)
		return err
	}

	s.LogInfo(ctx, "submission approved", "submission_id", submissionID, "reviewer", reviewerUID)
	s.feed.publish(domain.SubmissionEvent{
		Type:         domain.SubmissionEventApproved,
		SubmissionID: sub.SubmissionID,
		CompanyName:  sub.CompanyName,
		Status:       domain.SubmissionApproved,
		At:           now,
	})
	return nil
}

// Reject flips the submission to rejected and enqueues the rejection email.
// No profile is touched, so the submitter can correct and resubmit.
func (s *onboardingService) Reject(ctx context.Context, submissionID, reason, reviewerUID string) error {
	sub, err := s.subRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load submission for rejection", "submission_id", submissionID)
		return fmt.Errorf("failed to load submission: %w", err)
	}
	if domain.NormalizeSubmissionStatus(string(sub.Status)).IsTerminal() {
		return apperrors.NewPreconditionFailedError("submission has already been decided")
	}
	if sub.Email == "" {
		return apperrors.NewPreconditionFailedError("submission has no linked account email")
	}

	now := time.Now()
	mail := rejectionEmail(s.cfg, sub, reason)
	if err := s.subRepo.RejectSubmission(ctx, submissionID, now, reason, mail); err != nil {
		s.LogError(ctx, err, "failed to reject submission", "submission_id", submissionID)
		return err
	}

	s.LogInfo(ctx, "submission rejected", "submission_id", submissionID, "reviewer", reviewerUID)
	s.feed.publish(domain.SubmissionEvent{
		Type:         domain.SubmissionEventRejected,
		SubmissionID: sub.SubmissionID,
		CompanyName:  sub.CompanyName,
		Status:       domain.SubmissionRejected,
		At:           now,
	})
	return nil
}

// Subscribe registers a live review-feed subscriber.
func (s *onboardingService) Subscribe() (<-chan domain.SubmissionEvent, func()) {
	return s.feed.Subscribe()
}

func (s *onboardingService) findExisting(ctx context.Context, uid string) (*domain.OnboardingSubmission, error) {
	existing, err := s.subRepo.FindSubmissionByID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "failed to load existing submission", "uid", uid)
		return nil, fmt.Errorf("failed to load existing submission: %w", err)
	}
	return existing, nil
}

// applyForm overlays the incoming form onto the existing submission,
// preserving createdAt and decision timestamps.
func (s *onboardingService) applyForm(existing *domain.OnboardingSubmission, uid, email string, req dto.SaveSubmissionRequest) *domain.OnboardingSubmission {
	now := time.Now()
	sub := domain.OnboardingSubmission{
		SubmissionID: uid,
		UID:          uid,
		Email:        email,
		CreatedAt:    now,
	}
	if existing != nil {
		sub = *existing
		sub.Email = email
	}

	sub.CompanyName = strings.TrimSpace(req.CompanyName)
	sub.ContactPerson = strings.TrimSpace(req.ContactPerson)
	sub.ContactEmail = strings.TrimSpace(req.ContactEmail)
	sub.ContactPhone = strings.TrimSpace(req.ContactPhone)
	sub.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	sub.AddressLine2 = strings.TrimSpace(req.AddressLine2)
	sub.City = strings.TrimSpace(req.City)
	sub.Province = strings.TrimSpace(req.Province)
	sub.PostalCode = strings.TrimSpace(req.PostalCode)
	sub.VatOrReg = strings.TrimSpace(req.VatOrReg)
	sub.UpdatedAt = now
	return &sub
}

// validateSubmission enforces the required fields in form order, failing on
// the first problem so the frontend can focus the offending input.
func validateSubmission(req dto.SaveSubmissionRequest) error {
	required := []struct {
		value string
		label string
	}{
		{req.CompanyName, "companyName"},
		{req.ContactPerson, "contactPerson"},
		{req.ContactEmail, "contactEmail"},
		{req.AddressLine1, "addressLine1"},
		{req.City, "city"},
		{req.Province, "province"},
		{req.PostalCode, "postalCode"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is required: %w", field.label, apperrors.ErrValidation)
		}
	}
	if !emailShape.MatchString(strings.TrimSpace(req.ContactEmail)) {
		return fmt.Errorf("contactEmail is not a valid email address: %w", apperrors.ErrValidation)
	}
	return nil
}

func submissionMatches(sub *domain.OnboardingSubmission, needle string) bool {
	for _, field := range []string{sub.CompanyName, sub.ContactPerson, sub.ContactEmail, sub.Email, sub.ContactPhone} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
