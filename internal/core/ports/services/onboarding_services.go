package services

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	"github.com/seshego-consulting/portal_backend/internal/dto"
)

// OnboardingSubmitterSvc is the submitter-facing half of the workflow.
type OnboardingSubmitterSvc interface {
	// SaveDraft opportunistically persists partial form state. It never
	// validates, never notifies, and never regresses a submitted or
	// decided submission.
	SaveDraft(ctx context.Context, uid, email string, req dto.SaveSubmissionRequest) (*domain.OnboardingSubmission, error)

	// Submit validates all required fields and advances the submission to
	// submitted, stamping submittedAt. The first missing or malformed field
	// aborts with apperrors.ErrValidation and nothing is persisted.
	Submit(ctx context.Context, uid, email string, req dto.SaveSubmissionRequest) (*domain.OnboardingSubmission, error)

	// GetOwnSubmission returns the caller's submission for form pre-fill.
	GetOwnSubmission(ctx context.Context, uid string) (*domain.OnboardingSubmission, error)
}

// OnboardingReviewerSvc is the admin-facing half of the workflow.
type OnboardingReviewerSvc interface {
	// ListForReview returns one of the three disjoint review views
	// (pending, approved, rejected) with an optional substring search
	// across company, contact, email and phone fields.
	ListForReview(ctx context.Context, status, search string, limit int) ([]domain.OnboardingSubmission, error)

	// Approve transitions the submission to approved, creates/merges the
	// client profile and enqueues the approval notification, atomically.
	Approve(ctx context.Context, submissionID, reviewerUID string) error

	// Reject transitions the submission to rejected with an optional reason
	// and enqueues the rejection notification. Never touches profiles.
	Reject(ctx context.Context, submissionID, reason, reviewerUID string) error
}

// OnboardingFeedSvc lets review sessions observe submission changes live.
type OnboardingFeedSvc interface {
	// Subscribe registers a feed subscriber. The returned cancel func must
	// be called when the subscriber goes away.
	Subscribe() (<-chan domain.SubmissionEvent, func())
}

// OnboardingSvcFacade combines the full workflow engine surface.
type OnboardingSvcFacade interface {
	OnboardingSubmitterSvc
	OnboardingReviewerSvc
	OnboardingFeedSvc
}
