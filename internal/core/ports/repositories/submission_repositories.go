package repositories

import (
	"context"
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// SubmissionReader defines read operations for onboarding submissions.
type SubmissionReader interface {
	// FindSubmissionByID retrieves a submission by its ID (the submitter UID).
	FindSubmissionByID(ctx context.Context, submissionID string) (*domain.OnboardingSubmission, error)

	// FindSubmissions retrieves submissions newest first, capped at limit.
	FindSubmissions(ctx context.Context, limit int) ([]domain.OnboardingSubmission, error)
}

// SubmissionWriter defines write operations for onboarding submissions.
type SubmissionWriter interface {
	// UpsertSubmission merge-writes a submission keyed by the submitter UID,
	// preserving the original createdAt on conflict.
	UpsertSubmission(ctx context.Context, sub domain.OnboardingSubmission) error
}

// SubmissionReviewer executes the review decisions. Both methods run their
// writes inside a single database transaction so a mid-sequence failure
// cannot leave a submission approved without its profile or notification.
type SubmissionReviewer interface {
	// ApproveSubmission marks the submission approved, merge-upserts the
	// client profile and enqueues the approval notification, atomically.
	ApproveSubmission(ctx context.Context, sub domain.OnboardingSubmission, profile domain.User, mail domain.Notification) error

	// RejectSubmission marks the submission rejected with an optional reason
	// and enqueues the rejection notification, atomically.
	RejectSubmission(ctx context.Context, submissionID string, rejectedAt time.Time, reason string, mail domain.Notification) error
}

// SubmissionRepositoryFacade combines all submission repository interfaces.
type SubmissionRepositoryFacade interface {
	SubmissionReader
	SubmissionWriter
	SubmissionReviewer
}
