package domain

import (
	"strings"
	"time"
)

// SubmissionStatus is the canonical onboarding lifecycle:
// draft -> submitted -> approved | rejected.
// "pending" appears in data written by older portal versions and is treated
// as a synonym for the pending-review bucket on read.
type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionPending   SubmissionStatus = "pending" // legacy spelling of submitted
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionApproved  SubmissionStatus = "approved"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// NormalizeSubmissionStatus trims and lower-cases a raw status value.
// Empty and unknown values fall into the pending-review bucket, matching how
// the review list has always treated records with no status.
func NormalizeSubmissionStatus(raw string) SubmissionStatus {
	switch s := SubmissionStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case SubmissionDraft, SubmissionSubmitted, SubmissionApproved, SubmissionRejected:
		return s
	default:
		return SubmissionPending
	}
}

// IsTerminal reports whether the status may no longer be changed by
// autosave or submit.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// AwaitingReview reports whether the submission belongs in the admin
// pending view.
func (s SubmissionStatus) AwaitingReview() bool {
	return s == SubmissionPending || s == SubmissionSubmitted
}

// OnboardingSubmission is a prospective client's intake form. Exactly one
// exists per submitter: the submission ID is the submitter's UID.
type OnboardingSubmission struct {
	SubmissionID string `json:"id"` // = UID

	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone,omitempty"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2,omitempty"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	VatOrReg      string `json:"vatOrReg,omitempty"`

	UID   string `json:"uid"`
	Email string `json:"email"` // account email of the submitter

	Status       SubmissionStatus `json:"status"`
	RejectReason string           `json:"rejectReason,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
}

// Address joins the address fields the way the approval flow copies them
// onto the client profile.
func (s *OnboardingSubmission) Address() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{s.AddressLine1, s.AddressLine2, s.City, s.Province, s.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}
