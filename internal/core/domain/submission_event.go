package domain

import "time"

// SubmissionEventType labels a change to an onboarding submission.
type SubmissionEventType string

const (
	SubmissionEventSubmitted SubmissionEventType = "submitted"
	SubmissionEventApproved  SubmissionEventType = "approved"
	SubmissionEventRejected  SubmissionEventType = "rejected"
)

// SubmissionEvent is pushed to review-feed subscribers whenever a submission
// changes state, so open admin sessions can re-render without polling.
type SubmissionEvent struct {
	Type         SubmissionEventType `json:"type"`
	SubmissionID string              `json:"submissionId"`
	CompanyName  string              `json:"companyName,omitempty"`
	Status       SubmissionStatus    `json:"status"`
	At           time.Time           `json:"at"`
}
