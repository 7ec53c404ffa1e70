package dto

import (
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// SaveSubmissionRequest carries the onboarding form fields. Autosave accepts
// any subset; validation of required fields happens only on final submit, so
// no binding:"required" tags here.
type SaveSubmissionRequest struct {
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	VatOrReg      string `json:"vatOrReg"`
}

// RejectSubmissionRequest carries the optional free-text reason.
type RejectSubmissionRequest struct {
	Reason string `json:"reason"`
}

// ListSubmissionsParams defines query parameters for the review list.
type ListSubmissionsParams struct {
	Status string `form:"status,default=pending"`
	Search string `form:"search"`
	Limit  int    `form:"limit,default=100"`
}

// SubmissionResponse is the outward shape of an onboarding submission.
type SubmissionResponse struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"companyName"`
	ContactPerson string     `json:"contactPerson"`
	ContactEmail  string     `json:"contactEmail"`
	ContactPhone  string     `json:"contactPhone,omitempty"`
	AddressLine1  string     `json:"addressLine1"`
	AddressLine2  string     `json:"addressLine2,omitempty"`
	City          string     `json:"city"`
	Province      string     `json:"province"`
	PostalCode    string     `json:"postalCode"`
	VatOrReg      string     `json:"vatOrReg,omitempty"`
	UID           string     `json:"uid"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
	RejectReason  string     `json:"rejectReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	RejectedAt    *time.Time `json:"rejectedAt,omitempty"`
}

// ToSubmissionResponse converts a domain submission to its response DTO.
func ToSubmissionResponse(s *domain.OnboardingSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:            s.SubmissionID,
		CompanyName:   s.CompanyName,
		ContactPerson: s.ContactPerson,
		ContactEmail:  s.ContactEmail,
		ContactPhone:  s.ContactPhone,
		AddressLine1:  s.AddressLine1,
		AddressLine2:  s.AddressLine2,
		City:          s.City,
		Province:      s.Province,
		PostalCode:    s.PostalCode,
		VatOrReg:      s.VatOrReg,
		UID:           s.UID,
		Email:         s.Email,
		Status:        string(s.Status),
		RejectReason:  s.RejectReason,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		SubmittedAt:   s.SubmittedAt,
		ApprovedAt:    s.ApprovedAt,
		RejectedAt:    s.RejectedAt,
	}
}

// ListSubmissionsResponse wraps a review view.
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

// ToListSubmissionsResponse converts a slice of submissions to the list DTO.
func ToListSubmissionsResponse(subs []domain.OnboardingSubmission) ListSubmissionsResponse {
	out := make([]SubmissionResponse, len(subs))
	for i := range subs {
		out[i] = ToSubmissionResponse(&subs[i])
	}
	return ListSubmissionsResponse{Submissions: out}
}
