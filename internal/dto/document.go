package dto

import (
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// AssignDocumentRequest is the service-level input for the admin upload
// action. The handler extracts it from a multipart form.
type AssignDocumentRequest struct {
	Title        string
	TargetUserID string
	Status       string
	FileName     string
	ContentType  string
	Payload      []byte
	UploadedBy   string // admin email
}

// UpdateDocumentStatusRequest changes a document's status.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DocumentResponse is the outward shape of a document record.
type DocumentResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	FileURL         string    `json:"fileUrl"`
	FileName        string    `json:"fileName"`
	ClientID        *string   `json:"clientId"`
	ClientEmail     *string   `json:"clientEmail"`
	EmployeeID      *string   `json:"employeeId"`
	EmployeeEmail   *string   `json:"employeeEmail"`
	AssignedRole    string    `json:"assignedRole"`
	AssignedToID    string    `json:"assignedToId"`
	AssignedToEmail string    `json:"assignedToEmail"`
	Status          string    `json:"status"`
	UploadedBy      string    `json:"uploadedBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToDocumentResponse converts a domain.Document to its response DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:              d.DocumentID,
		Title:           d.Title,
		FileURL:         d.FileURL,
		FileName:        d.FileName,
		ClientID:        d.ClientID,
		ClientEmail:     d.ClientEmail,
		EmployeeID:      d.EmployeeID,
		EmployeeEmail:   d.EmployeeEmail,
		AssignedRole:    string(d.AssignedRole),
		AssignedToID:    d.AssignedToID,
		AssignedToEmail: d.AssignedToEmail,
		Status:          d.Status,
		UploadedBy:      d.UploadedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ListDocumentsResponse wraps a document listing.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse converts a slice of documents to the list DTO.
func ToListDocumentsResponse(docs []domain.Document) ListDocumentsResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
	}
	return ListDocumentsResponse{Documents: out}
}
