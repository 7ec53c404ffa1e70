package services

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	"github.com/seshego-consulting/portal_backend/internal/dto"
)

// DocumentSvcFacade is the document assignment service: it links an uploaded
// file to exactly one recipient.
type DocumentSvcFacade interface {
	// Assign stores the file and creates the document record. The target
	// must be an existing client or employee profile; the status must be
	// valid for the target's role.
	Assign(ctx context.Context, req dto.AssignDocumentRequest) (*domain.Document, error)

	// ListForUser retrieves the documents assigned to a principal, querying
	// by UID first and falling back to email when that yields nothing.
	ListForUser(ctx context.Context, uid, email string) ([]domain.Document, error)

	// UpdateStatus changes a document's status within its role's domain.
	UpdateStatus(ctx context.Context, documentID, status string) error
}
