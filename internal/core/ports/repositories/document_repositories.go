package repositories

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// DocumentReader defines read operations for document records.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindDocumentsByAssignedID retrieves documents assigned to a UID.
	FindDocumentsByAssignedID(ctx context.Context, uid string) ([]domain.Document, error)

	// FindDocumentsByAssignedEmail retrieves documents by recipient email.
	// Fallback for records written before the recipient had a profile UID.
	FindDocumentsByAssignedEmail(ctx context.Context, email string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for document records.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	UpdateDocumentStatus(ctx context.Context, documentID string, status string) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
