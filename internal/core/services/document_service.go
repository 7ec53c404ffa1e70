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
)

var whitespaceRun = regexp.MustCompile(`\s+`)

type documentService struct {
	BaseService
	docRepo  portsrepo.DocumentRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
	files    portsrepo.FileStorage
}

// NewDocumentService creates the document assignment service.
func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, files portsrepo.FileStorage) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: docRepo, userRepo: userRepo, files: files}
}

// Assign stores the uploaded file and records the document against exactly
// one recipient. The recipient's role decides which status vocabulary and
// which reference pair (client or employee) the record carries.
func (s *documentService) Assign(ctx context.Context, req dto.AssignDocumentRequest) (*domain.Document, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if len(req.Payload) == 0 {
		return nil, fmt.Errorf("file is required: %w", apperrors.ErrValidation)
	}

	target, err := s.userRepo.FindUserByID(ctx, req.TargetUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("target user %s: %w", req.TargetUserID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "failed to load document target", "target_uid", req.TargetUserID)
		return nil, fmt.Errorf("failed to load document target: %w", err)
	}
	if target.Role != domain.RoleClient && target.Role != domain.RoleEmployee {
		return nil, fmt.Errorf("documents can only be assigned to clients or employees: %w", apperrors.ErrValidation)
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = defaultDocumentStatus(target.Role)
	}
	if !domain.ValidDocumentStatus(target.Role, status) {
		return nil, fmt.Errorf("status %q is not valid for role %s: %w", status, target.Role, apperrors.ErrValidation)
	}

	key := storageKey(target.UserID, req.FileName)
	url, err := s.files.Upload(ctx, key, req.ContentType, req.Payload)
	if err != nil {
		s.LogError(ctx, err, "failed to upload document file", "key", key)
		return nil, fmt.Errorf("failed to upload document file: %w", err)
	}

	doc := domain.Document{
		DocumentID:      uuid.NewString(),
		Title:           strings.TrimSpace(req.Title),
		FileURL:         url,
		FileName:        req.FileName,
		StorageKey:      key,
		AssignedRole:    target.Role,
		AssignedToID:    target.UserID,
		AssignedToEmail: target.Email,
		Status:          status,
		UploadedBy:      req.UploadedBy,
		CreatedAt:       time.Now(),
	}
	if target.Role == domain.RoleClient {
		doc.ClientID = &target.UserID
		doc.ClientEmail = &target.Email
	} else {
		doc.EmployeeID = &target.UserID
		doc.EmployeeEmail = &target.Email
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "failed to save document record", "document_id", doc.DocumentID)
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	s.LogInfo(ctx, "document assigned", "document_id", doc.DocumentID, "target_uid", target.UserID, "role", string(target.Role))
	return &doc, nil
}

// ListForUser queries by UID first and falls back to email. The fallback
// covers records written before the recipient's profile existed.
func (s *documentService) ListForUser(ctx context.Context, uid, email string) ([]domain.Document, error) {
	docs, err := s.docRepo.FindDocumentsByAssignedID(ctx, uid)
	if err != nil {
		s.LogError(ctx, err, "failed to list documents by uid", "uid", uid)
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) > 0 || email == "" {
		return docs, nil
	}

	docs, err = s.docRepo.FindDocumentsByAssignedEmail(ctx, email)
	if err != nil {
		s.LogError(ctx, err, "failed to list documents by email", "uid", uid)
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// UpdateStatus changes a document's status, constrained to the vocabulary of
// the role it was assigned to.
func (s *documentService) UpdateStatus(ctx context.Context, documentID, status string) error {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load document for status update", "document_id", documentID)
		return fmt.Errorf("failed to load document: %w", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(status))
	if !domain.ValidDocumentStatus(doc.AssignedRole, normalized) {
		return fmt.Errorf("status %q is not valid for role %s: %w", status, doc.AssignedRole, apperrors.ErrValidation)
	}

	if err := s.docRepo.UpdateDocumentStatus(ctx, documentID, normalized); err != nil {
		s.LogError(ctx, err, "failed to update document status", "document_id", documentID)
		return fmt.Errorf("failed to update document status: %w", err)
	}
	return nil
}

func defaultDocumentStatus(role domain.UserRole) string {
	if role == domain.RoleEmployee {
		return "active"
	}
	return "pending"
}

// storageKey builds the object key for an uploaded file. Whitespace runs in
// the name collapse to single underscores so keys stay URL-friendly.
func storageKey(uid, fileName string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(fileName), "_")
	if name == "" {
		name = "document"
	}
	return fmt.Sprintf("documents/%s/%d_%s", uid, time.Now().UnixMilli(), name)
}
