package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, title, file_url, file_name, storage_key,
        client_id, client_email, employee_id, employee_email,
        assigned_role, assigned_to_id, assigned_to_email,
        status, uploaded_by, created_at`

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	query := `
        INSERT INTO documents (document_id, title, file_url, file_name, storage_key,
            client_id, client_email, employee_id, employee_email,
            assigned_role, assigned_to_id, assigned_to_email,
            status, uploaded_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		doc.DocumentID,
		doc.Title,
		doc.FileURL,
		doc.FileName,
		doc.StorageKey,
		doc.ClientID,
		doc.ClientEmail,
		doc.EmployeeID,
		doc.EmployeeEmail,
		doc.AssignedRole,
		doc.AssignedToID,
		doc.AssignedToEmail,
		doc.Status,
		doc.UploadedBy,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status string) error {
	query := `UPDATE documents SET status = $2 WHERE document_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, documentID, status)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	return scanDocument(r.Pool.QueryRow(ctx, query, documentID))
}

func (r *PgxDocumentRepository) FindDocumentsByAssignedID(ctx context.Context, uid string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE assigned_to_id = $1 ORDER BY created_at DESC;`
	return r.queryDocuments(ctx, query, uid)
}

func (r *PgxDocumentRepository) FindDocumentsByAssignedEmail(ctx context.Context, email string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE lower(assigned_to_email) = lower($1) ORDER BY created_at DESC;`
	return r.queryDocuments(ctx, query, email)
}

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return docs, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(
		&doc.DocumentID,
		&doc.Title,
		&doc.FileURL,
		&doc.FileName,
		&doc.StorageKey,
		&doc.ClientID,
		&doc.ClientEmail,
		&doc.EmployeeID,
		&doc.EmployeeEmail,
		&doc.AssignedRole,
		&doc.AssignedToID,
		&doc.AssignedToEmail,
		&doc.Status,
		&doc.UploadedBy,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return &doc, nil
}
