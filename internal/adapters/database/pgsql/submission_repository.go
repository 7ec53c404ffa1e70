package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
)

type PgxSubmissionRepository struct {
	BaseRepository
}

func newPgxSubmissionRepository(pool *pgxpool.Pool) *PgxSubmissionRepository {
	return &PgxSubmissionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubmissionRepositoryFacade = (*PgxSubmissionRepository)(nil)

const submissionColumns = `submission_id, company_name, contact_person, contact_email, contact_phone,
        address_line1, address_line2, city, province, postal_code, vat_or_reg,
        uid, email, status, reject_reason,
        created_at, updated_at, submitted_at, approved_at, rejected_at`

const upsertSubmissionQuery = `
        INSERT INTO onboarding_submissions (submission_id, company_name, contact_person, contact_email, contact_phone,
            address_line1, address_line2, city, province, postal_code, vat_or_reg,
            uid, email, status, reject_reason,
            created_at, updated_at, submitted_at, approved_at, rejected_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
        ON CONFLICT (submission_id) DO UPDATE SET
            company_name = EXCLUDED.company_name,
            contact_person = EXCLUDED.contact_person,
            contact_email = EXCLUDED.contact_email,
            contact_phone = EXCLUDED.contact_phone,
            address_line1 = EXCLUDED.address_line1,
            address_line2 = EXCLUDED.address_line2,
            city = EXCLUDED.city,
            province = EXCLUDED.province,
            postal_code = EXCLUDED.postal_code,
            vat_or_reg = EXCLUDED.vat_or_reg,
            email = EXCLUDED.email,
            status = EXCLUDED.status,
            reject_reason = EXCLUDED.reject_reason,
            updated_at = EXCLUDED.updated_at,
            submitted_at = COALESCE(onboarding_submissions.submitted_at, EXCLUDED.submitted_at);
    `

func (r *PgxSubmissionRepository) UpsertSubmission(ctx context.Context, sub domain.OnboardingSubmission) error {
	_, err := r.Pool.Exec(ctx, upsertSubmissionQuery,
		sub.SubmissionID,
		sub.CompanyName,
		sub.ContactPerson,
		sub.ContactEmail,
		sub.ContactPhone,
		sub.AddressLine1,
		sub.AddressLine2,
		sub.City,
		sub.Province,
		sub.PostalCode,
		sub.VatOrReg,
		sub.UID,
		sub.Email,
		sub.Status,
		sub.RejectReason,
		sub.CreatedAt,
		sub.UpdatedAt,
		sub.SubmittedAt,
		sub.ApprovedAt,
		sub.RejectedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert submission: %w", err)
	}
	return nil
}

func (r *PgxSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.OnboardingSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM onboarding_submissions WHERE submission_id = $1;`
	return scanSubmission(r.Pool.QueryRow(ctx, query, submissionID))
}

func (r *PgxSubmissionRepository) FindSubmissions(ctx context.Context, limit int) ([]domain.OnboardingSubmission, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + submissionColumns + ` FROM onboarding_submissions ORDER BY created_at DESC LIMIT $1;`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	subs := []domain.OnboardingSubmission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", rows.Err())
	}
	return subs, nil
}

// ApproveSubmission flips the submission to approved, merge-upserts the
// promoted client profile and enqueues the approval email in one transaction.
func (r *PgxSubmissionRepository) ApproveSubmission(ctx context.Context, sub domain.OnboardingSubmission, profile domain.User, mail domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	markApproved := `
        UPDATE onboarding_submissions
        SET status = $2, approved_at = $3, updated_at = $3, reject_reason = ''
        WHERE submission_id = $1;
    `
	tag, err := tx.Exec(ctx, markApproved, sub.SubmissionID, domain.SubmissionApproved, sub.ApprovedAt)
	if err != nil {
		return fmt.Errorf("failed to mark submission approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, upsertUserQuery, upsertUserArgs(profile)...); err != nil {
		return fmt.Errorf("failed to upsert approved client profile: %w", err)
	}

	if err := enqueueNotificationTx(ctx, tx, mail); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RejectSubmission flips the submission to rejected and enqueues the
// rejection email in one transaction.
func (r *PgxSubmissionRepository) RejectSubmission(ctx context.Context, submissionID string, rejectedAt time.Time, reason string, mail domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	markRejected := `
        UPDATE onboarding_submissions
        SET status = $2, rejected_at = $3, updated_at = $3, reject_reason = $4
        WHERE submission_id = $1;
    `
	tag, err := tx.Exec(ctx, markRejected, submissionID, domain.SubmissionRejected, rejectedAt, reason)
	if err != nil {
		return fmt.Errorf("failed to mark submission rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := enqueueNotificationTx(ctx, tx, mail); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func scanSubmission(row pgx.Row) (*domain.OnboardingSubmission, error) {
	var sub domain.OnboardingSubmission
	err := row.Scan(
		&sub.SubmissionID,
		&sub.CompanyName,
		&sub.ContactPerson,
		&sub.ContactEmail,
		&sub.ContactPhone,
		&sub.AddressLine1,
		&sub.AddressLine2,
		&sub.City,
		&sub.Province,
		&sub.PostalCode,
		&sub.VatOrReg,
		&sub.UID,
		&sub.Email,
		&sub.Status,
		&sub.RejectReason,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&sub.SubmittedAt,
		&sub.ApprovedAt,
		&sub.RejectedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}
	return &sub, nil
}
