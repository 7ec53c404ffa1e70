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

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) *PgxEmployeeRepository {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `uid, company_id, full_name, email, status, created_by_uid, created_at`

// ProvisionEmployee creates the credential, profile, employee record and
// invite email in one transaction. A taken email aborts the whole thing
// with apperrors.ErrDuplicate, so no step ever lands without the others.
func (r *PgxEmployeeRepository) ProvisionEmployee(ctx context.Context, cred domain.Credential, profile domain.User, employee domain.Employee, mail domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertCredential := `
        INSERT INTO credentials (uid, email, password_hash, display_name, auth_provider, provider_user_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err = tx.Exec(ctx, insertCredential,
		cred.UID, cred.Email, cred.PasswordHash, cred.DisplayName, cred.AuthProvider, cred.ProviderUserID, cred.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", cred.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert employee credential: %w", err)
	}

	if _, err := tx.Exec(ctx, upsertUserQuery, upsertUserArgs(profile)...); err != nil {
		return fmt.Errorf("failed to upsert employee profile: %w", err)
	}

	upsertEmployee := `
        INSERT INTO employees (uid, company_id, full_name, email, status, created_by_uid, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (uid) DO UPDATE SET
            company_id = EXCLUDED.company_id,
            full_name = EXCLUDED.full_name,
            email = EXCLUDED.email,
            status = EXCLUDED.status;
    `
	_, err = tx.Exec(ctx, upsertEmployee,
		employee.UID, employee.CompanyID, employee.FullName, employee.Email, employee.Status, employee.CreatedByUID, employee.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert employee record: %w", err)
	}

	if err := enqueueNotificationTx(ctx, tx, mail); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxEmployeeRepository) FindEmployeesByCompanyID(ctx context.Context, companyID string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	err := row.Scan(
		&emp.UID,
		&emp.CompanyID,
		&emp.FullName,
		&emp.Email,
		&emp.Status,
		&emp.CreatedByUID,
		&emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return &emp, nil
}
