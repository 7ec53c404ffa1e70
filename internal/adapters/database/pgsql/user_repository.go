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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, role, company_id, company_name, contact_person, address, vat_or_reg, is_active,
        created_at, created_by, last_updated_at, last_updated_by`

// upsertUserQuery merge-writes a profile: empty incoming strings do not
// clobber existing values, and company_id/created_at stick once set.
const upsertUserQuery = `
        INSERT INTO users (user_id, email, role, company_id, company_name, contact_person, address, vat_or_reg, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (user_id) DO UPDATE SET
            email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
            role = EXCLUDED.role,
            company_id = COALESCE(users.company_id, EXCLUDED.company_id),
            company_name = COALESCE(NULLIF(EXCLUDED.company_name, ''), users.company_name),
            contact_person = COALESCE(NULLIF(EXCLUDED.contact_person, ''), users.contact_person),
            address = COALESCE(NULLIF(EXCLUDED.address, ''), users.address),
            vat_or_reg = COALESCE(NULLIF(EXCLUDED.vat_or_reg, ''), users.vat_or_reg),
            is_active = EXCLUDED.is_active,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `

func (r *PgxUserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	_, err := r.Pool.Exec(ctx, upsertUserQuery, upsertUserArgs(user)...)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func upsertUserArgs(user domain.User) []any {
	return []any{
		user.UserID,
		user.Email,
		user.Role,
		user.CompanyID,
		user.CompanyName,
		user.ContactPerson,
		user.Address,
		user.VatOrReg,
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	}
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Role,
		&user.CompanyID,
		&user.CompanyName,
		&user.ContactPerson,
		&user.Address,
		&user.VatOrReg,
		&user.IsActive,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
