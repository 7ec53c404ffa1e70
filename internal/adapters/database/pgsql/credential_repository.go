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

type PgxCredentialRepository struct {
	BaseRepository
}

func newPgxCredentialRepository(pool *pgxpool.Pool) *PgxCredentialRepository {
	return &PgxCredentialRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CredentialRepository = (*PgxCredentialRepository)(nil)

const credentialColumns = `uid, email, password_hash, display_name, auth_provider, provider_user_id, created_at`

func (r *PgxCredentialRepository) SaveCredential(ctx context.Context, cred domain.Credential) error {
	query := `
        INSERT INTO credentials (uid, email, password_hash, display_name, auth_provider, provider_user_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		cred.UID,
		cred.Email,
		cred.PasswordHash,
		cred.DisplayName,
		cred.AuthProvider,
		cred.ProviderUserID,
		cred.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", cred.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (r *PgxCredentialRepository) FindCredentialByUID(ctx context.Context, uid string) (*domain.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE uid = $1;`
	return r.scanCredential(r.Pool.QueryRow(ctx, query, uid))
}

func (r *PgxCredentialRepository) FindCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE lower(email) = lower($1);`
	return r.scanCredential(r.Pool.QueryRow(ctx, query, email))
}

func (r *PgxCredentialRepository) FindCredentialByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE auth_provider = $1 AND provider_user_id = $2;`
	return r.scanCredential(r.Pool.QueryRow(ctx, query, provider, providerUserID))
}

func (r *PgxCredentialRepository) scanCredential(row pgx.Row) (*domain.Credential, error) {
	var cred domain.Credential
	err := row.Scan(
		&cred.UID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.DisplayName,
		&cred.AuthProvider,
		&cred.ProviderUserID,
		&cred.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan credential: %w", err)
	}
	return &cred, nil
}
