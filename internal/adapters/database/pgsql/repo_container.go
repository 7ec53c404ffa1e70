package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto the shared
// pool. File storage is injected separately; it is not a database concern.
func NewRepositoryProvider(pool *pgxpool.Pool, files portsrepo.FileStorage) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(pool),
		CredentialRepo:   newPgxCredentialRepository(pool),
		SubmissionRepo:   newPgxSubmissionRepository(pool),
		DocumentRepo:     newPgxDocumentRepository(pool),
		EmployeeRepo:     newPgxEmployeeRepository(pool),
		NotificationRepo: newPgxNotificationRepository(pool),
		Files:            files,
	}
}
