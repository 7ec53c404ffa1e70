package repositories

import "context"

// FileStorage stores document binaries and produces retrievable URLs.
type FileStorage interface {
	// Upload stores the payload under key and returns a URL the frontend can
	// fetch the file from.
	Upload(ctx context.Context, key string, contentType string, payload []byte) (string, error)

	// PresignedGetURL returns a short-lived download URL for an existing key.
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// RepositoryProvider bundles all repository implementations for wiring the
// service container.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	CredentialRepo   CredentialRepository
	SubmissionRepo   SubmissionRepositoryFacade
	DocumentRepo     DocumentRepositoryFacade
	EmployeeRepo     EmployeeRepositoryFacade
	NotificationRepo NotificationRepository
	Files            FileStorage
}
