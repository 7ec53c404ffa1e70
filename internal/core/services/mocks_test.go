package services_test

import (
	"context"
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock CredentialRepository ---
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) SaveCredential(ctx context.Context, cred domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockCredentialRepository) FindCredentialByUID(ctx context.Context, uid string) (*domain.Credential, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) FindCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) FindCredentialByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Credential, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

// --- Mock SubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.OnboardingSubmission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) FindSubmissions(ctx context.Context, limit int) ([]domain.OnboardingSubmission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OnboardingSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) UpsertSubmission(ctx context.Context, sub domain.OnboardingSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubmissionRepository) ApproveSubmission(ctx context.Context, sub domain.OnboardingSubmission, profile domain.User, mail domain.Notification) error {
	args := m.Called(ctx, sub, profile, mail)
	return args.Error(0)
}

func (m *MockSubmissionRepository) RejectSubmission(ctx context.Context, submissionID string, rejectedAt time.Time, reason string, mail domain.Notification) error {
	args := m.Called(ctx, submissionID, rejectedAt, reason, mail)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentsByAssignedID(ctx context.Context, uid string) ([]domain.Document, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentsByAssignedEmail(ctx context.Context, email string) ([]domain.Document, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status string) error {
	args := m.Called(ctx, documentID, status)
	return args.Error(0)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeesByCompanyID(ctx context.Context, companyID string) ([]domain.Employee, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ProvisionEmployee(ctx context.Context, cred domain.Credential, profile domain.User, employee domain.Employee, mail domain.Notification) error {
	args := m.Called(ctx, cred, profile, employee, mail)
	return args.Error(0)
}

// --- Mock FileStorage ---
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, key string, contentType string, payload []byte) (string, error) {
	args := m.Called(ctx, key, contentType, payload)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) PresignedGetURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
