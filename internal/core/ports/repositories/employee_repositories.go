package repositories

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// EmployeeReader defines read operations for employee records.
type EmployeeReader interface {
	FindEmployeesByCompanyID(ctx context.Context, companyID string) ([]domain.Employee, error)
}

// EmployeeProvisioner creates everything a new employee account needs in a
// single database transaction: the identity credential, the user profile,
// the employee record and the invite notification. A duplicate credential
// email fails the whole transaction with apperrors.ErrDuplicate, so a
// credential can never be orphaned by a later step failing.
type EmployeeProvisioner interface {
	ProvisionEmployee(ctx context.Context, cred domain.Credential, profile domain.User, employee domain.Employee, mail domain.Notification) error
}

// EmployeeRepositoryFacade combines all employee repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeProvisioner
}
