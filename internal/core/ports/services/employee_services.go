package services

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	"github.com/seshego-consulting/portal_backend/internal/dto"
)

// EmployeeSvcFacade is the privileged employee-provisioning operation.
type EmployeeSvcFacade interface {
	// ProvisionEmployee creates an identity credential with a temporary
	// password, the employee profile and record, and queues the invite
	// email, all in one transaction. Fails fast with
	// apperrors.ErrForbidden / ErrPreconditionFailed before any write when
	// the caller is not a client or lacks a companyId, and with
	// apperrors.ErrDuplicate when the email already has an account.
	// Returns the new employee UID.
	ProvisionEmployee(ctx context.Context, callerUID string, req dto.CreateEmployeeRequest) (string, error)

	// ListEmployees returns the employees of the caller's company.
	ListEmployees(ctx context.Context, callerUID string) ([]domain.Employee, error)
}
