package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/internal/utils"
	"github.com/seshego-consulting/portal_backend/pkg/config"
)

type employeeService struct {
	BaseService
	cfg      *config.Config
	empRepo  portsrepo.EmployeeRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewEmployeeService creates the employee provisioning service.
func NewEmployeeService(cfg *config.Config, empRepo portsrepo.EmployeeRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{cfg: cfg, empRepo: empRepo, userRepo: userRepo}
}

// ProvisionEmployee creates a working employee account in one shot: identity
// credential with a temporary password, portal profile, employee record and
// invite email. Checks run strictly before the first write, so any failure
// leaves no partial account behind.
func (s *employeeService) ProvisionEmployee(ctx context.Context, callerUID string, req dto.CreateEmployeeRequest) (string, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return "", fmt.Errorf("fullName and email are required: %w", apperrors.ErrValidation)
	}
	if !emailShape.MatchString(email) {
		return "", fmt.Errorf("email is not a valid email address: %w", apperrors.ErrValidation)
	}

	caller, err := s.userRepo.FindUserByID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("caller has no portal profile: %w", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "failed to load provisioning caller", "caller_uid", callerUID)
		return "", fmt.Errorf("failed to load caller profile: %w", err)
	}
	if caller.Role != domain.RoleClient {
		return "", fmt.Errorf("only client accounts may provision employees: %w", apperrors.ErrForbidden)
	}
	if caller.CompanyID == nil || *caller.CompanyID == "" {
		return "", fmt.Errorf("caller profile has no companyId: %w", apperrors.ErrPreconditionFailed)
	}

	tempPassword, err := utils.GenerateTempPassword()
	if err != nil {
		s.LogError(ctx, err, "failed to generate temporary password")
		return "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		s.LogError(ctx, err, "failed to hash temporary password")
		return "", fmt.Errorf("failed to hash temporary password: %w", err)
	}

	now := time.Now()
	employeeUID := uuid.NewString()
	companyID := *caller.CompanyID

	cred := domain.Credential{
		UID:          employeeUID,
		Email:        email,
		PasswordHash: &hash,
		DisplayName:  fullName,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
	}
	profile := domain.User{
		UserID:        employeeUID,
		Email:         email,
		Role:          domain.RoleEmployee,
		CompanyID:     &companyID,
		CompanyName:   caller.CompanyName,
		ContactPerson: fullName,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     callerUID,
			LastUpdatedAt: now,
			LastUpdatedBy: callerUID,
		},
	}
	employee := domain.Employee{
		UID:          employeeUID,
		CompanyID:    companyID,
		FullName:     fullName,
		Email:        email,
		Status:       domain.EmployeeActive,
		CreatedByUID: callerUID,
		CreatedAt:    now,
	}
	mail := employeeInviteEmail(s.cfg, fullName, email, tempPassword, caller.CompanyName)

	if err := s.empRepo.ProvisionEmployee(ctx, cred, profile, employee, mail); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return "", err
		}
		s.LogError(ctx, err, "failed to provision employee", "caller_uid", callerUID)
		return "", fmt.Errorf("failed to provision employee: %w", err)
	}

	s.LogInfo(ctx, "employee provisioned", "employee_uid", employeeUID, "company_id", companyID, "caller_uid", callerUID)
	return employeeUID, nil
}

// ListEmployees returns the employees of the caller's company.
func (s *employeeService) ListEmployees(ctx context.Context, callerUID string) ([]domain.Employee, error) {
	caller, err := s.userRepo.FindUserByID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("caller has no portal profile: %w", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "failed to load caller for employee listing", "caller_uid", callerUID)
		return nil, fmt.Errorf("failed to load caller profile: %w", err)
	}
	if caller.CompanyID == nil || *caller.CompanyID == "" {
		return []domain.Employee{}, nil
	}

	employees, err := s.empRepo.FindEmployeesByCompanyID(ctx, *caller.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "failed to list employees", "company_id", *caller.CompanyID)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
