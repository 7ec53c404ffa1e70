package services

import (
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.CredentialRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Onboarding = NewOnboardingService(cfg, repos.SubmissionRepo, repos.UserRepo)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.UserRepo, repos.Files)
	container.Employee = NewEmployeeService(cfg, repos.EmployeeRepo, repos.UserRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.AuthSvcFacade       = (*authService)(nil)
	_ portssvc.OnboardingSvcFacade = (*onboardingService)(nil)
	_ portssvc.DocumentSvcFacade   = (*documentService)(nil)
	_ portssvc.EmployeeSvcFacade   = (*employeeService)(nil)
)
