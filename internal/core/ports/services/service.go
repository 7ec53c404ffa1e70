package services

// ServiceContainer holds instances of all application services. It is the
// entry point handlers use to reach business functionality.
type ServiceContainer struct {
	User        UserSvcFacade
	Auth        AuthSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Onboarding  OnboardingSvcFacade
	Document    DocumentSvcFacade
	Employee    EmployeeSvcFacade
}
