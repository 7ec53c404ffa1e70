package domain

import "time"

// UserRole governs which portal operations and views a principal may use.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleClient   UserRole = "client"
	RoleEmployee UserRole = "employee"
)

// User is the portal profile for an authenticated principal. It is created on
// approval of an onboarding submission (role client) or by the privileged
// employee-provisioning operation (role employee); admins are seeded directly.
// The UserID is the identity handle issued at registration.
type User struct {
	UserID        string   `json:"id"`
	Email         string   `json:"email"`
	Role          UserRole `json:"role"`
	CompanyID     *string  `json:"companyId"` // nil for admins
	CompanyName   string   `json:"companyName,omitempty"`
	ContactPerson string   `json:"contactPerson,omitempty"`
	Address       string   `json:"address,omitempty"`
	VatOrReg      string   `json:"vatOrReg,omitempty"`
	IsActive      bool     `json:"isActive"`
	AuditFields
}

// AuthProvider identifies how a credential authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// Credential is an identity record. It exists from registration onward,
// before any User profile does; a registered-but-unapproved principal has a
// credential and no profile.
type Credential struct {
	UID            string       `json:"uid"`
	Email          string       `json:"email"`
	PasswordHash   *string      `json:"-"` // nil for external providers
	DisplayName    string       `json:"displayName"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
}
