package dto

// RegisterRequest creates a new credential. No portal profile exists until an
// onboarding submission is approved.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
}

// LoginRequest defines the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the JWT plus enough profile context for the frontend
// to route: an empty role means the account is still pending approval.
type LoginResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Role  string `json:"role,omitempty"`
}

// ExchangeCodeRequest is the body for the Google sign-in code exchange.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleLoginURLResponse carries the consent-screen URL and the CSRF state
// the frontend must hold and compare on the redirect back.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
