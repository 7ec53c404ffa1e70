package dto

import (
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// UserResponse is the outward shape of a portal profile.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	CompanyID     *string   `json:"companyId"`
	CompanyName   string    `json:"companyName,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Address       string    `json:"address,omitempty"`
	VatOrReg      string    `json:"vatOrReg,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.UserID,
		Email:         u.Email,
		Role:          string(u.Role),
		CompanyID:     u.CompanyID,
		CompanyName:   u.CompanyName,
		ContactPerson: u.ContactPerson,
		Address:       u.Address,
		VatOrReg:      u.VatOrReg,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// ListUsersParams defines query parameters for listing profiles.
type ListUsersParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of profiles.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to the list DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: out}
}
