package dto

import (
	"time"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// CreateEmployeeRequest is the body of the privileged provisioning call.
type CreateEmployeeRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// CreateEmployeeResponse mirrors the provisioning call's wire contract.
type CreateEmployeeResponse struct {
	OK          bool   `json:"ok"`
	EmployeeUID string `json:"employeeUid"`
}

// EmployeeResponse is the outward shape of an employee record.
type EmployeeResponse struct {
	UID          string    `json:"uid"`
	CompanyID    string    `json:"companyId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	CreatedByUID string    `json:"createdByUid"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.Employee to its response DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		UID:          e.UID,
		CompanyID:    e.CompanyID,
		FullName:     e.FullName,
		Email:        e.Email,
		Status:       string(e.Status),
		CreatedByUID: e.CreatedByUID,
		CreatedAt:    e.CreatedAt,
	}
}

// ListEmployeesResponse wraps an employee listing.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// ToListEmployeesResponse converts a slice of employees to the list DTO.
func ToListEmployeesResponse(emps []domain.Employee) ListEmployeesResponse {
	out := make([]EmployeeResponse, len(emps))
	for i := range emps {
		out[i] = ToEmployeeResponse(&emps[i])
	}
	return ListEmployeesResponse{Employees: out}
}
