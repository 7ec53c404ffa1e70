package domain

import "time"

// EmployeeStatus is the lifecycle of a provisioned employee account.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee is the record created alongside a User profile by the privileged
// provisioning operation. Ownership is scoped to the client that created it.
type Employee struct {
	UID          string         `json:"uid"`
	CompanyID    string         `json:"companyId"`
	FullName     string         `json:"fullName"`
	Email        string         `json:"email"`
	Status       EmployeeStatus `json:"status"`
	CreatedByUID string         `json:"createdByUid"`
	CreatedAt    time.Time      `json:"createdAt"`
}
