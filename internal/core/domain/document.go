package domain

import (
	"strings"
	"time"
)

// Client- and employee-facing documents carry different status vocabularies.
// They are deliberately kept as two domains; see DESIGN.md.
var (
	clientDocumentStatuses   = map[string]bool{"pending": true, "approved": true, "signed": true, "archived": true}
	employeeDocumentStatuses = map[string]bool{"active": true, "archived": true}
)

// ValidDocumentStatus reports whether status is valid for a document
// assigned to the given role.
func ValidDocumentStatus(role UserRole, status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	switch role {
	case RoleClient:
		return clientDocumentStatuses[s]
	case RoleEmployee:
		return employeeDocumentStatuses[s]
	default:
		return false
	}
}

// Document is a file uploaded by an admin and assigned to exactly one
// recipient. Exactly one of the ClientID/ClientEmail and
// EmployeeID/EmployeeEmail pairs is populated; the Assigned* fields mirror
// whichever pair is set, for simpler querying.
type Document struct {
	DocumentID string `json:"id"`
	Title      string `json:"title"`
	FileURL    string `json:"fileUrl"`
	FileName   string `json:"fileName"`
	StorageKey string `json:"-"`

	ClientID      *string `json:"clientId"`
	ClientEmail   *string `json:"clientEmail"`
	EmployeeID    *string `json:"employeeId"`
	EmployeeEmail *string `json:"employeeEmail"`

	AssignedRole    UserRole `json:"assignedRole"`
	AssignedToID    string   `json:"assignedToId"`
	AssignedToEmail string   `json:"assignedToEmail"`

	Status     string    `json:"status"`
	UploadedBy string    `json:"uploadedBy"` // admin email
	CreatedAt  time.Time `json:"createdAt"`
}
