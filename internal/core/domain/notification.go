package domain

import "time"

// NotificationStatus tracks a queued email through the mail queue.
type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
)

// Notification is a durable outbound-email request. The portal only writes
// these; an external delivery collaborator drains the queue asynchronously.
type Notification struct {
	MailID    string             `json:"id"`
	To        []string           `json:"to"`
	Subject   string             `json:"subject"`
	HTML      string             `json:"html"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	SentAt    *time.Time         `json:"sentAt,omitempty"`
}
