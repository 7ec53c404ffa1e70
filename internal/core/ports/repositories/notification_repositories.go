package repositories

import (
	"context"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// NotificationRepository is the durable outbound mail queue. The portal only
// enqueues; delivery is an external collaborator's job.
type NotificationRepository interface {
	EnqueueNotification(ctx context.Context, n domain.Notification) error

	// FindQueuedNotifications lists undelivered mail, oldest first.
	FindQueuedNotifications(ctx context.Context, limit int) ([]domain.Notification, error)
}
