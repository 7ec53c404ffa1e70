package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portsrepo "github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

const enqueueNotificationQuery = `
        INSERT INTO mail_queue (mail_id, recipients, subject, html, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `

// execer covers both pgxpool.Pool and pgx.Tx, so enqueue can run standalone
// or inside a review/provisioning transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *PgxNotificationRepository) EnqueueNotification(ctx context.Context, n domain.Notification) error {
	return enqueueNotificationTx(ctx, r.Pool, n)
}

// enqueueNotificationTx writes a mail-queue row using the given executor,
// filling in the ID, status and timestamp when the caller left them zero.
func enqueueNotificationTx(ctx context.Context, ex execer, n domain.Notification) error {
	if n.MailID == "" {
		n.MailID = uuid.NewString()
	}
	if n.Status == "" {
		n.Status = domain.NotificationQueued
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := ex.Exec(ctx, enqueueNotificationQuery,
		n.MailID, n.To, n.Subject, n.HTML, n.Status, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func (r *PgxNotificationRepository) FindQueuedNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
        SELECT mail_id, recipients, subject, html, status, created_at, sent_at
        FROM mail_queue
        WHERE status = $1
        ORDER BY created_at ASC
        LIMIT $2;
    `
	rows, err := r.Pool.Query(ctx, query, domain.NotificationQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mail queue: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.MailID, &n.To, &n.Subject, &n.HTML, &n.Status, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating mail queue rows: %w", rows.Err())
	}
	return notifications, nil
}
