package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hackfest_backend/internal/domain/model"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	ListAll(ctx context.Context) ([]model.Announcement, error)
}

type NotificationRepository interface {
	// FanOut inserts one unread notification per existing user in a single
	// statement. Returns the number of notifications created.
	FanOut(ctx context.Context, message string) (int, error)
	ListForUser(ctx context.Context, userID string) ([]model.Notification, error)
	// MarkAllRead flips every unread notification for the user and returns how
	// many were flipped. Zero on a second call.
	MarkAllRead(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

type pgAnnouncementRepository struct {
	db *sql.DB
}

func NewPgAnnouncementRepository(db *sql.DB) AnnouncementRepository {
	return &pgAnnouncementRepository{db: db}
}

func (r *pgAnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	query := `INSERT INTO announcements (id, title, message) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, announcement.ID, announcement.Title, announcement.Message)
	if err != nil {
		return fmt.Errorf("pgAnnouncementRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAnnouncementRepository) ListAll(ctx context.Context) ([]model.Announcement, error) {
	query := `SELECT id, title, message, created_at FROM announcements ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgAnnouncementRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var announcements []model.Announcement
	for rows.Next() {
		a := model.Announcement{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgAnnouncementRepository.ListAll scan: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAnnouncementRepository.ListAll rows.Err: %w", err)
	}
	return announcements, nil
}

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) FanOut(ctx context.Context, message string) (int, error) {
	query := `INSERT INTO notifications (id, user_id, message)
	          SELECT gen_random_uuid()::text, id, $1 FROM users`
	result, err := r.db.ExecContext(ctx, query, message)
	if err != nil {
		return 0, fmt.Errorf("pgNotificationRepository.FanOut: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

func (r *pgNotificationRepository) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created_at
	          FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n := model.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgNotificationRepository.ListForUser scan: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListForUser rows.Err: %w", err)
	}
	return notifications, nil
}

func (r *pgNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("pgNotificationRepository.MarkAllRead: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

func (r *pgNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgNotificationRepository.CountUnread: %w", err)
	}
	return count, nil
}
