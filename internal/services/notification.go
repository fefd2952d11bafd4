package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

const defaultNotificationLimit = 50

// NotificationService records in-app notifications for relationship
// events. Writes are best-effort from the callers' perspective: they
// happen after the relationship mutation, outside its transaction.
type NotificationService struct {
	db DB
}

func NewNotificationService(db DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) NotifyFriendRequestReceived(ctx context.Context, recipientID, actorID uuid.UUID) error {
	return s.notify(ctx, recipientID, actorID, models.NotificationFriendRequestReceived)
}

func (s *NotificationService) NotifyFriendRequestAccepted(ctx context.Context, recipientID, actorID uuid.UUID) error {
	return s.notify(ctx, recipientID, actorID, models.NotificationFriendRequestAccepted)
}

func (s *NotificationService) NotifyNewFollower(ctx context.Context, recipientID, actorID uuid.UUID) error {
	return s.notify(ctx, recipientID, actorID, models.NotificationNewFollower)
}

func (s *NotificationService) notify(ctx context.Context, recipientID, actorID uuid.UUID, nType models.NotificationType) error {
	if recipientID == actorID {
		return nil
	}
	_, err := s.db.Exec(ctx,
		"INSERT INTO notifications (user_id, actor_id, type) VALUES ($1, $2, $3)",
		recipientID, actorID, nType,
	)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}

	rows, err := s.db.Query(ctx,
		`SELECT n.id, n.user_id, n.actor_id, u.handle, n.type, n.read_at, n.created_at
		 FROM notifications n
		 JOIN users u ON u.id = n.actor_id
		 WHERE n.user_id = $1
		 ORDER BY n.created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &n.ActorHandle, &n.Type, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading notifications: %w", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"UPDATE notifications SET read_at = NOW() WHERE id = $1 AND user_id = $2 AND read_at IS NULL",
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"UPDATE notifications SET read_at = NOW() WHERE user_id = $1 AND read_at IS NULL",
		userID,
	)
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}
