package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

var (
	ErrCannotBlockSelf = errors.New("cannot block yourself")
	ErrBlockNotFound   = errors.New("block not found")
)

// BlockService maintains the directed blocker → blocked relation.
type BlockService struct {
	db DB
}

func NewBlockService(db DB) *BlockService {
	return &BlockService{db: db}
}

// Block creates the directed row if absent; blocking an already blocked
// user is a no-op. Any friendship and pending requests between the pair
// are severed in the same transaction.
func (s *BlockService) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrCannotBlockSelf
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
		blockedID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking user existence: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin block transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO user_blocks (blocker_id, blocked_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("insert block: %w", err)
	}

	userA, userB := models.CanonicalPair(blockerID, blockedID)
	_, err = tx.Exec(ctx,
		"DELETE FROM friendships WHERE user_a = $1 AND user_b = $2",
		userA, userB,
	)
	if err != nil {
		return fmt.Errorf("remove friendship: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM friend_requests
		 WHERE (from_user_id = $1 AND to_user_id = $2)
		    OR (from_user_id = $2 AND to_user_id = $1)`,
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("remove friend requests: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit block: %w", err)
	}
	return nil
}

// Unblock deletes the directed row.
func (s *BlockService) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2",
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// IsBlocked reports whether blocker has blocked blocked. The check is
// directional; request gating queries both directions separately.
func (s *BlockService) IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	var blocked bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2)",
		blockerID, blockedID,
	).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("check block status: %w", err)
	}
	return blocked, nil
}

func (s *BlockService) ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]models.BlockedUser, error) {
	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.handle, b.created_at
		 FROM user_blocks b
		 JOIN users u ON u.id = b.blocked_id
		 WHERE b.blocker_id = $1
		 ORDER BY u.handle`,
		blockerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	defer rows.Close()

	var blocked []models.BlockedUser
	for rows.Next() {
		var u models.BlockedUser
		if err := rows.Scan(&u.ID, &u.Handle, &u.BlockedAt); err != nil {
			return nil, fmt.Errorf("scan blocked user: %w", err)
		}
		blocked = append(blocked, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading blocked users: %w", err)
	}
	if blocked == nil {
		blocked = []models.BlockedUser{}
	}
	return blocked, nil
}
