package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

var (
	ErrCannotFriendSelf = errors.New("cannot send friend request to yourself")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrDuplicateRequest = errors.New("friend request already pending")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrUserBlocked      = errors.New("user is blocked")
)

// FriendService mediates mutual-consent friendship formation. Pending
// requests live in friend_requests; confirmed friendships live in the
// friendships ledger, one canonical-order row per pair.
type FriendService struct {
	db     DB
	blocks BlockServiceInterface
}

func NewFriendService(db DB, blocks BlockServiceInterface) *FriendService {
	return &FriendService{db: db, blocks: blocks}
}

// SendRequest creates a pending request from → to. If a reciprocal
// pending request already exists it is accepted instead and the two
// users become friends immediately.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID uuid.UUID) (models.RequestOutcome, error) {
	if fromID == toID {
		return "", ErrCannotFriendSelf
	}

	exists, err := s.userExists(ctx, toID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrUserNotFound
	}

	// A block in either direction gates request creation.
	blocked, err := s.blocks.IsBlocked(ctx, fromID, toID)
	if err != nil {
		return "", err
	}
	if !blocked {
		blocked, err = s.blocks.IsBlocked(ctx, toID, fromID)
		if err != nil {
			return "", err
		}
	}
	if blocked {
		return "", ErrUserBlocked
	}

	areFriends, err := s.IsFriend(ctx, fromID, toID)
	if err != nil {
		return "", err
	}
	if areFriends {
		return "", ErrAlreadyFriends
	}

	var duplicate bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
		)`,
		fromID, toID,
	).Scan(&duplicate)
	if err != nil {
		return "", fmt.Errorf("checking duplicate request: %w", err)
	}
	if duplicate {
		return "", ErrDuplicateRequest
	}

	// Reciprocal pending request means both sides consent: auto-accept.
	var reciprocalID uuid.UUID
	err = s.db.QueryRow(ctx,
		`SELECT id FROM friend_requests
		 WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'`,
		toID, fromID,
	).Scan(&reciprocalID)
	if err == nil {
		if err := s.confirm(ctx, reciprocalID, fromID, toID); err != nil {
			return "", err
		}
		return models.RequestOutcomeFriends, nil
	}
	if !isNoRows(err) {
		return "", fmt.Errorf("checking reciprocal request: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO friend_requests (from_user_id, to_user_id, status)
		 VALUES ($1, $2, 'pending')`,
		fromID, toID,
	)
	if err != nil {
		return "", fmt.Errorf("creating friend request: %w", err)
	}

	return models.RequestOutcomePending, nil
}

// AcceptRequest accepts the pending request from → to. The caller is
// the recipient (to).
func (s *FriendService) AcceptRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	var requestID uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT id FROM friend_requests
		 WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'`,
		fromID, toID,
	).Scan(&requestID)
	if isNoRows(err) {
		return ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("finding friend request: %w", err)
	}

	return s.confirm(ctx, requestID, fromID, toID)
}

// confirm marks a request accepted and writes the ledger row in one
// transaction, so a friendship never exists without its ledger entry.
func (s *FriendService) confirm(ctx context.Context, requestID, x, y uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin accept transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		"UPDATE friend_requests SET status = 'accepted' WHERE id = $1",
		requestID,
	)
	if err != nil {
		return fmt.Errorf("accepting request: %w", err)
	}

	userA, userB := models.CanonicalPair(x, y)
	_, err = tx.Exec(ctx,
		`INSERT INTO friendships (user_a, user_b)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userA, userB,
	)
	if err != nil {
		return fmt.Errorf("recording friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit accept: %w", err)
	}
	return nil
}

// RejectRequest deletes the pending request from → to. Rejected
// requests are not retained.
func (s *FriendService) RejectRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friend_requests
		 WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'`,
		fromID, toID,
	)
	if err != nil {
		return fmt.Errorf("rejecting friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// RemoveFriend deletes the ledger row for the pair. Idempotent: removing
// a non-existent friendship is not an error. Historical request rows are
// left untouched.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	userA, userB := models.CanonicalPair(userID, friendID)
	_, err := s.db.Exec(ctx,
		"DELETE FROM friendships WHERE user_a = $1 AND user_b = $2",
		userA, userB,
	)
	if err != nil {
		return fmt.Errorf("removing friendship: %w", err)
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	exists, err := s.userExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.handle, u.display_name
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.user_a = $1 THEN f.user_b ELSE f.user_a END
		 WHERE f.user_a = $1 OR f.user_b = $1
		 ORDER BY u.handle`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

func (s *FriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.from_user_id, r.to_user_id, r.status, r.created_at, u.handle, u.display_name
		 FROM friend_requests r
		 JOIN users u ON u.id = r.from_user_id
		 WHERE r.to_user_id = $1 AND r.status = 'pending'
		 ORDER BY r.created_at DESC`,
		userID,
	)
}

func (s *FriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.from_user_id, r.to_user_id, r.status, r.created_at, u.handle, u.display_name
		 FROM friend_requests r
		 JOIN users u ON u.id = r.to_user_id
		 WHERE r.from_user_id = $1 AND r.status = 'pending'
		 ORDER BY r.created_at DESC`,
		userID,
	)
}

func (s *FriendService) listRequests(ctx context.Context, sql string, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequestWithUser
	for rows.Next() {
		var r models.FriendRequestWithUser
		if err := rows.Scan(&r.ID, &r.FromUserID, &r.ToUserID, &r.Status, &r.CreatedAt, &r.Handle, &r.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning friend request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading friend requests: %w", err)
	}
	if requests == nil {
		requests = []models.FriendRequestWithUser{}
	}
	return requests, nil
}

// RelationshipStatus derives the viewer → target relation. Friendship
// wins over pendingness; a pending request is reported from the
// viewer's perspective.
func (s *FriendService) RelationshipStatus(ctx context.Context, viewerID, targetID uuid.UUID) (models.RelationshipStatus, error) {
	areFriends, err := s.IsFriend(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if areFriends {
		return models.RelationshipFriends, nil
	}

	var sent bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
		)`,
		viewerID, targetID,
	).Scan(&sent)
	if err != nil {
		return "", fmt.Errorf("checking sent request: %w", err)
	}
	if sent {
		return models.RelationshipPendingSent, nil
	}

	var received bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
		)`,
		targetID, viewerID,
	).Scan(&received)
	if err != nil {
		return "", fmt.Errorf("checking received request: %w", err)
	}
	if received {
		return models.RelationshipPendingReceived, nil
	}

	return models.RelationshipNone, nil
}

// FriendCount counts ledger rows where the user appears on either side.
func (s *FriendService) FriendCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM friendships WHERE user_a = $1 OR user_b = $1",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting friends: %w", err)
	}
	return count, nil
}

// IsFriend reports whether a confirmed friendship exists between the pair.
func (s *FriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	userA, userB := models.CanonicalPair(userID, otherUserID)
	var isFriend bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM friendships WHERE user_a = $1 AND user_b = $2)",
		userA, userB,
	).Scan(&isFriend)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return isFriend, nil
}

func (s *FriendService) userExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return exists, nil
}
