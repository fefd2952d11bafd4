package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

var ErrCannotFollowSelf = errors.New("cannot follow yourself")

// FollowService maintains the directed follow graph. Following is
// independent of friendship and needs no approval.
type FollowService struct {
	db DB
}

func NewFollowService(db DB) *FollowService {
	return &FollowService{db: db}
}

// Toggle flips the follower → followee edge and returns the action
// taken plus the acting user's post-mutation following and follower
// counts.
func (s *FollowService) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowResult, error) {
	if followerID == followeeID {
		return nil, ErrCannotFollowSelf
	}

	for _, id := range []uuid.UUID{followerID, followeeID} {
		var exists bool
		err := s.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
			id,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking user existence: %w", err)
		}
		if !exists {
			return nil, ErrUserNotFound
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin follow transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result := &models.FollowResult{}

	deleted, err := tx.Exec(ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID, followeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("removing follow edge: %w", err)
	}
	if deleted.RowsAffected() > 0 {
		result.Action = models.FollowActionUnfollowed
	} else {
		_, err = tx.Exec(ctx,
			"INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)",
			followerID, followeeID,
		)
		if err != nil {
			return nil, fmt.Errorf("creating follow edge: %w", err)
		}
		result.Action = models.FollowActionFollowed
	}

	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM follows WHERE follower_id = $1",
		followerID,
	).Scan(&result.FollowingCount)
	if err != nil {
		return nil, fmt.Errorf("counting following: %w", err)
	}

	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM follows WHERE followee_id = $1",
		followerID,
	).Scan(&result.FollowersCount)
	if err != nil {
		return nil, fmt.Errorf("counting followers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit follow toggle: %w", err)
	}
	return result, nil
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	return s.listEdge(ctx, userID,
		`SELECT u.id, u.handle, u.display_name
		 FROM follows f
		 JOIN users u ON u.id = f.follower_id
		 WHERE f.followee_id = $1
		 ORDER BY f.created_at DESC`,
	)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	return s.listEdge(ctx, userID,
		`SELECT u.id, u.handle, u.display_name
		 FROM follows f
		 JOIN users u ON u.id = f.followee_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC`,
	)
}

func (s *FollowService) listEdge(ctx context.Context, userID uuid.UUID, sql string) ([]models.UserSummary, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
		userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("listing follow edges: %w", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}
