package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrHandleTaken  = errors.New("handle already taken")
	ErrEmailTaken   = errors.New("email already registered")
)

const userColumns = "id, handle, email, display_name, password_hash, created_at, updated_at"

type UserService struct {
	db      DB
	friends FriendServiceInterface
}

func NewUserService(db DB, friends FriendServiceInterface) *UserService {
	return &UserService{db: db, friends: friends}
}

// Create registers a user. Handle and email are unique
// case-insensitively; relationship state starts empty.
func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	var handleTaken bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(handle) = LOWER($1))",
		params.Handle,
	).Scan(&handleTaken)
	if err != nil {
		return nil, fmt.Errorf("checking handle: %w", err)
	}
	if handleTaken {
		return nil, ErrHandleTaken
	}

	var emailTaken bool
	err = s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))",
		params.Email,
	).Scan(&emailTaken)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (handle, email, display_name, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		params.Handle, params.Email, params.DisplayName, params.PasswordHash,
	).Scan(&user.ID, &user.Handle, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (s *UserService) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE LOWER(handle) = LOWER($1)", handle)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER($1)", email)
}

func (s *UserService) getOne(ctx context.Context, sql string, arg any) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID, &user.Handle, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// Search matches handles and display names, excluding the searcher and
// anyone with a block in either direction.
func (s *UserService) Search(ctx context.Context, viewerID uuid.UUID, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.UserSummary{}, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(ctx,
		`SELECT id, handle, display_name FROM users
		 WHERE id != $1
		   AND (LOWER(handle) LIKE $2 OR LOWER(display_name) LIKE $2)
		   AND NOT EXISTS (
		     SELECT 1 FROM user_blocks
		     WHERE (blocker_id = $1 AND blocked_id = users.id)
		        OR (blocker_id = users.id AND blocked_id = $1)
		   )
		 ORDER BY handle
		 LIMIT 20`,
		viewerID, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

// Profile returns the public view of a user: no credentials, follow
// counts from the follows table, friend count from the friendship ledger.
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	profile := &models.PublicProfile{}
	err := s.db.QueryRow(ctx,
		`SELECT u.id, u.handle, u.display_name,
		        (SELECT COUNT(*) FROM follows WHERE followee_id = u.id),
		        (SELECT COUNT(*) FROM follows WHERE follower_id = u.id)
		 FROM users u WHERE u.id = $1`,
		id,
	).Scan(&profile.ID, &profile.Handle, &profile.DisplayName,
		&profile.FollowerCount, &profile.FollowingCount)
	if isNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	profile.FriendCount, err = s.friends.FriendCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func scanUserSummaries(rows Rows) ([]models.UserSummary, error) {
	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Handle, &u.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	return users, nil
}
