package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sunnycharan27/loopync/internal/models"
)

const (
	bcryptCost       = 12
	sessionDuration  = 30 * 24 * time.Hour
	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService is the authentication provider: it turns a session token
// into a verified user id for the relationship operations. Sessions
// live in Redis with a Postgres fallback.
type AuthService struct {
	db DB
	kv KV
}

func NewAuthService(db DB, kv KV) *AuthService {
	return &AuthService{db: db, kv: kv}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSessionToken returns a random token and its sha256 hash; only
// the hash is stored.
func (s *AuthService) GenerateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	token = hex.EncodeToString(bytes)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, tokenHash, err := s.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	if err := s.kv.Set(ctx, sessionKeyPrefix+tokenHash, userID.String(), sessionDuration); err != nil {
		// Redis down: fall back to the sessions table.
		_, err = s.db.Exec(ctx,
			"INSERT INTO sessions (user_id, token_hash, expires_at) VALUES ($1, $2, $3)",
			userID, tokenHash, time.Now().Add(sessionDuration),
		)
		if err != nil {
			return "", fmt.Errorf("creating session in database: %w", err)
		}
	}

	return token, nil
}

func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	tokenHash := hashToken(token)

	key := sessionKeyPrefix + tokenHash
	userIDStr, err := s.kv.Get(ctx, key)
	if err == nil {
		// Sliding expiry on active sessions.
		_ = s.kv.Expire(ctx, key, sessionDuration)

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("parsing user id: %w", err)
		}
		return s.getUserByID(ctx, userID)
	}

	var session models.Session
	err = s.db.QueryRow(ctx,
		"SELECT id, user_id, token_hash, expires_at, created_at FROM sessions WHERE token_hash = $1",
		tokenHash,
	).Scan(&session.ID, &session.UserID, &session.TokenHash, &session.ExpiresAt, &session.CreatedAt)
	if isNoRows(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_, _ = s.db.Exec(ctx, "DELETE FROM sessions WHERE id = $1", session.ID)
		return nil, ErrSessionExpired
	}

	return s.getUserByID(ctx, session.UserID)
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	tokenHash := hashToken(token)

	_ = s.kv.Del(ctx, sessionKeyPrefix+tokenHash)

	_, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE token_hash = $1", tokenHash)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *AuthService) getUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Handle, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if isNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}
