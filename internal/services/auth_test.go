package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeKV satisfies KV in memory. setErr simulates Redis being down.
type fakeKV struct {
	data    map[string]string
	setErr  error
	expires int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (kv *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if kv.setErr != nil {
		return kv.setErr
	}
	kv.data[key] = value
	return nil
}

func (kv *fakeKV) Get(ctx context.Context, key string) (string, error) {
	value, ok := kv.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (kv *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(kv.data, key)
	}
	return nil
}

func (kv *fakeKV) Expire(ctx context.Context, key string, ttl time.Duration) error {
	kv.expires++
	return nil
}

func TestAuthService_PasswordRoundTrip(t *testing.T) {
	svc := NewAuthService(&fakeDB{}, newFakeKV())

	hash, err := svc.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the password")
	}
	if !svc.VerifyPassword(hash, "correct horse battery staple") {
		t.Fatal("expected password to verify")
	}
	if svc.VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestAuthService_GenerateSessionToken(t *testing.T) {
	svc := NewAuthService(&fakeDB{}, newFakeKV())

	token, hash, err := svc.GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token))
	}
	if token == hash {
		t.Fatal("stored hash must differ from the token")
	}
	if hashToken(token) != hash {
		t.Fatal("hash does not match token")
	}
}

func TestAuthService_CreateAndValidateSession(t *testing.T) {
	userID := uuid.New()
	kv := newFakeKV()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(userValues(userID, "mira")...)
		},
	}
	svc := NewAuthService(db, kv)

	token, err := svc.CreateSession(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := kv.data[sessionKeyPrefix+hashToken(token)]; !ok {
		t.Fatal("expected session stored under hashed token")
	}

	user, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("expected user %s, got %s", userID, user.ID)
	}
	if kv.expires != 1 {
		t.Fatalf("expected sliding expiry refresh, got %d", kv.expires)
	}
}

func TestAuthService_CreateSession_RedisDownFallsBackToPostgres(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("connection refused")

	var insertSQL string
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			insertSQL = sql
			return fakeCommandTag{rowsAffected: 1}, nil
		},
	}
	svc := NewAuthService(db, kv)

	token, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !strings.Contains(insertSQL, "INSERT INTO sessions") {
		t.Fatalf("expected database fallback, got %q", insertSQL)
	}
}

func TestAuthService_ValidateSession_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return errorRow{err: pgx.ErrNoRows}
		},
	}
	svc := NewAuthService(db, newFakeKV())

	_, err := svc.ValidateSession(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	var deleted bool
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(sessionID, userID, "hash", time.Now().Add(-time.Hour), time.Now().Add(-48*time.Hour))
		},
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			deleted = strings.Contains(sql, "DELETE FROM sessions")
			return fakeCommandTag{rowsAffected: 1}, nil
		},
	}
	svc := NewAuthService(db, newFakeKV())

	_, err := svc.ValidateSession(context.Background(), "stale")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Fatal("expected expired session cleanup")
	}
}

func TestAuthService_DeleteSession(t *testing.T) {
	userID := uuid.New()
	kv := newFakeKV()
	var deletedSQL string
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			deletedSQL = sql
			return fakeCommandTag{rowsAffected: 1}, nil
		},
	}
	svc := NewAuthService(db, kv)

	token, err := svc.CreateSession(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteSession(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := kv.data[sessionKeyPrefix+hashToken(token)]; ok {
		t.Fatal("expected session removed from cache")
	}
	if !strings.Contains(deletedSQL, "DELETE FROM sessions") {
		t.Fatalf("expected database delete, got %q", deletedSQL)
	}
}
