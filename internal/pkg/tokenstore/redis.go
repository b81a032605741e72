package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// Redis key prefixes per token kind
const (
	refreshTokenKeyPrefix      = "token:refresh:"
	verificationTokenKeyPrefix = "token:verify:"
	resetTokenKeyPrefix        = "token:reset:"
)

// TokenStore keeps short-lived single-use tokens keyed by their opaque
// value, with Redis TTLs doing the expiry. It backs refresh tokens, email
// verification tokens and password reset tokens.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore constructs a Redis-backed token store. The client
// lifecycle is managed by the caller.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) set(ctx context.Context, key string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, key, strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *TokenStore) get(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("error reading token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed token payload: %w", err)
	}
	return userID, nil
}

// consume reads and deletes a token atomically enough for single-use
// semantics; GETDEL removes the key in the same round trip.
func (s *TokenStore) consume(ctx context.Context, key string) (int64, error) {
	val, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("error consuming token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed token payload: %w", err)
	}
	return userID, nil
}

// SaveRefreshToken stores a refresh token for a user with the given TTL
func (s *TokenStore) SaveRefreshToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.set(ctx, refreshTokenKeyPrefix+token, userID, ttl)
}

// GetRefreshToken resolves a refresh token to its user without consuming it
func (s *TokenStore) GetRefreshToken(ctx context.Context, token string) (int64, error) {
	return s.get(ctx, refreshTokenKeyPrefix+token)
}

// ConsumeRefreshToken resolves and invalidates a refresh token. Rotation
// means every refresh token is single-use.
func (s *TokenStore) ConsumeRefreshToken(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, refreshTokenKeyPrefix+token)
}

// DeleteRefreshToken removes a refresh token, e.g. on logout
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	return s.client.Del(ctx, refreshTokenKeyPrefix+token).Err()
}

// SaveVerificationToken stores an email verification token
func (s *TokenStore) SaveVerificationToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.set(ctx, verificationTokenKeyPrefix+token, userID, ttl)
}

// ConsumeVerificationToken resolves and invalidates a verification token
func (s *TokenStore) ConsumeVerificationToken(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, verificationTokenKeyPrefix+token)
}

// SavePasswordResetToken stores a password reset token
func (s *TokenStore) SavePasswordResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.set(ctx, resetTokenKeyPrefix+token, userID, ttl)
}

// ConsumePasswordResetToken resolves and invalidates a reset token
func (s *TokenStore) ConsumePasswordResetToken(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, resetTokenKeyPrefix+token)
}
