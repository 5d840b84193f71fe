package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisSessionPrefix = "trust:session:"
	redisAccountPrefix = "trust:account_sessions:" // set of tokens per account
)

// RedisSessionStore keeps sessions in Redis so they survive restarts and
// are shared between instances. Redis expires keys after SessionTTL.
type RedisSessionStore struct {
	client *redis.Client
	now    func() time.Time
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore connects to redisURL and verifies the connection.
// PRE: redisURL is a redis:// or rediss:// URL
// POST: returns a ready store or the connection error
func NewRedisSessionStore(ctx context.Context, redisURL string) (*RedisSessionStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisSessionStoreFromClient(client), nil
}

// NewRedisSessionStoreFromClient wraps an existing client.
func NewRedisSessionStoreFromClient(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, now: time.Now}
}

// Create stores a new session and returns the token.
// POST: key trust:session:<token> holds the JSON session with a SessionTTL expiry,
// and the token is indexed under its account
func (s *RedisSessionStore) Create(ctx context.Context, accountID, email, role string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(Session{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		CreatedAt: s.now(),
	})
	if err != nil {
		return "", err
	}
	indexKey := redisAccountPrefix + accountID
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisSessionPrefix+token, data, SessionTTL)
	pipe.SAdd(ctx, indexKey, token)
	pipe.Expire(ctx, indexKey, SessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get retrieves a session by token. Redis errors are logged and treated as no session.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (Session, bool) {
	data, err := s.client.Get(ctx, redisSessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false
	}
	if err != nil {
		slog.Error("session_lookup_failed", "error", err)
		return Session{}, false
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.Warn("session_decode_failed", "error", err)
		return Session{}, false
	}
	if session.Expired(s.now()) {
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisSessionPrefix+token).Err()
}

// DeleteForAccount removes every session indexed under accountID.
// Tokens that already expired are ignored by DEL.
func (s *RedisSessionStore) DeleteForAccount(ctx context.Context, accountID string) error {
	indexKey := redisAccountPrefix + accountID
	tokens, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("list account sessions: %w", err)
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, redisSessionPrefix+t)
	}
	keys = append(keys, indexKey)
	return s.client.Del(ctx, keys...).Err()
}

// Close releases the Redis connection pool.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
