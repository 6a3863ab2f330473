// internal/app/sessions.go
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

const (
	timeFormat    = "2006-01-02 15:04:05"
	sessionKeyTpl = "session:%s"
	tokenPrefix   = "sk-rodpenna-"
)

// SessionManager keeps login sessions in redis. The remember-me choice at
// login selects between the short session TTL and the long-lived one.
type SessionManager struct {
	enabled     bool
	redis       *redis.Client
	tokenHeader string
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

func NewSessionManager(config *Config) (*SessionManager, error) {
	if !config.Server.EnableAuth {
		return &SessionManager{enabled: false}, nil
	}

	opt, err := redis.ParseURL(config.Auth.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SessionManager{
		enabled:     true,
		redis:       client,
		tokenHeader: config.Auth.TokenHeader,
		sessionTTL:  time.Duration(config.Auth.SessionTTLHours) * time.Hour,
		rememberTTL: time.Duration(config.Auth.RememberTTLHours) * time.Hour,
	}, nil
}

func (m *SessionManager) Close() error {
	if m.redis != nil {
		return m.redis.Close()
	}
	return nil
}

func generateToken() (string, error) {
	randomBytes := make([]byte, 12)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return tokenPrefix + hex.EncodeToString(randomBytes), nil
}

func (m *SessionManager) Create(ctx context.Context, user *models.User, remember bool) (*models.SessionInfo, error) {
	if !m.enabled {
		return &models.SessionInfo{Username: user.Name, Role: user.Role}, nil
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := fmt.Sprintf(sessionKeyTpl, token)

	ttl := m.sessionTTL
	if remember {
		ttl = m.rememberTTL
	}

	pipe := m.redis.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"username":         user.Name,
		"role":             user.Role,
		"remember":         remember,
		"created_dttm_utc": now.Format(timeFormat),
	})
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.SessionInfo{
		Token:       token,
		Username:    user.Name,
		Role:        user.Role,
		Remember:    remember,
		CreatedTime: now,
	}, nil
}

func (m *SessionManager) Validate(ctx context.Context, username, token string) error {
	if !m.enabled {
		return nil
	}

	key := fmt.Sprintf(sessionKeyTpl, token)

	fields, err := m.redis.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Debug.Printf("Redis error: %v", err)
		return fmt.Errorf("redis error: %w", err)
	}
	if len(fields) == 0 {
		logger.Debug.Printf("Session not found for token %s", token)
		return fmt.Errorf("session not found")
	}

	if fields["username"] != username {
		logger.Debug.Printf(
			"Session user mismatch: header says %s, session holds %s",
			username,
			fields["username"],
		)
		return fmt.Errorf("invalid session")
	}

	return nil
}

func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if !m.enabled {
		return nil
	}
	return m.redis.Del(ctx, fmt.Sprintf(sessionKeyTpl, token)).Err()
}
