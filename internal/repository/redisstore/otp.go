// Package redisstore keeps short-lived one-time codes in Redis.
package redisstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeMismatch = errors.New("code is invalid or has expired")

type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCodeStore(addr string, ttl time.Duration) *CodeStore {
	return &CodeStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func key(email string) string {
	return "reset-code:" + email
}

// Issue generates a fresh 6-digit code for the email, replacing any
// earlier one, and stores it with the configured TTL.
func (s *CodeStore) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.client.Set(ctx, key(email), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Consume checks the code and deletes it on success; a code can only be
// used once.
func (s *CodeStore) Consume(ctx context.Context, email, code string) error {
	stored, err := s.client.Get(ctx, key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.client.Del(ctx, key(email)).Err()
}

func (s *CodeStore) Close() error {
	return s.client.Close()
}
