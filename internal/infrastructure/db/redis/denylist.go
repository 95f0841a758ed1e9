package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked bearer tokens until their natural expiry.
// Keys hold a SHA-256 of the token, never the token itself.
// Key format: denylist:<sha256(token)>
type TokenDenylist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenDenylist creates a TokenDenylist wrapping the given client. Entries
// expire after ttl, which should match the token lifetime.
func NewTokenDenylist(client *redis.Client, ttl time.Duration) *TokenDenylist {
	return &TokenDenylist{client: client, ttl: ttl}
}

// Revoke marks a token as revoked for the remainder of its lifetime.
func (d *TokenDenylist) Revoke(ctx context.Context, token string) error {
	return d.client.Set(ctx, d.key(token), "1", d.ttl).Err()
}

// IsRevoked reports whether the token has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "denylist:" + hex.EncodeToString(sum[:])
}
