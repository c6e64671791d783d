package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "auth:revoked:"

// TokenDenylist は失効済みトークンの jti を有効期限まで保持する
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist は TokenDenylist を作成する
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke はトークンを失効させる。ttl が 0 以下なら既に期限切れなので何もしない
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("トークン失効の登録に失敗: %w", err)
	}
	return nil
}

// IsRevoked はトークンが失効済みかを返す
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("トークン失効の確認に失敗: %w", err)
	}
	return true, nil
}
