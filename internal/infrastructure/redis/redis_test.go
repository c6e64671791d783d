package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/config"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewClient(&config.RedisConfig{Host: mr.Host(), Port: mr.Port()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestNewClient_Options(t *testing.T) {
	client := NewClient(&config.RedisConfig{Host: "cache", Port: "6380", Password: "pw", DB: 2})
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, ioTimeout, opts.ReadTimeout)
	assert.Equal(t, ioTimeout, opts.WriteTimeout)
}

func TestPing_Unavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()

	err := Ping(context.Background(), client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), mr.Addr())
}
