package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

var _ fiber.Storage = (*RedisStorage)(nil)

func TestConnect_Disabled(t *testing.T) {
	assert.Nil(t, Connect(&config.Config{}))
}

func TestConnect_Unreachable(t *testing.T) {
	assert.Nil(t, Connect(&config.Config{RedisAddr: "127.0.0.1:1"}))
}

func TestPing_NilClient(t *testing.T) {
	assert.EqualError(t, Ping(context.Background(), nil), "not configured")
}

func TestRedisStorage_EmptyKeysSkipRedis(t *testing.T) {
	s := NewRedisStorage(nil, "videotube:limiter:")

	val, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, s.Set("", []byte("1"), time.Minute))
	assert.NoError(t, s.Set("k", nil, time.Minute))
	assert.NoError(t, s.Delete(""))
	assert.NoError(t, s.Close())
	assert.Equal(t, "videotube:limiter:k", s.key("k"))
}
