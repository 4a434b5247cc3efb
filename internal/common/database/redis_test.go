package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-waitlist/internal/common/config"
)

func TestRedisOptions_FromConfig(t *testing.T) {
	opts := redisOptions(config.RedisConfig{
		Address:      "cache:6379",
		DB:           3,
		PoolSize:     25,
		MinIdle:      4,
		DialTimeout:  1500,
		ReadTimeout:  250,
		WriteTimeout: 400,
	})

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 25, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, 1500*time.Millisecond, opts.DialTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 400*time.Millisecond, opts.WriteTimeout)
}

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr(), PoolSize: 2, DialTimeout: 1000})
	defer c.Close()
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft store unreachable")
}

func TestRedisClient_CloseWithoutClient(t *testing.T) {
	assert.NoError(t, (&RedisClient{}).Close())
}
