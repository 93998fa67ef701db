package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/pkg/redis"
)

func TestConnect_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  redis.Config
		want error
	}{
		{"empty url", redis.Config{}, redis.ErrEmptyConnectionURL},
		{"bad url", redis.Config{ConnectionURL: "http://localhost"}, redis.ErrFailedToParseRedisConnString},
		{
			"unreachable",
			redis.Config{ConnectionURL: "redis://127.0.0.1:1/0", RetryAttempts: 2, RetryInterval: 10 * time.Millisecond, ConnectTimeout: time.Second},
			redis.ErrRedisNotReady,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := redis.Connect(context.Background(), tt.cfg)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
