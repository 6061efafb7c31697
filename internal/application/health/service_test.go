package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f *fakePinger) Ping() error { return f.err }

func TestCollectHealth_AllConnected(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	result := CollectHealth(context.Background(), rdb, &fakePinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
}

func TestCollectHealth_NoRedisIsStillOk(t *testing.T) {
	result := CollectHealth(context.Background(), nil, &fakePinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "disabled", result.Dependencies["redis"].Status)
}

func TestCollectHealth_DBErrorIsIssue(t *testing.T) {
	result := CollectHealth(context.Background(), nil, &fakePinger{err: errors.New("connection refused")})
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestCollectHealth_NilDBIsDisconnected(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
}
