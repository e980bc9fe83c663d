package lock

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

// unreachableClient points at a port nothing listens on, so every command
// fails at dial time.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestUnlockReportsError(t *testing.T) {
	l := NewDistributedLock(unreachableClient(), "test:lock", "holder-1", time.Second)

	err := l.Unlock(context.Background())
	assert.Error(t, err)
}

func TestTryLockReportsError(t *testing.T) {
	l := NewDistributedLock(unreachableClient(), "test:lock", "holder-1", time.Second)

	ok, err := l.TryLock(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLockStopsOnContextCancel(t *testing.T) {
	l := NewDistributedLock(unreachableClient(), "test:lock", "holder-1", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Lock(ctx, 10*time.Millisecond, 3)
	assert.Error(t, err)
}

func TestNewPaymentLockKeyIsPerTransaction(t *testing.T) {
	a := NewPaymentLock(nil, "trans-a", "holder-1")
	b := NewPaymentLock(nil, "trans-b", "holder-1")

	assert.Equal(t, "payment:lock:transaction:trans-a", a.key)
	assert.NotEqual(t, a.key, b.key)
}
