// Package lock implements a redis SET NX distributed lock.
//
// The lock is a serialization fast path, not the correctness guarantee: the
// payment ledger still takes a row lock inside its database transaction. The
// redis lock keeps concurrent appends against the same transaction from
// piling up on that row lock.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrLockFailed = errors.New("acquire distributed lock failed")

type DistributedLock struct {
	client     *redis.Client
	key        string
	value      string // holder identity, checked on release
	expiration time.Duration
}

func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock attempts the lock without blocking. SET NX guarantees a single
// holder; the expiration keeps a crashed holder from leaving the key stuck.
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
}

// Lock retries TryLock up to maxRetries times, waiting retryInterval
// between attempts.
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

// Unlock releases the lock only when this instance still holds it. The
// check-and-delete runs as a Lua script so an expired-and-reacquired lock is
// never deleted by the previous holder.
func (l *DistributedLock) Unlock(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	_, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Result()
	return err
}

// NewPaymentLock creates the per-transaction lock taken while appending a
// payment. Scoping the key to the transaction id lets payments against
// different transactions proceed concurrently.
func NewPaymentLock(client *redis.Client, transactionID, holder string) *DistributedLock {
	key := fmt.Sprintf("payment:lock:transaction:%s", transactionID)
	return NewDistributedLock(client, key, holder, 30*time.Second)
}
