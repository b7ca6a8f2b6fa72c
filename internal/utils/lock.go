package utils

import (
	"context" // Context for lock acquisition
	"sync"    // In-process mutual exclusion
	"time"    // Lock TTL and retry interval

	"github.com/google/uuid"       // Lock ownership tokens
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging
)

// Locker serializes work on a key. Lock blocks until the key is free or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// KeyedMutex is an in-process Locker holding one mutex per key
type KeyedMutex struct {
	mu    sync.Mutex          // Guards locks
	locks map[string]*keyLock // Active keys
}

type keyLock struct {
	slot chan struct{} // Buffered with capacity 1; holding the token means holding the lock
	refs int           // Holders plus waiters
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

// Lock acquires the mutex for key
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key] // Reuse the entry if someone holds or waits on the key
	if !ok {
		l = &keyLock{slot: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.slot <- struct{}{}: // Acquired
		var once sync.Once
		return func() {
			once.Do(func() {
				<-l.slot
				k.release(key, l)
			})
		}, nil
	case <-ctx.Done(): // Caller gave up
		k.release(key, l)
		return nil, ctx.Err()
	}
}

// release drops a reference and forgets the key once nobody uses it
func (k *KeyedMutex) release(key string, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// unlockScript deletes the key only if the caller still owns it
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every process using the same Redis
type RedisLocker struct {
	rdb    *redis.Client // Redis client
	ttl    time.Duration // Lock expiry, bounds how long a crashed holder blocks others
	retry  time.Duration // Poll interval while the key is taken
	prefix string        // Key namespace
}

// NewRedisLocker creates a RedisLocker with the given lock TTL
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: 25 * time.Millisecond, prefix: "lock:"}
}

// Lock acquires key with SET NX PX and polls until it succeeds or ctx is done
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key // Namespaced key
	token := uuid.NewString() // Ownership token checked on release
	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, err // Redis error
		}
		if ok {
			return func() {
				// Release with a fresh context so a cancelled request still unlocks
				if err := unlockScript.Run(context.Background(), l.rdb, []string{fullKey}, token).Err(); err != nil {
					logrus.WithFields(logrus.Fields{
						"key":   fullKey,     // Lock key
						"error": err.Error(), // Error message
					}).Warn("Failed to release lock")
				}
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry): // Try again
		}
	}
}
