// Package lease provides a Redis-backed mutual exclusion lease so that only
// one portal instance runs the upload reconciler at a time.
package lease

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrHeld = errors.New("lease held by another instance")

// Only the holder's token may release the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	client *redis.Client
	prefix string
}

func New(addr, password, prefix string) (*Locker, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("lease redis addr is required")
	}
	if prefix == "" {
		prefix = "rihla:lease"
	}
	return &Locker{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
	}, nil
}

// Lease is a held lock. Release it when the guarded work is done; it expires
// on its own after the TTL if the holder dies.
type Lease struct {
	locker *Locker
	key    string
	token  string
}

// Acquire takes the named lease for ttl or returns ErrHeld.
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (*Lease, error) {
	key := fmt.Sprintf("%s:%s", l.prefix, name)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", name, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lease{locker: l, key: key, token: token}, nil
}

func (le *Lease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, le.locker.client, []string{le.key}, le.token).Err(); err != nil {
		return fmt.Errorf("release %s: %w", le.key, err)
	}
	return nil
}

func (l *Locker) Close() error {
	return l.client.Close()
}
