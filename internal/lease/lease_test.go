package lease

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	mr := miniredis.RunT(t)
	l, err := New(mr.Addr(), "", "test:lease")
	require.NoError(t, err)
	defer l.Close()

	ctx := context.Background()
	first, err := l.Acquire(ctx, "reconcile", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "reconcile", time.Minute)
	assert.ErrorIs(t, err, ErrHeld)

	require.NoError(t, first.Release(ctx))
	second, err := l.Acquire(ctx, "reconcile", time.Minute)
	require.NoError(t, err)
	require.NoError(t, second.Release(ctx))
}

func TestLeaseExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	l, err := New(mr.Addr(), "", "test:lease")
	require.NoError(t, err)
	defer l.Close()

	ctx := context.Background()
	stale, err := l.Acquire(ctx, "reconcile", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	fresh, err := l.Acquire(ctx, "reconcile", time.Minute)
	require.NoError(t, err)

	// A stale holder must not release the new holder's lease.
	require.NoError(t, stale.Release(ctx))
	_, err = l.Acquire(ctx, "reconcile", time.Minute)
	assert.ErrorIs(t, err, ErrHeld)
	require.NoError(t, fresh.Release(ctx))
}

func TestNewRequiresAddr(t *testing.T) {
	_, err := New(" ", "", "")
	assert.Error(t, err)
}
