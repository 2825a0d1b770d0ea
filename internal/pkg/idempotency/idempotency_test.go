package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTracker(t *testing.T) *StateTracker {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client)
}

func TestExec(t *testing.T) {
	ctx := context.Background()

	t.Run("RunsOnce", func(t *testing.T) {
		// Arrange
		tracker := newTestTracker(t)
		calls := 0
		fn := func(context.Context) error {
			calls++
			return nil
		}

		// Act
		first := tracker.Exec(ctx, "op", fn)
		second := tracker.Exec(ctx, "op", fn)

		// Assert
		if first != nil {
			t.Fatalf("first exec: %v", first)
		}
		if !errors.Is(second, ErrAlreadyCompleted) {
			t.Fatalf("expected ErrAlreadyCompleted, got %v", second)
		}
		if calls != 1 {
			t.Fatalf("expected one call, got %d", calls)
		}
	})

	t.Run("FailureIsRemembered", func(t *testing.T) {
		// Arrange
		tracker := newTestTracker(t)
		boom := errors.New("boom")

		// Act
		first := tracker.Exec(ctx, "op", func(context.Context) error { return boom })
		second := tracker.Exec(ctx, "op", func(context.Context) error { return nil })

		// Assert
		if !errors.Is(first, boom) {
			t.Fatalf("expected original error, got %v", first)
		}
		if !errors.Is(second, ErrAlreadyFailed) {
			t.Fatalf("expected ErrAlreadyFailed, got %v", second)
		}
	})

	t.Run("InProgressBlocksConcurrentCall", func(t *testing.T) {
		// Arrange
		tracker := newTestTracker(t)
		state, err := tracker.Acquire(ctx, "op", time.Minute)
		if err != nil || state != StateNone {
			t.Fatalf("acquire: state=%v err=%v", state, err)
		}

		// Act
		got := tracker.Exec(ctx, "op", func(context.Context) error { return nil })

		// Assert
		if !errors.Is(got, ErrAlreadyInProgress) {
			t.Fatalf("expected ErrAlreadyInProgress, got %v", got)
		}
	})

	t.Run("StateExpires", func(t *testing.T) {
		// Arrange
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		tracker := New(client)

		calls := 0
		fn := func(context.Context) error {
			calls++
			return nil
		}

		// Act
		if err := tracker.Exec(ctx, "op", fn, WithStateTTL(time.Second)); err != nil {
			t.Fatalf("first exec: %v", err)
		}
		mr.FastForward(2 * time.Second)
		err := tracker.Exec(ctx, "op", fn, WithStateTTL(time.Second))

		// Assert
		if err != nil {
			t.Fatalf("exec after expiry: %v", err)
		}
		if calls != 2 {
			t.Fatalf("expected fn to run again after state ttl, got %d calls", calls)
		}
	})
}
