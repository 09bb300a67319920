package gate_test

import (
	"context"
	"testing"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
)

// countingResolver tracks how many times the inner resolver is hit.
type countingResolver struct {
	calls   int
	profile gate.Profile
}

func (r *countingResolver) Resolve(_ context.Context, _ string) (gate.Profile, error) {
	r.calls++
	return r.profile, nil
}

func TestCachedResolver_CachesWithinTTL(t *testing.T) {
	inner := &countingResolver{profile: gate.NewSetProfile("p", "view:invoice")}
	cached := gate.NewCachedResolver[string](inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := cached.Resolve(ctx, "u1")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !p.Has("view:invoice") {
			t.Fatal("wrong profile returned")
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner resolver hit %d times, want 1", inner.calls)
	}
}

func TestCachedResolver_Invalidate(t *testing.T) {
	inner := &countingResolver{profile: gate.NewSetProfile("p")}
	cached := gate.NewCachedResolver[string](inner, time.Minute)
	ctx := context.Background()

	cached.Resolve(ctx, "u1")
	cached.Invalidate("u1")
	cached.Resolve(ctx, "u1")

	if inner.calls != 2 {
		t.Errorf("inner resolver hit %d times after invalidation, want 2", inner.calls)
	}
}

func TestCachedResolver_Expiry(t *testing.T) {
	inner := &countingResolver{profile: gate.NewSetProfile("p")}
	cached := gate.NewCachedResolver[string](inner, 10*time.Millisecond)
	ctx := context.Background()

	cached.Resolve(ctx, "u1")
	time.Sleep(20 * time.Millisecond)
	cached.Resolve(ctx, "u1")

	if inner.calls != 2 {
		t.Errorf("inner resolver hit %d times after expiry, want 2", inner.calls)
	}
}

func TestCachedResolver_InvalidateAll(t *testing.T) {
	inner := &countingResolver{profile: gate.NewSetProfile("p")}
	cached := gate.NewCachedResolver[string](inner, time.Minute)
	ctx := context.Background()

	cached.Resolve(ctx, "u1")
	cached.Resolve(ctx, "u2")
	cached.InvalidateAll()
	cached.Resolve(ctx, "u1")

	if inner.calls != 3 {
		t.Errorf("inner resolver hit %d times, want 3", inner.calls)
	}
}
