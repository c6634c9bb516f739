//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsdesk/newsdesk/internal/testutil"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	ctx := context.Background()
	c, err := New(ctx, testutil.RequireEnv(t, "TEST_REDIS_URL"))
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
	return c
}

func TestIntegrationCache_Headlines(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if _, err := c.GetHeadlines(ctx, "AI"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	want := []string{"first", "second", "third"}
	if err := c.SetHeadlines(ctx, "AI", want, time.Minute); err != nil {
		t.Fatalf("SetHeadlines failed: %v", err)
	}

	got, err := c.GetHeadlines(ctx, "ai")
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d headlines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("headline[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Replacing must not append.
	if err := c.SetHeadlines(ctx, "AI", []string{"only"}, time.Minute); err != nil {
		t.Fatalf("SetHeadlines failed: %v", err)
	}
	got, _ = c.GetHeadlines(ctx, "AI")
	if len(got) != 1 || got[0] != "only" {
		t.Errorf("after replace got %v", got)
	}
}

func TestIntegrationCache_AuthRateLimit(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	for i := 0; i < 3; i++ {
		res, err := c.CheckAuthRateLimit(ctx, "203.0.113.7", 1, 3)
		if err != nil {
			t.Fatalf("CheckAuthRateLimit failed: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}

	res, err := c.CheckAuthRateLimit(ctx, "203.0.113.7", 1, 3)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit failed: %v", err)
	}
	if res.Allowed {
		t.Error("request beyond burst should be rejected")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", res.RetryAfter)
	}
}
