package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *forecastCache) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return server, NewForecastCacheWithClient(client, 10*time.Minute).(*forecastCache)
}

func TestForecastCacheRoundTrip(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()

	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	balance := decimal.NewFromFloat(-200.50)

	t.Run("miss before set", func(t *testing.T) {
		cached, err := c.Get(ctx, date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cached != nil {
			t.Errorf("expected a miss, got %s", cached)
		}
	})

	t.Run("hit after set", func(t *testing.T) {
		if err := c.Set(ctx, date, balance); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cached, err := c.Get(ctx, date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cached == nil {
			t.Fatal("expected a hit")
		}
		if !cached.Equal(balance) {
			t.Errorf("expected %s, got %s", balance, cached)
		}
	})

	t.Run("dates do not collide", func(t *testing.T) {
		other := date.AddDate(0, 0, 1)
		cached, err := c.Get(ctx, other)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cached != nil {
			t.Errorf("expected a miss for the other date, got %s", cached)
		}
	})
}

func TestForecastCacheExpiry(t *testing.T) {
	server, c := newTestCache(t)
	ctx := context.Background()

	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	if err := c.Set(ctx, date, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server.FastForward(11 * time.Minute)

	cached, err := c.Get(ctx, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached != nil {
		t.Errorf("expected the entry expired, got %s", cached)
	}
}

func TestForecastCacheInvalidate(t *testing.T) {
	server, c := newTestCache(t)
	ctx := context.Background()

	for d := 0; d < 5; d++ {
		date := time.Date(2026, time.July, 15+d, 0, 0, 0, 0, time.UTC)
		if err := c.Set(ctx, date, decimal.NewFromInt(int64(d))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	server.Set("unrelated", "kept")

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for d := 0; d < 5; d++ {
		date := time.Date(2026, time.July, 15+d, 0, 0, 0, 0, time.UTC)
		cached, err := c.Get(ctx, date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cached != nil {
			t.Errorf("expected entry for %s dropped, got %s", date.Format("2006-01-02"), cached)
		}
	}

	if !server.Exists("unrelated") {
		t.Error("expected unrelated keys untouched")
	}
}

func TestForecastCacheCorruptEntryIsAMiss(t *testing.T) {
	server, c := newTestCache(t)
	ctx := context.Background()

	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	server.Set(forecastKey(date), "not a number")

	cached, err := c.Get(ctx, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached != nil {
		t.Errorf("expected a miss, got %s", cached)
	}
}
