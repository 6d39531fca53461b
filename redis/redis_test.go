package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/redis/go-redis/v9"
)

// memRedis implements the three commands PendingStore uses.
type memRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestPendingStore(t *testing.T) {
	ctx := context.Background()
	mem := newMemRedis()
	store := NewPendingStore(mem)

	p := booking.PendingBooking{
		Token:     "tok",
		Selection: booking.Selection{ServiceID: "s1", ProfessionalID: "p1", Date: "2026-10-20", Time: "10:00"},
		CreatedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, p, 30*time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mem.ttl[pendingPrefix+"tok"] != 30*time.Minute {
		t.Fatalf("expected ttl to be set, got %v", mem.ttl[pendingPrefix+"tok"])
	}

	got, err := store.Load(ctx, "tok")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Selection != p.Selection || !got.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("loaded %+v, want %+v", got, p)
	}

	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "tok"); !errors.Is(err, booking.ErrPendingExpired) {
		t.Fatalf("expected ErrPendingExpired, got %v", err)
	}
}

func TestPendingStore_Corrupt(t *testing.T) {
	mem := newMemRedis()
	mem.data[pendingPrefix+"bad"] = "{not json"

	_, err := NewPendingStore(mem).Load(context.Background(), "bad")
	if !errors.Is(err, booking.ErrPendingExpired) {
		t.Fatalf("expected ErrPendingExpired, got %v", err)
	}
}
