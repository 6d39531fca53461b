package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/redis/go-redis/v9"
)

const pendingPrefix = "pending_booking:"

// NewClient connects to redis and checks the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	log.Infow("connected to redis", "addr", addr)
	return client, nil
}

// PendingStore keeps pending bookings as JSON under a per-token key that
// expires on its own.
type PendingStore struct {
	client redis.Cmdable
}

func NewPendingStore(client redis.Cmdable) *PendingStore {
	return &PendingStore{client: client}
}

var _ booking.PendingStore = (*PendingStore)(nil)

func (s *PendingStore) Save(ctx context.Context, p booking.PendingBooking, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pendingPrefix+p.Token, data, ttl).Err()
}

func (s *PendingStore) Load(ctx context.Context, token string) (booking.PendingBooking, error) {
	var p booking.PendingBooking
	data, err := s.client.Get(ctx, pendingPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, booking.ErrPendingExpired
	}
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warnw("dropping unreadable pending booking", "error", err)
		return p, booking.ErrPendingExpired
	}
	return p, nil
}

func (s *PendingStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, pendingPrefix+token).Err()
}
