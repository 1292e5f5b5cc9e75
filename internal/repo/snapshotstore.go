package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cachekeys "agropazar-api/internal/cache"
	"agropazar-api/pkg/prices"
)

// SnapshotStore keeps the last good price snapshots in Redis so a restarted
// process can serve data before its first successful refresh. Payloads are
// msgpack encoded.
type SnapshotStore struct {
	rds *redis.Redis
	ttl cachekeys.TTLSet
}

type snapshotEnvelope struct {
	FetchedAt time.Time    `msgpack:"fetched_at"`
	Rows      []prices.Row `msgpack:"rows"`
}

func NewSnapshotStore(rds *redis.Redis, ttl cachekeys.TTLSet) *SnapshotStore {
	return &SnapshotStore{rds: rds, ttl: ttl}
}

// SaveHalSnapshot overwrites the durable wholesale snapshot.
func (s *SnapshotStore) SaveHalSnapshot(ctx context.Context, rows []prices.Row, fetchedAt time.Time) error {
	return s.save(ctx, cachekeys.HalSnapshotKey(), cachekeys.HalSnapshotTTL(s.ttl), rows, fetchedAt)
}

// LoadHalSnapshot returns the durable wholesale snapshot and when it was fetched.
// The bool reports whether a snapshot was present.
func (s *SnapshotStore) LoadHalSnapshot(ctx context.Context) ([]prices.Row, time.Time, bool, error) {
	return s.load(ctx, cachekeys.HalSnapshotKey())
}

// SaveMarketSnapshot overwrites the durable internal market snapshot.
func (s *SnapshotStore) SaveMarketSnapshot(ctx context.Context, rows []prices.Row, fetchedAt time.Time) error {
	return s.save(ctx, cachekeys.MarketSnapshotKey(), cachekeys.MarketSnapshotTTL(s.ttl), rows, fetchedAt)
}

// LoadMarketSnapshot returns the durable internal market snapshot.
func (s *SnapshotStore) LoadMarketSnapshot(ctx context.Context) ([]prices.Row, time.Time, bool, error) {
	return s.load(ctx, cachekeys.MarketSnapshotKey())
}

func (s *SnapshotStore) save(ctx context.Context, key string, ttl time.Duration, rows []prices.Row, fetchedAt time.Time) error {
	if s == nil || s.rds == nil {
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	payload, err := msgpack.Marshal(snapshotEnvelope{FetchedAt: fetchedAt.UTC(), Rows: rows})
	if err != nil {
		return fmt.Errorf("repo: encode snapshot %s: %w", key, err)
	}
	seconds := int(ttl / time.Second)
	if seconds <= 0 {
		return s.rds.SetCtx(ctx, key, string(payload))
	}
	if err := s.rds.SetexCtx(ctx, key, string(payload), seconds); err != nil {
		return fmt.Errorf("repo: store snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) load(ctx context.Context, key string) ([]prices.Row, time.Time, bool, error) {
	if s == nil || s.rds == nil {
		return nil, time.Time{}, false, nil
	}
	raw, err := s.rds.GetCtx(ctx, key)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("repo: load snapshot %s: %w", key, err)
	}
	if raw == "" {
		return nil, time.Time{}, false, nil
	}
	var env snapshotEnvelope
	if err := msgpack.Unmarshal([]byte(raw), &env); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("repo: decode snapshot %s: %w", key, err)
	}
	return env.Rows, env.FetchedAt, len(env.Rows) > 0, nil
}
