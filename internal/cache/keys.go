package cache

import (
	"strings"
	"time"

	"agropazar-api/internal/config"
)

// Namespace is the Redis key prefix for the agropazar application.
const Namespace = "agropazar"

// TTLSet normalises cache TTLs from config into time.Duration values.
// Medium gates the in-process market aggregation, Long is the retention of
// the durable snapshot copies in Redis.
type TTLSet struct {
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Medium: durationOrDefault(cfg.Medium, 10*time.Minute),
		Long:   durationOrDefault(cfg.Long, 24*time.Hour),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// HalSnapshotKey holds the durable copy of the last good wholesale snapshot.
func HalSnapshotKey() string {
	return formatKey("hal", "snapshot")
}

// MarketSnapshotKey holds the durable copy of the last internal market snapshot.
func MarketSnapshotKey() string {
	return formatKey("market", "snapshot")
}

// HalSnapshotTTL returns the retention of the durable wholesale snapshot.
// It is deliberately long: the copy exists to survive restarts, not to gate
// freshness (the in-process snapshot cache does that).
func HalSnapshotTTL(ttl TTLSet) time.Duration {
	return ttl.Long
}

// MarketSnapshotTTL returns the retention of the durable market snapshot.
func MarketSnapshotTTL(ttl TTLSet) time.Duration {
	return ttl.Long
}
