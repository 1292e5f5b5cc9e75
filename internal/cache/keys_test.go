package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agropazar-api/internal/config"
)

func TestNewTTLSet(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Medium: 300, Long: 3600})
	require.Equal(t, 5*time.Minute, ttl.Medium)
	require.Equal(t, time.Hour, ttl.Long)

	// Zero values fall back to the built-in defaults.
	ttl = NewTTLSet(config.CacheTTL{})
	require.Equal(t, 10*time.Minute, ttl.Medium)
	require.Equal(t, 24*time.Hour, ttl.Long)
}

func TestSnapshotKeys(t *testing.T) {
	require.Equal(t, "agropazar:hal:snapshot", HalSnapshotKey())
	require.Equal(t, "agropazar:market:snapshot", MarketSnapshotKey())

	ttl := NewTTLSet(config.CacheTTL{Medium: 600, Long: 86400})
	require.Equal(t, 24*time.Hour, HalSnapshotTTL(ttl))
	require.Equal(t, 24*time.Hour, MarketSnapshotTTL(ttl))
}
