package repo

import (
	"errors"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "agropazar-api/internal/cache"
	"agropazar-api/internal/model"
)

// Dependencies bundles the goctl models and shared infrastructure required by
// repository implementations.
type Dependencies struct {
	DBConn sqlx.SqlConn
	Redis  *redis.Redis
	TTL    cachekeys.TTLSet

	ListingsModel model.ListingsModel
}

// Set exposes strongly typed repositories to application logic.
type Set struct {
	Listings  *ListingSource
	Snapshots *SnapshotStore
}

// New constructs the repository set, validating required dependencies.
// The snapshot store is optional: it stays nil when Redis is not configured.
func New(deps Dependencies) (*Set, error) {
	if deps.ListingsModel == nil {
		return nil, errors.New("repo: missing ListingsModel dependency")
	}

	set := &Set{
		Listings: NewListingSource(deps.ListingsModel),
	}
	if deps.Redis != nil {
		set.Snapshots = NewSnapshotStore(deps.Redis, deps.TTL)
	}
	return set, nil
}
