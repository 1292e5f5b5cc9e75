package svc

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "agropazar-api/internal/cache"
	"agropazar-api/internal/config"
	"agropazar-api/internal/model"
	"agropazar-api/internal/persistence/halpersist"
	"agropazar-api/internal/repo"
	"agropazar-api/pkg/halprice"
	"agropazar-api/pkg/pazar"
)

type ServiceContext struct {
	Config config.Config

	FeedConfig *halprice.Config
	Hal        *halprice.Service
	Market     *pazar.Aggregator

	// Optional infrastructure, nil when not configured.
	DBConn        sqlx.SqlConn
	Redis         *redis.Redis
	ListingsModel model.ListingsModel
	Repos         *repo.Set
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
	}

	ttl := cachekeys.NewTTLSet(c.TTL)

	// Wholesale feed client and service. The Feed section is hydrated during
	// config load; defaults apply when absent.
	var clientOpts []halprice.Option
	var serviceOpts []halprice.ServiceOption
	if feed := c.Feed.Value; feed != nil {
		svc.FeedConfig = feed
		if feed.BaseURL != "" {
			clientOpts = append(clientOpts, halprice.WithBaseURL(feed.BaseURL))
		}
		if feed.HTTPTimeout > 0 {
			clientOpts = append(clientOpts, halprice.WithHTTPClient(&http.Client{Timeout: feed.HTTPTimeout}))
		}
		if feed.MaxRetries > 0 {
			clientOpts = append(clientOpts, halprice.WithMaxRetries(feed.MaxRetries))
		}
		if feed.SnapshotTTL > 0 {
			serviceOpts = append(serviceOpts, halprice.WithSnapshotTTL(feed.SnapshotTTL))
		}
		if feed.MaxBackDays > 0 {
			serviceOpts = append(serviceOpts, halprice.WithMaxBackDays(feed.MaxBackDays))
		}
		if feed.TopCount > 0 {
			serviceOpts = append(serviceOpts, halprice.WithTopCount(feed.TopCount))
		}
	}
	svc.Hal = halprice.NewService(halprice.NewClient(clientOpts...), serviceOpts...)

	if c.Redis.Host != "" {
		rds, err := redis.NewRedis(c.Redis)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		svc.Redis = rds
	}

	// The listings model rides on go-zero's cached sqlc connection, so it
	// needs both Postgres and Redis.
	if c.Postgres.DSN != "" && svc.Redis != nil {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		cacheConf := cache.CacheConf{{RedisConf: c.Redis, Weight: 100}}
		svc.ListingsModel = model.NewListingsModel(conn, cacheConf)
	}

	repos, err := repo.New(repo.Dependencies{
		DBConn:        svc.DBConn,
		Redis:         svc.Redis,
		TTL:           ttl,
		ListingsModel: svc.ListingsModel,
	})
	if err == nil {
		svc.Repos = repos
		svc.Market = pazar.NewAggregator(repos.Listings, pazar.WithSnapshotTTL(ttl.Medium))
	} else {
		logx.Infof("market aggregator disabled: %v", err)
	}

	if svc.Repos != nil && svc.Repos.Snapshots != nil {
		if persist := halpersist.NewService(svc.Repos.Snapshots); persist != nil {
			svc.Hal.SetPersistence(persist)
		}
		svc.seedHalSnapshot()
		if svc.Market != nil {
			svc.seedMarketSnapshot()
		}
	}

	return svc
}

// seedHalSnapshot restores the last good wholesale snapshot so the service can
// answer immediately after a restart. The copy is seeded with its original
// fetch time, so an old snapshot is served stale-only until the next refresh.
func (s *ServiceContext) seedHalSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, fetchedAt, ok, err := s.Repos.Snapshots.LoadHalSnapshot(ctx)
	if err != nil {
		logx.Errorf("seed wholesale snapshot: %v", err)
		return
	}
	if !ok {
		return
	}
	s.Hal.SeedSnapshot(rows, fetchedAt)
	logx.Infof("seeded wholesale snapshot: %d rows fetched at %s", len(rows), fetchedAt.Format(time.RFC3339))
}

// seedMarketSnapshot restores the last internal market snapshot written by
// the refresher.
func (s *ServiceContext) seedMarketSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, fetchedAt, ok, err := s.Repos.Snapshots.LoadMarketSnapshot(ctx)
	if err != nil {
		logx.Errorf("seed market snapshot: %v", err)
		return
	}
	if !ok {
		return
	}
	s.Market.SeedSnapshot(rows, fetchedAt)
	logx.Infof("seeded market snapshot: %d rows fetched at %s", len(rows), fetchedAt.Format(time.RFC3339))
}
