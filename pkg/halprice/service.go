// Package halprice fetches daily wholesale-market price bulletins from a
// municipal open-data feed, normalizes product names, computes day-over-day
// change, and caches the aggregated results. Every public entry point
// degrades to the last good cache or an empty structure; callers never see
// an error from this layer.
package halprice

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"agropazar-api/pkg/pricecache"
	"agropazar-api/pkg/prices"
)

const (
	defaultSnapshotTTL = 30 * time.Minute
	defaultMaxBackDays = 5
	defaultTopCount    = 30

	snapshotCacheKey = "hal:snapshot"
	allCacheKey      = "hal:all"

	weeklyDays = 7
)

// errNoBulletin signals that the backward day-scan exhausted its budget
// without finding a single bulletin.
var errNoBulletin = errors.New("halprice: no bulletin within scan window")

// Service aggregates the external feed into snapshot and weekly shapes.
// Only the snapshot-shaped results are cached; the weekly series is
// recomputed per request.
type Service struct {
	client      *Client
	cache       *pricecache.Cache[[]prices.Row]
	persistence Persistence

	now         func() time.Time
	snapshotTTL time.Duration
	maxBackDays int
	topCount    int
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithSnapshotTTL overrides the cache TTL for all feed aggregations.
func WithSnapshotTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.snapshotTTL = ttl
		}
	}
}

// WithMaxBackDays overrides the backward day-scan budget.
func WithMaxBackDays(days int) ServiceOption {
	return func(s *Service) {
		if days > 0 {
			s.maxBackDays = days
		}
	}
}

// WithTopCount overrides the ranked snapshot cap.
func WithTopCount(count int) ServiceOption {
	return func(s *Service) {
		if count > 0 {
			s.topCount = count
		}
	}
}

// WithNow overrides the time source, mainly for tests.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a feed aggregation service around a Client.
func NewService(client *Client, opts ...ServiceOption) *Service {
	s := &Service{
		client:      client,
		now:         time.Now,
		snapshotTTL: defaultSnapshotTTL,
		maxBackDays: defaultMaxBackDays,
		topCount:    defaultTopCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	nonEmpty := func(rows []prices.Row) bool { return len(rows) > 0 }
	s.cache = pricecache.New(
		pricecache.WithClock[[]prices.Row](s.now),
		pricecache.WithAcceptFunc(nonEmpty),
	)
	return s
}

// SetPersistence wires a durable store for successful snapshots.
func (s *Service) SetPersistence(p Persistence) {
	s.persistence = p
}

// SeedSnapshot pre-populates the snapshot cache, typically from a durable
// copy loaded at startup. The fetch timestamp is preserved so a stale seed
// still triggers recomputation on the first request.
func (s *Service) SeedSnapshot(rows []prices.Row, fetched time.Time) {
	if len(rows) == 0 {
		return
	}
	s.cache.StoreAt(snapshotCacheKey, rows, fetched)
}

// FetchSnapshot returns the capped, popularity-ranked snapshot: at most one
// row per base key, at most topCount rows.
func (s *Service) FetchSnapshot(ctx context.Context) (rows []prices.Row) {
	defer s.recoverRows(ctx, "FetchSnapshot", snapshotCacheKey, &rows)

	out, err := s.cache.GetOrCompute(ctx, snapshotCacheKey, s.snapshotTTL, func(ctx context.Context) ([]prices.Row, error) {
		all, err := s.computeRows(ctx)
		if err != nil {
			return nil, err
		}
		ranked := rankAndDedupe(all, s.topCount)
		if s.persistence != nil && len(ranked) > 0 {
			s.persistence.SaveSnapshot(ctx, ranked)
		}
		return ranked, nil
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("halprice: snapshot unavailable: %v", err)
		return []prices.Row{}
	}
	return out
}

// FetchAll returns the uncapped snapshot, one row per raw bulletin record in
// feed order.
func (s *Service) FetchAll(ctx context.Context) (rows []prices.Row) {
	defer s.recoverRows(ctx, "FetchAll", allCacheKey, &rows)

	out, err := s.cache.GetOrCompute(ctx, allCacheKey, s.snapshotTTL, s.computeRows)
	if err != nil {
		logx.WithContext(ctx).Errorf("halprice: full snapshot unavailable: %v", err)
		return []prices.Row{}
	}
	return out
}

// FetchWeekly returns one bucket per calendar day for the last seven days,
// oldest first, always exactly seven regardless of feed coverage. Days
// without a bulletin are emitted with an empty product list. The optional
// product filter narrows rows by normalized-name containment.
func (s *Service) FetchWeekly(ctx context.Context, product string) (buckets []prices.DayBucket) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorf("halprice: FetchWeekly panic recovered: %v", r)
			buckets = emptyWeek(s.today())
		}
	}()

	return s.computeWeekly(ctx, normalizeKey(product))
}

// computeRows resolves the main and comparison days and builds one row per
// main-day record.
func (s *Service) computeRows(ctx context.Context) ([]prices.Row, error) {
	main, mainDate, prev, err := s.resolveDays(ctx)
	if err != nil {
		return nil, err
	}

	// The comparison lookup is exact-key only: a bulletin variant such as
	// "DOMATES SERA" does not inherit the prior price of plain "DOMATES".
	prevAvg := make(map[string]float64, len(prev))
	for _, rec := range prev {
		key := normalizeKey(rec.Name)
		if key == "" {
			continue
		}
		if _, ok := prevAvg[key]; !ok {
			prevAvg[key] = float64(rec.Average)
		}
	}

	date := mainDate.Format(feedDateLayout)
	rows := make([]prices.Row, 0, len(main))
	for _, rec := range main {
		norm := normalizeKey(rec.Name)
		if norm == "" {
			continue
		}
		entry := lookupCanonical(norm, rec.Kind)
		previous := prevAvg[norm]
		current := float64(rec.Average)
		rows = append(rows, prices.Row{
			Name:          displayName(rec.Name),
			NameEn:        entry.En,
			Price:         current,
			PreviousPrice: previous,
			Change:        prices.ChangePercent(current, previous),
			Unit:          unitLabel(rec.Unit),
			Category:      entry.Category,
			Min:           float64(rec.Min),
			Max:           float64(rec.Max),
			Date:          date,
		})
	}
	return rows, nil
}

// resolveDays walks backward from today to find the most recent day with at
// least one record (the main day), then continues from the day before the
// main day to find a comparison day. Either scan gives up after maxBackDays
// candidates; a missing comparison day is not an error.
func (s *Service) resolveDays(ctx context.Context) (main []RawRecord, mainDate time.Time, prev []RawRecord, err error) {
	today := s.today()

	for offset := 0; offset < s.maxBackDays; offset++ {
		day := today.AddDate(0, 0, -offset)
		records := s.fetchDay(ctx, day)
		if len(records) > 0 {
			main, mainDate = records, day
			break
		}
	}
	if main == nil {
		return nil, time.Time{}, nil, errNoBulletin
	}

	for offset := 1; offset <= s.maxBackDays; offset++ {
		day := mainDate.AddDate(0, 0, -offset)
		records := s.fetchDay(ctx, day)
		if len(records) > 0 {
			prev = records
			break
		}
	}
	return main, mainDate, prev, nil
}

// fetchDay retrieves one day's records, treating every failure as an empty
// day so the backward scan simply moves on.
func (s *Service) fetchDay(ctx context.Context, day time.Time) []RawRecord {
	bulletin, err := s.client.FetchDay(ctx, day)
	if err != nil {
		logx.WithContext(ctx).Errorf("halprice: fetch day %s: %v", day.Format(feedDateLayout), err)
		return nil
	}
	return bulletin.Records
}

func (s *Service) computeWeekly(ctx context.Context, filter string) []prices.DayBucket {
	today := s.today()
	buckets := make([]prices.DayBucket, 0, weeklyDays)
	for offset := weeklyDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		records := s.fetchDay(ctx, day)
		products := make([]prices.ProductStat, 0, len(records))
		for _, rec := range records {
			norm := normalizeKey(rec.Name)
			if norm == "" {
				continue
			}
			if filter != "" && !containsKey(norm, filter) {
				continue
			}
			products = append(products, prices.ProductStat{
				Name: displayName(rec.Name),
				Min:  float64(rec.Min),
				Max:  float64(rec.Max),
				Avg:  float64(rec.Average),
			})
		}
		buckets = append(buckets, prices.DayBucket{
			Date:     day.Format(feedDateLayout),
			Products: products,
		})
	}
	return buckets
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) recoverRows(ctx context.Context, op, key string, rows *[]prices.Row) {
	if r := recover(); r != nil {
		logx.WithContext(ctx).Errorf("halprice: %s panic recovered: %v", op, r)
		if stale, ok := s.cache.Peek(key); ok {
			*rows = stale
			return
		}
		*rows = []prices.Row{}
	}
}

// rankAndDedupe sorts rows by the fixed popularity ordering (stable, so
// equally-unranked rows keep feed order), then keeps the first row seen per
// base key until cap distinct keys are collected.
func rankAndDedupe(rows []prices.Row, limit int) []prices.Row {
	ranked := make([]prices.Row, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return popularityRank(normalizeKey(ranked[i].Name)) < popularityRank(normalizeKey(ranked[j].Name))
	})

	seen := make(map[string]bool, limit)
	out := make([]prices.Row, 0, limit)
	for _, row := range ranked {
		key := baseKey(row.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func containsKey(normName, normFilter string) bool {
	return normFilter == "" || strings.Contains(normName, normFilter)
}

func emptyWeek(today time.Time) []prices.DayBucket {
	buckets := make([]prices.DayBucket, 0, weeklyDays)
	for offset := weeklyDays - 1; offset >= 0; offset-- {
		buckets = append(buckets, prices.DayBucket{
			Date:     today.AddDate(0, 0, -offset).Format(feedDateLayout),
			Products: []prices.ProductStat{},
		})
	}
	return buckets
}
