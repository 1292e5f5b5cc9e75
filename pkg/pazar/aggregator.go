// Package pazar computes synthetic market-price statistics from the
// platform's own active listings: a snapshot of current prices per product
// group, a weekly series, and an hourly series for the current day. Like the
// feed side, every public entry point degrades to stale or empty output
// rather than surfacing an error.
package pazar

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"agropazar-api/pkg/pricecache"
	"agropazar-api/pkg/prices"
)

const (
	defaultSnapshotTTL = 10 * time.Minute

	snapshotCacheKey = "market:snapshot"

	currentWindowDays  = 7
	previousWindowDays = 14
	weeklyDays         = 7
	hoursPerDay        = 24

	// allSentinel is a legacy catch-all sub-category; listings carrying it
	// are discarded from grouping.
	allSentinel = "ALL"
)

// Aggregator derives market price statistics from a listings Source.
type Aggregator struct {
	source Source
	cache  *pricecache.Cache[[]prices.Row]

	now         func() time.Time
	snapshotTTL time.Duration
}

// AggregatorOption customises an Aggregator.
type AggregatorOption func(*Aggregator)

// WithSnapshotTTL overrides the snapshot cache TTL.
func WithSnapshotTTL(ttl time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if ttl > 0 {
			a.snapshotTTL = ttl
		}
	}
}

// WithNow overrides the time source, mainly for tests.
func WithNow(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator constructs an aggregator over the given listings source.
func NewAggregator(source Source, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		source:      source,
		now:         time.Now,
		snapshotTTL: defaultSnapshotTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cache = pricecache.New(
		pricecache.WithClock[[]prices.Row](a.now),
		pricecache.WithAcceptFunc(func(rows []prices.Row) bool { return len(rows) > 0 }),
	)
	return a
}

// SeedSnapshot pre-populates the snapshot cache, typically from a durable
// copy loaded at startup. The fetch timestamp is preserved so a stale seed
// still triggers recomputation on the first request.
func (a *Aggregator) SeedSnapshot(rows []prices.Row, fetched time.Time) {
	if len(rows) == 0 {
		return
	}
	a.cache.StoreAt(snapshotCacheKey, rows, fetched)
}

// group accumulates one sub-category's listings in discovery order.
type group struct {
	key   string
	unit  string
	count int
	sum   float64
	min   float64
	max   float64
}

func (g *group) add(l Listing) {
	if g.count == 0 {
		g.unit = l.Unit
		g.min = l.Price
		g.max = l.Price
	} else {
		if l.Price < g.min {
			g.min = l.Price
		}
		if l.Price > g.max {
			g.max = l.Price
		}
	}
	g.count++
	g.sum += l.Price
}

func (g *group) avg() float64 {
	if g.count == 0 {
		return 0
	}
	return g.sum / float64(g.count)
}

// Snapshot returns one row per product group of the current window, sorted
// by descending listing count (stable). Percent change compares against the
// same group's average in the 8–14 day window.
func (a *Aggregator) Snapshot(ctx context.Context) (rows []prices.Row) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorf("pazar: Snapshot panic recovered: %v", r)
			if stale, ok := a.cache.Peek(snapshotCacheKey); ok {
				rows = stale
				return
			}
			rows = []prices.Row{}
		}
	}()

	out, err := a.cache.GetOrCompute(ctx, snapshotCacheKey, a.snapshotTTL, a.computeSnapshot)
	if err != nil {
		logx.WithContext(ctx).Errorf("pazar: snapshot unavailable: %v", err)
		return []prices.Row{}
	}
	return out
}

func (a *Aggregator) computeSnapshot(ctx context.Context) ([]prices.Row, error) {
	now := a.now()
	windowStart := now.AddDate(0, 0, -previousWindowDays)
	listings, err := a.source.ActivePricedSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	currentCutoff := now.AddDate(0, 0, -currentWindowDays)
	var current, previous []Listing
	for _, l := range listings {
		if !l.CreatedAt.Before(currentCutoff) {
			current = append(current, l)
		} else {
			previous = append(previous, l)
		}
	}

	currentGroups := groupListings(current)

	// A current window that yields no groups (no listings, or only sentinel
	// and blank-keyed ones) falls back to every active listing so the
	// endpoint never answers with nothing while the market has inventory.
	if len(currentGroups) == 0 {
		all, err := a.source.ActivePriced(ctx)
		if err != nil {
			return nil, err
		}
		currentGroups = groupListings(all)
	}

	previousGroups := groupListings(previous)
	prevAvg := make(map[string]float64, len(previousGroups))
	for _, g := range previousGroups {
		prevAvg[normalizeGroupKey(g.key)] = g.avg()
	}

	date := now.Format("2006-01-02")
	rows := make([]prices.Row, 0, len(currentGroups))
	for _, g := range currentGroups {
		avg := g.avg()
		previousAvg := prevAvg[normalizeGroupKey(g.key)]
		rows = append(rows, prices.Row{
			Name:          prices.TitleTurkish(g.key),
			Price:         avg,
			PreviousPrice: previousAvg,
			Change:        prices.ChangePercent(avg, previousAvg),
			Unit:          g.unit,
			Category:      resolveCategory(g.key),
			Min:           g.min,
			Max:           g.max,
			Date:          date,
			Count:         g.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows, nil
}

// Weekly returns exactly seven day buckets, oldest first. Days without
// matching listings carry an empty product list. The optional filter narrows
// listings whose sub-category or title contains it, case-insensitively.
func (a *Aggregator) Weekly(ctx context.Context, product string) (buckets []prices.DayBucket) {
	today := a.today()

	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorf("pazar: Weekly panic recovered: %v", r)
			buckets = emptyWeek(today)
		}
	}()

	since := today.AddDate(0, 0, -(weeklyDays - 1))
	listings, err := a.source.ActivePricedSince(ctx, since)
	if err != nil {
		logx.WithContext(ctx).Errorf("pazar: weekly query: %v", err)
		return emptyWeek(today)
	}
	if product != "" {
		listings = filterListings(listings, product)
	}

	byDay := make(map[string][]Listing)
	for _, l := range listings {
		byDay[l.CreatedAt.Format("2006-01-02")] = append(byDay[l.CreatedAt.Format("2006-01-02")], l)
	}

	buckets = make([]prices.DayBucket, 0, weeklyDays)
	for offset := weeklyDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset).Format("2006-01-02")
		buckets = append(buckets, prices.DayBucket{
			Date:     day,
			Products: groupStats(byDay[day]),
		})
	}
	return buckets
}

// Hourly returns one bucket per hour of the current day that has at least
// one listing; empty hours are omitted entirely. When the product filter
// matches nothing within an hour, that hour falls back to its unfiltered
// listings rather than disappearing.
func (a *Aggregator) Hourly(ctx context.Context, product string) (buckets []prices.HourBucket) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorf("pazar: Hourly panic recovered: %v", r)
			buckets = []prices.HourBucket{}
		}
	}()

	today := a.today()
	listings, err := a.source.ActivePricedSince(ctx, today)
	if err != nil {
		logx.WithContext(ctx).Errorf("pazar: hourly query: %v", err)
		return []prices.HourBucket{}
	}

	byHour := make(map[int][]Listing)
	for _, l := range listings {
		byHour[l.CreatedAt.Hour()] = append(byHour[l.CreatedAt.Hour()], l)
	}

	buckets = make([]prices.HourBucket, 0, len(byHour))
	for hour := 0; hour < hoursPerDay; hour++ {
		hourListings := byHour[hour]
		if len(hourListings) == 0 {
			continue
		}
		if product != "" {
			if filtered := filterListings(hourListings, product); len(filtered) > 0 {
				hourListings = filtered
			}
		}
		buckets = append(buckets, prices.HourBucket{
			Hour:     hour,
			Products: groupStats(hourListings),
		})
	}
	return buckets
}

// groupListings buckets listings by sub-category in discovery order. Blank
// sub-categories fall back to the first word of the title; the legacy "ALL"
// sentinel is discarded.
func groupListings(listings []Listing) []*group {
	index := make(map[string]*group)
	var ordered []*group
	for _, l := range listings {
		key := groupKey(l)
		if key == "" {
			continue
		}
		norm := normalizeGroupKey(key)
		if norm == allSentinel {
			continue
		}
		g, ok := index[norm]
		if !ok {
			g = &group{key: key}
			index[norm] = g
			ordered = append(ordered, g)
		}
		g.add(l)
	}
	return ordered
}

func groupKey(l Listing) string {
	if sub := strings.TrimSpace(l.SubCategory); sub != "" {
		return sub
	}
	fields := strings.Fields(l.Title)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func groupStats(listings []Listing) []prices.ProductStat {
	groups := groupListings(listings)
	stats := make([]prices.ProductStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, prices.ProductStat{
			Name: prices.TitleTurkish(g.key),
			Min:  prices.Round2(g.min),
			Max:  prices.Round2(g.max),
			Avg:  prices.Round2(g.avg()),
		})
	}
	return stats
}

func filterListings(listings []Listing, product string) []Listing {
	needle := normalizeGroupKey(product)
	if needle == "" {
		return listings
	}
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(normalizeGroupKey(l.SubCategory), needle) ||
			strings.Contains(normalizeGroupKey(l.Title), needle) {
			out = append(out, l)
		}
	}
	return out
}

func (a *Aggregator) today() time.Time {
	now := a.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func emptyWeek(today time.Time) []prices.DayBucket {
	buckets := make([]prices.DayBucket, 0, weeklyDays)
	for offset := weeklyDays - 1; offset >= 0; offset-- {
		buckets = append(buckets, prices.DayBucket{
			Date:     today.AddDate(0, 0, -offset).Format("2006-01-02"),
			Products: []prices.ProductStat{},
		})
	}
	return buckets
}
