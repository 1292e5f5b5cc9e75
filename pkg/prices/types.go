// Package prices defines the normalized output shapes shared by the
// wholesale-market feed service and the marketplace listings aggregator,
// along with the rounding rules both apply.
package prices

import "math"

// Row is one aggregated price entry: the current best known price for a
// single product on a given source date.
type Row struct {
	Name          string  `json:"name"`
	NameEn        string  `json:"nameEn,omitempty"`
	Price         float64 `json:"price"`
	PreviousPrice float64 `json:"previousPrice"`
	Change        float64 `json:"change"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Date          string  `json:"date"`
	Count         int     `json:"count,omitempty"`
}

// ProductStat is a per-product aggregate inside a time bucket.
type ProductStat struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Avg  float64 `json:"avg"`
}

// DayBucket holds one calendar day of product aggregates. Days with no
// underlying data carry an empty (non-nil) Products slice.
type DayBucket struct {
	Date     string        `json:"date"`
	Products []ProductStat `json:"products"`
}

// HourBucket holds one hour of the current day. Hours with no underlying
// data are never emitted.
type HourBucket struct {
	Hour     int           `json:"hour"`
	Products []ProductStat `json:"products"`
}

// ChangePercent returns the day-over-day change as a signed percentage
// rounded to one decimal. A zero or absent previous value yields 0.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}

// Round2 rounds to two decimals, used by the listings weekly aggregates.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
