package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"agropazar-api/internal/svc"
	"agropazar-api/internal/types"
	"agropazar-api/pkg/prices"
)

// MarketPricesHandler serves the aggregated marketplace listing snapshot.
// When the marketplace database is not configured the endpoint answers with
// an empty list instead of failing.
func MarketPricesHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := []prices.Row{}
		if serverCtx.Market != nil {
			if got := serverCtx.Market.Snapshot(r.Context()); got != nil {
				rows = got
			}
		}
		httpx.OkJsonCtx(r.Context(), w, rows)
	}
}

// MarketPricesWeeklyHandler serves a seven day marketplace breakdown.
func MarketPricesWeeklyHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ProductQuery
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		buckets := []prices.DayBucket{}
		if serverCtx.Market != nil {
			if got := serverCtx.Market.Weekly(r.Context(), req.Product); got != nil {
				buckets = got
			}
		}
		httpx.OkJsonCtx(r.Context(), w, buckets)
	}
}

// MarketPricesHourlyHandler serves today's hourly marketplace breakdown.
func MarketPricesHourlyHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ProductQuery
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		buckets := []prices.HourBucket{}
		if serverCtx.Market != nil {
			if got := serverCtx.Market.Hourly(r.Context(), req.Product); got != nil {
				buckets = got
			}
		}
		httpx.OkJsonCtx(r.Context(), w, buckets)
	}
}
