package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"agropazar-api/internal/svc"
	"agropazar-api/internal/types"
	"agropazar-api/pkg/prices"
)

// HalPricesHandler serves the ranked wholesale price snapshot.
func HalPricesHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := serverCtx.Hal.FetchSnapshot(r.Context())
		if rows == nil {
			rows = []prices.Row{}
		}
		httpx.OkJsonCtx(r.Context(), w, rows)
	}
}

// HalPricesAllHandler serves the full, uncapped wholesale price list.
func HalPricesAllHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := serverCtx.Hal.FetchAll(r.Context())
		if rows == nil {
			rows = []prices.Row{}
		}
		httpx.OkJsonCtx(r.Context(), w, rows)
	}
}

// HalPricesWeeklyHandler serves a seven day wholesale price breakdown,
// optionally narrowed to one product.
func HalPricesWeeklyHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ProductQuery
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		buckets := serverCtx.Hal.FetchWeekly(r.Context(), req.Product)
		if buckets == nil {
			buckets = []prices.DayBucket{}
		}
		httpx.OkJsonCtx(r.Context(), w, buckets)
	}
}
