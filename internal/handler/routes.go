// Code scaffolded by goctl. Safe to edit.

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"agropazar-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/hal/prices",
				Handler: HalPricesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/hal/prices/all",
				Handler: HalPricesAllHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/hal/prices/weekly",
				Handler: HalPricesWeeklyHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/market/prices",
				Handler: MarketPricesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/market/prices/weekly",
				Handler: MarketPricesWeeklyHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/market/prices/hourly",
				Handler: MarketPricesHourlyHandler(serverCtx),
			},
		},
	)
}
