package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"agropazar-api/internal/cli"
	"agropazar-api/internal/config"
	"agropazar-api/internal/svc"
)

const (
	halInterval     = 15 * time.Minute // wholesale feed warm interval
	marketInterval  = 5 * time.Minute  // marketplace aggregation warm interval
	warmTimeout     = 30 * time.Second // timeout for a single warm pass
	shutdownTimeout = 10 * time.Second // grace period for shutdown
)

var configFile = flag.String("f", "etc/agropazar.yaml", "the config file")

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting price refresher...")

	appCfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[main] Failed to load config: %v", err)
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}
	log.Printf("  - Warm Intervals: hal=%s, market=%s", halInterval, marketInterval)

	svcCtx := svc.NewServiceContext(*appCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runHalWarmer(ctx, svcCtx)
	}()

	if svcCtx.Market != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runMarketWarmer(ctx, svcCtx)
		}()
	} else {
		log.Println("[market] No marketplace database configured, skipping market warmer")
	}

	log.Println("[main] Price refresher started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Price refresher stopped")
}

// runHalWarmer keeps the wholesale snapshot and full list warm.
func runHalWarmer(ctx context.Context, svcCtx *svc.ServiceContext) {
	ticker := time.NewTicker(halInterval)
	defer ticker.Stop()

	// Run once immediately on startup
	warmHal(ctx, svcCtx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[hal] Stopping wholesale warmer")
			return
		case <-ticker.C:
			warmHal(ctx, svcCtx)
		}
	}
}

// runMarketWarmer keeps the marketplace snapshot warm.
func runMarketWarmer(ctx context.Context, svcCtx *svc.ServiceContext) {
	ticker := time.NewTicker(marketInterval)
	defer ticker.Stop()

	warmMarket(ctx, svcCtx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[market] Stopping market warmer")
			return
		case <-ticker.C:
			warmMarket(ctx, svcCtx)
		}
	}
}

func warmHal(parentCtx context.Context, svcCtx *svc.ServiceContext) {
	if parentCtx.Err() != nil {
		return
	}

	func() {
		ctx, cancel := context.WithTimeout(parentCtx, warmTimeout)
		defer cancel()

		start := time.Now()
		rows := svcCtx.Hal.FetchSnapshot(ctx)
		log.Printf("[hal.snapshot] [OK] %d rows, took %dms", len(rows), time.Since(start).Milliseconds())
	}()

	func() {
		ctx, cancel := context.WithTimeout(parentCtx, warmTimeout)
		defer cancel()

		start := time.Now()
		rows := svcCtx.Hal.FetchAll(ctx)
		log.Printf("[hal.all] [OK] %d rows, took %dms", len(rows), time.Since(start).Milliseconds())
	}()

}

func warmMarket(parentCtx context.Context, svcCtx *svc.ServiceContext) {
	if parentCtx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parentCtx, warmTimeout)
	defer cancel()

	start := time.Now()
	rows := svcCtx.Market.Snapshot(ctx)
	log.Printf("[market.snapshot] [OK] %d rows, took %dms", len(rows), time.Since(start).Milliseconds())

	// Keep the durable copy current so a restarted API seeds from it.
	if len(rows) > 0 && svcCtx.Repos != nil && svcCtx.Repos.Snapshots != nil {
		if err := svcCtx.Repos.Snapshots.SaveMarketSnapshot(ctx, rows, time.Now()); err != nil {
			log.Printf("[market.snapshot] persist failed: %v", err)
		}
	}
}
