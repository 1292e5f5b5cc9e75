package halprice

import (
	"context"

	"agropazar-api/pkg/prices"
)

// Persistence receives successfully computed snapshots so a durable copy
// outlives the process. Implementations must be best-effort; failures are
// logged by the caller, never propagated.
type Persistence interface {
	SaveSnapshot(ctx context.Context, rows []prices.Row)
}
