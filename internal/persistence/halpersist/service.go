package halpersist

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"agropazar-api/internal/repo"
	"agropazar-api/pkg/halprice"
	"agropazar-api/pkg/prices"
)

var _ halprice.Persistence = (*Service)(nil)

// Service mirrors freshly fetched wholesale snapshots into the durable store.
// Failures are logged and never propagate: persistence is a best-effort copy,
// not part of the serving path.
type Service struct {
	store *repo.SnapshotStore
	now   func() time.Time
}

// NewService wires a snapshot persistence hook. Returns nil when the store is
// not configured, which callers treat as "persistence disabled".
func NewService(store *repo.SnapshotStore) *Service {
	if store == nil {
		return nil
	}
	return &Service{store: store, now: time.Now}
}

// SaveSnapshot stores the ranked snapshot as the new last-good copy.
func (s *Service) SaveSnapshot(ctx context.Context, rows []prices.Row) {
	if s == nil || s.store == nil || len(rows) == 0 {
		return
	}
	if err := s.store.SaveHalSnapshot(ctx, rows, s.now()); err != nil {
		logx.WithContext(ctx).Errorf("halpersist: save snapshot: %v", err)
	}
}
