package foreman

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

// SnapshotSource fetches the entity collections from the system of
// record.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) (maintenance.Snapshot, error)
}

// SnapshotCache persists a local copy of the collections for offline
// operation.
type SnapshotCache interface {
	ReplaceSnapshot(ctx context.Context, snap maintenance.Snapshot) error
	LoadSnapshot(ctx context.Context) (maintenance.Snapshot, error)
}

// SnapshotService supplies the read-only entity snapshots that every
// resolver and orchestrator call operates over. The service owns
// freshness; the core packages never fetch anything themselves.
type SnapshotService struct {
	source SnapshotSource
	cache  SnapshotCache
	log    zerolog.Logger
}

// NewSnapshotService creates a SnapshotService.
func NewSnapshotService(source SnapshotSource, cache SnapshotCache, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{source: source, cache: cache, log: log}
}

// Refresh fetches a fresh snapshot from the remote and updates the
// cache. A cache write failure is logged but does not fail the
// refresh; the fetched snapshot is still returned.
func (s *SnapshotService) Refresh(ctx context.Context) (maintenance.Snapshot, error) {
	snap, err := s.source.FetchSnapshot(ctx)
	if err != nil {
		return maintenance.Snapshot{}, fmt.Errorf("refresh snapshot: %w", err)
	}

	if err := s.cache.ReplaceSnapshot(ctx, snap); err != nil {
		s.log.Error().Err(err).Msg("failed to update snapshot cache")
	}

	return snap, nil
}

// Load returns a usable snapshot: fresh from the remote when
// reachable, otherwise the cached copy. Only a double failure (remote
// down and cache unreadable) is an error.
func (s *SnapshotService) Load(ctx context.Context) (maintenance.Snapshot, error) {
	snap, err := s.Refresh(ctx)
	if err == nil {
		return snap, nil
	}
	s.log.Warn().Err(err).Msg("remote unreachable, falling back to cached snapshot")

	cached, cacheErr := s.cache.LoadSnapshot(ctx)
	if cacheErr != nil {
		return maintenance.Snapshot{}, fmt.Errorf("load snapshot: remote failed (%w) and cache failed (%w)", err, cacheErr)
	}
	return cached, nil
}
