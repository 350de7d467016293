package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/store"
	"go.uber.org/zap"
)

// Durability summarizes how a Replace fared against the persistence
// backends. The in-memory table is live regardless.
type Durability string

const (
	DurabilityFull        Durability = "full"
	DurabilityPartial     Durability = "partial"
	DurabilityFailed      Durability = "failed"
	DurabilityUnavailable Durability = "unavailable"
)

// BackendStatus is the per-backend outcome of a save.
type BackendStatus struct {
	Name  string `json:"name"`
	Saved bool   `json:"saved"`
	Error string `json:"error,omitempty"`
}

// ReplaceResult reports whether the new table was applied in memory and how
// durable the save was.
type ReplaceResult struct {
	Applied    bool            `json:"applied"`
	Durability Durability      `json:"durability"`
	Backends   []BackendStatus `json:"backends,omitempty"`
}

// ConfigStore owns the authoritative route table. The table is an immutable
// value replaced by whole-pointer substitution: the read path takes no locks
// and an in-flight request keeps whichever snapshot it captured at lookup
// time.
type ConfigStore struct {
	table    atomic.Pointer[domain.RouteTable]
	backends []store.TableStore
	logger   *zap.Logger
}

// NewConfigStore wires the persistence backends in priority order. No
// backends at all is a valid, memory-only deployment.
func NewConfigStore(logger *zap.Logger, backends ...store.TableStore) *ConfigStore {
	s := &ConfigStore{
		backends: backends,
		logger:   logger,
	}
	s.table.Store(domain.EmptyTable())
	return s
}

// Load obtains the initial table from the first backend that has one. Every
// failure degrades to the next backend and finally to the empty table; Load
// never fails the caller.
func (s *ConfigStore) Load(ctx context.Context) {
	for _, backend := range s.backends {
		table, err := backend.ReadTable(ctx)
		if err != nil {
			if errors.Is(err, store.ErrTableNotFound) {
				s.logger.Info("No route table in backend", zap.String("backend", backend.Name()))
			} else {
				s.logger.Warn("Failed to load route table",
					zap.String("backend", backend.Name()),
					zap.Error(err),
				)
			}
			continue
		}

		s.table.Store(table)
		s.logger.Info("Route table loaded",
			zap.String("backend", backend.Name()),
			zap.Int("routes", len(table.Routes)),
		)
		return
	}

	s.logger.Warn("No persisted route table found, starting with empty configuration")
	s.table.Store(domain.EmptyTable())
}

// Get returns the current table snapshot. No I/O.
func (s *ConfigStore) Get() *domain.RouteTable {
	return s.table.Load()
}

// Replace validates and atomically swaps the in-memory table, then persists
// it to every configured backend. A persistence failure does not roll back
// the swap: the new configuration is live even if durable storage failed,
// and the result tells the caller which backends kept up.
func (s *ConfigStore) Replace(ctx context.Context, table *domain.RouteTable) (*ReplaceResult, error) {
	if table == nil || table.Routes == nil {
		return nil, domain.BadRequestError("config payload must contain a routes mapping")
	}

	s.table.Store(table)

	result := &ReplaceResult{Applied: true}
	if len(s.backends) == 0 {
		result.Durability = DurabilityUnavailable
		return result, nil
	}

	saved := 0
	for _, backend := range s.backends {
		status := BackendStatus{Name: backend.Name(), Saved: true}
		if err := backend.WriteTable(ctx, table); err != nil {
			status.Saved = false
			status.Error = err.Error()
			s.logger.Error("Failed to persist route table",
				zap.String("backend", backend.Name()),
				zap.Error(err),
			)
		} else {
			saved++
		}
		result.Backends = append(result.Backends, status)
	}

	switch {
	case saved == len(s.backends):
		result.Durability = DurabilityFull
	case saved > 0:
		result.Durability = DurabilityPartial
	default:
		result.Durability = DurabilityFailed
	}

	return result, nil
}
