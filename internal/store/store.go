package store

import (
	"context"
	"errors"

	"github.com/nulzo/media-relay/internal/core/domain"
)

// ErrTableNotFound reports that a backend holds no route table yet.
var ErrTableNotFound = errors.New("route table not found")

// TableStore is the persistence collaborator contract. The core only
// requires this interface; it does not care which backend is wired in, and
// tolerates every backend being unavailable by degrading to memory-only
// configuration.
type TableStore interface {
	// Name identifies the backend in save reports and logs.
	Name() string

	// ReadTable loads the persisted route table. Returns ErrTableNotFound
	// when the backend is reachable but holds no table.
	ReadTable(ctx context.Context) (*domain.RouteTable, error)

	// WriteTable replaces the persisted route table wholesale.
	WriteTable(ctx context.Context, table *domain.RouteTable) error

	Close() error
}
