package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/store"
)

// tableDocumentID is the row id of the single route table document. The
// table is persisted wholesale as one JSON document, matching the
// replace-not-merge lifecycle of the in-memory copy.
const tableDocumentID = 1

// SqliteStore implements store.TableStore on a local sqlite database.
type SqliteStore struct {
	db *sqlx.DB
}

func NewSqliteStore(db *sqlx.DB) *SqliteStore {
	return &SqliteStore{db: db}
}

func (s *SqliteStore) Name() string {
	return "sqlite"
}

func (s *SqliteStore) ReadTable(ctx context.Context) (*domain.RouteTable, error) {
	var body []byte
	query := `SELECT body FROM route_tables WHERE id = ?`
	if err := s.db.GetContext(ctx, &body, query, tableDocumentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}

	var table domain.RouteTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to decode stored route table: %w", err)
	}
	if table.Routes == nil {
		table.Routes = map[string]domain.RouteDefinition{}
	}

	return &table, nil
}

func (s *SqliteStore) WriteTable(ctx context.Context, table *domain.RouteTable) error {
	body, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode route table: %w", err)
	}

	query := `
	INSERT INTO route_tables (id, body, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		body = excluded.body,
		updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, tableDocumentID, body, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write route table: %w", err)
	}

	return nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}
