package pgshipment

import (
	"context"

	"github.com/pkg/errors"
)

// Shipments are created by the external fulfillment process; this service only
// mutates the status/timestamp columns. The schema here exists so local and
// test environments can stand up without that process.
func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS shipments (
  id TEXT PRIMARY KEY,
  carrier_hint TEXT NOT NULL,
  posting_date DATE NOT NULL,
  tracking_number TEXT NULL,
  status TEXT NULL,
  status_code TEXT NULL,
  last_polled_at TIMESTAMPTZ NULL,
  first_processing_at TIMESTAMPTZ NULL,
  first_incident_at TIMESTAMPTZ NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_sweep ON shipments(carrier_hint, posting_date)`,
		`
CREATE TABLE IF NOT EXISTS status_codes (
  id BIGSERIAL PRIMARY KEY,
  carrier TEXT NOT NULL,
  partition TEXT NOT NULL,
  code TEXT NOT NULL,
  carrier_description TEXT NOT NULL DEFAULT '',
  normalized_status TEXT NOT NULL,
  incident BOOLEAN NOT NULL DEFAULT FALSE,
  UNIQUE (carrier, partition, code)
)`,
		`
CREATE TABLE IF NOT EXISTS error_logs (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
