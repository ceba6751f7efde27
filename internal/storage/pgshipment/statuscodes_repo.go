package pgshipment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
)

// SeedStatusCodes populates the mapping tables from the built-in seed lists.
// Idempotent per (carrier, partition): a partition that already has rows is
// skipped entirely, so operator edits survive re-runs. Returns the number of
// inserted rows.
func (s *Storage) SeedStatusCodes(ctx context.Context, entries []models.StatusCodeEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	populated := map[[2]string]bool{}
	rows, err := tx.Query(ctx, `SELECT DISTINCT carrier, partition FROM status_codes`)
	if err != nil {
		return 0, errors.Wrap(err, "select populated partitions")
	}
	for rows.Next() {
		var carrier, partition string
		if err := rows.Scan(&carrier, &partition); err != nil {
			rows.Close()
			return 0, errors.Wrap(err, "scan partition")
		}
		populated[[2]string{carrier, partition}] = true
	}
	rows.Close()
	if rows.Err() != nil {
		return 0, errors.Wrap(rows.Err(), "rows")
	}

	inserted := 0
	for _, e := range entries {
		if populated[[2]string{e.Carrier, e.Partition}] {
			continue
		}
		_, err := tx.Exec(ctx, `
INSERT INTO status_codes (carrier, partition, code, carrier_description, normalized_status, incident)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (carrier, partition, code) DO NOTHING
`, e.Carrier, e.Partition, e.Code, e.CarrierDescription, e.NormalizedStatus, e.Incident)
		if err != nil {
			return 0, errors.Wrap(err, "insert status code")
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, errors.Wrap(err, "commit tx")
	}
	return inserted, nil
}

func (s *Storage) LoadStatusCodes(ctx context.Context) ([]models.StatusCodeEntry, error) {
	rows, err := s.db.Query(ctx, `
SELECT carrier, partition, code, carrier_description, normalized_status, incident
FROM status_codes
`)
	if err != nil {
		return nil, errors.Wrap(err, "select status codes")
	}
	defer rows.Close()

	var out []models.StatusCodeEntry
	for rows.Next() {
		var e models.StatusCodeEntry
		if err := rows.Scan(&e.Carrier, &e.Partition, &e.Code, &e.CarrierDescription, &e.NormalizedStatus, &e.Incident); err != nil {
			return nil, errors.Wrap(err, "scan status code")
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
