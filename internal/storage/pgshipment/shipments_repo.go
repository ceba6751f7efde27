package pgshipment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
)

const shipmentColumns = `
  id, carrier_hint, posting_date,
  tracking_number, status, status_code,
  last_polled_at, first_processing_at, first_incident_at,
  created_at, updated_at`

// ShipmentUpdate is one atomic set of field changes. Nil pointers leave the
// column untouched; Set* timestamps keep an already-set value (set-if-absent);
// Clear* flags win over Set*.
type ShipmentUpdate struct {
	Status         *string
	StatusCode     *string
	TrackingNumber *string
	LastPolledAt   *time.Time

	SetFirstProcessingAt *time.Time
	ClearFirstProcessing bool
	SetFirstIncidentAt   *time.Time
	ClearFirstIncident   bool
}

// RegisterShipments mirrors externally-created delivery records into the
// shipments table. Existing rows are left as-is.
func (s *Storage) RegisterShipments(ctx context.Context, items []models.ShipmentCreateInput) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range items {
		_, err := tx.Exec(ctx, `
INSERT INTO shipments (id, carrier_hint, posting_date, tracking_number, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$5)
ON CONFLICT (id) DO NOTHING
`, it.ID, it.CarrierHint, it.PostingDate, it.TrackingNumber, now)
		if err != nil {
			return errors.Wrap(err, "insert shipment")
		}
	}

	return errors.Wrap(tx.Commit(ctx), "commit tx")
}

func (s *Storage) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	row := s.db.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
	sh, err := scanShipment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrShipmentNotFound, "id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "select shipment")
	}
	return sh, nil
}

func (s *Storage) GetShipmentsByIDs(ctx context.Context, ids []string) ([]*models.Shipment, error) {
	rows, err := s.db.Query(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "select shipments by ids")
	}
	defer rows.Close()
	return scanShipments(rows)
}

// ListEligible selects shipments for one sweep: carrier hint matches, posting
// date inside the trailing window, status absent or still transient for that
// carrier.
func (s *Storage) ListEligible(ctx context.Context, carrierHint string, statuses []string, windowStart time.Time) ([]*models.Shipment, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+shipmentColumns+`
FROM shipments
WHERE carrier_hint ILIKE '%' || $1 || '%'
  AND posting_date BETWEEN $2 AND now()
  AND (status IS NULL OR status = ANY($3))
ORDER BY posting_date ASC, id ASC
`, carrierHint, windowStart, statuses)
	if err != nil {
		return nil, errors.Wrap(err, "select eligible shipments")
	}
	defer rows.Close()
	return scanShipments(rows)
}

// ListIncidentFollowups re-selects shipments stuck in an incident status whose
// first incident is at most maxAgeDays old (Priority re-polls "DN Not Found"
// for six days after the incident started).
func (s *Storage) ListIncidentFollowups(ctx context.Context, carrierHint, status string, maxAgeDays int, windowStart time.Time) ([]*models.Shipment, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+shipmentColumns+`
FROM shipments
WHERE carrier_hint ILIKE '%' || $1 || '%'
  AND posting_date BETWEEN $2 AND now()
  AND status = $3
  AND first_incident_at IS NOT NULL
  AND first_incident_at + make_interval(days => $4) > now()
ORDER BY posting_date ASC, id ASC
`, carrierHint, windowStart, status, maxAgeDays)
	if err != nil {
		return nil, errors.Wrap(err, "select incident followups")
	}
	defer rows.Close()
	return scanShipments(rows)
}

// ApplyShipmentUpdate writes the outcome in a single statement so a storage
// failure can never leave a partial update behind.
func (s *Storage) ApplyShipmentUpdate(ctx context.Context, id string, upd ShipmentUpdate) error {
	tag, err := s.db.Exec(ctx, `
UPDATE shipments SET
  status = COALESCE($2, status),
  status_code = COALESCE($3, status_code),
  tracking_number = COALESCE($4, tracking_number),
  last_polled_at = COALESCE($5, last_polled_at),
  first_processing_at = CASE
    WHEN $6::boolean THEN NULL
    WHEN $7::timestamptz IS NOT NULL THEN COALESCE(first_processing_at, $7)
    ELSE first_processing_at
  END,
  first_incident_at = CASE
    WHEN $8::boolean THEN NULL
    WHEN $9::timestamptz IS NOT NULL THEN COALESCE(first_incident_at, $9)
    ELSE first_incident_at
  END,
  updated_at = now()
WHERE id = $1
`, id, upd.Status, upd.StatusCode, upd.TrackingNumber, upd.LastPolledAt,
		upd.ClearFirstProcessing, upd.SetFirstProcessingAt,
		upd.ClearFirstIncident, upd.SetFirstIncidentAt)
	if err != nil {
		return errors.Wrap(err, "update shipment")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrShipmentNotFound, "id %s", id)
	}
	return nil
}

func scanShipment(row pgx.Row) (*models.Shipment, error) {
	var sh models.Shipment
	if err := row.Scan(
		&sh.ID, &sh.CarrierHint, &sh.PostingDate,
		&sh.TrackingNumber, &sh.Status, &sh.StatusCode,
		&sh.LastPolledAt, &sh.FirstProcessingAt, &sh.FirstIncidentAt,
		&sh.CreatedAt, &sh.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sh, nil
}

func scanShipments(rows pgx.Rows) ([]*models.Shipment, error) {
	var out []*models.Shipment
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan shipment")
		}
		out = append(out, sh)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
