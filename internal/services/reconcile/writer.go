// Package reconcile applies a PollOutcome to the shipment record. It is the
// only writer of shipment status and timestamp fields and carries zero
// carrier-specific knowledge.
package reconcile

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
	"github.com/jammyops/parceltrack/internal/storage/pgshipment"
)

type Repository interface {
	ApplyShipmentUpdate(ctx context.Context, shipmentID string, upd pgshipment.ShipmentUpdate) error
}

type Writer struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Writer {
	return &Writer{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func NewWithClock(repo Repository, now func() time.Time) *Writer {
	return &Writer{repo: repo, now: now}
}

// Apply persists every field of the outcome as one logical update. Idempotent:
// all fields are last-write-wins except the set-if-absent timestamps, so
// re-applying the same outcome leaves the record unchanged.
func (w *Writer) Apply(ctx context.Context, shipmentID string, out models.PollOutcome) error {
	upd := pgshipment.ShipmentUpdate{
		Status: &out.Status,
	}
	if out.StatusCode != "" {
		upd.StatusCode = &out.StatusCode
	}
	if out.TrackingNumber != "" {
		upd.TrackingNumber = &out.TrackingNumber
	}
	if out.Polled {
		at := out.PolledAt
		if at.IsZero() {
			at = w.now()
		}
		upd.LastPolledAt = &at
	}

	now := w.now()
	for _, eff := range out.Effects {
		switch eff.Field {
		case models.FieldFirstProcessingAt:
			if eff.Action == models.EffectClear {
				upd.ClearFirstProcessing = true
			} else {
				upd.SetFirstProcessingAt = &now
			}
		case models.FieldFirstIncidentAt:
			if eff.Action == models.EffectClear {
				upd.ClearFirstIncident = true
			} else {
				upd.SetFirstIncidentAt = &now
			}
		}
	}

	if err := w.repo.ApplyShipmentUpdate(ctx, shipmentID, upd); err != nil {
		return errors.Wrap(err, "apply shipment update")
	}
	return nil
}
