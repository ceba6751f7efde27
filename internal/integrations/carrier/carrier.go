// Package carrier defines the neutral contract between the polling pipeline
// and per-carrier tracking API clients. Each carrier implementation lives in
// its own subpackage (upshttp, fedexhttp, priorityhttp) and translates its
// API's response shape into a Result; everything downstream of the adapter is
// carrier-agnostic.
package carrier

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
)

// ErrConfig marks configuration failures (missing account mapping, empty base
// URL). These are fatal-and-alertable, not per-shipment recoverable; callers
// must not fold them into a shipment status.
var ErrConfig = errors.New("carrier config error")

type Adapter interface {
	// Code is the registry/config carrier key (models.CarrierUPS etc.).
	Code() string

	// Track issues one tracking call for the shipment in the given lookup
	// mode. A non-2xx response or a structured in-body carrier error comes
	// back as *APIError; any other error is transport-level.
	Track(ctx context.Context, mode models.LookupMode, sh *models.Shipment, token string) (Result, error)

	// SweepStatuses is the set of internal statuses the scheduler re-polls
	// for this carrier (a NULL status is always eligible).
	SweepStatuses() []string

	// SweepLookbackDays bounds the posting-date trailing window for sweeps.
	SweepLookbackDays() int
}

// PackageStatus is one per-package detail row (UPS by-reference responses can
// carry several packages per shipment).
type PackageStatus struct {
	TrackingNumber string
	StatusCode     string
}

// Result is a successfully transported carrier response, reduced to the fields
// the normalizer needs.
type Result struct {
	// NotFound is set when the carrier answered 2xx with an explicit
	// "no match" marker (UPS warnings array, empty result set). A valid
	// terminal poll result, not an error.
	NotFound        bool
	NotFoundMessage string

	// TrackingNumber is the carrier-returned tracking identifier, captured
	// on by-reference polls so every later poll runs by tracking id.
	TrackingNumber string

	// StatusCode is the raw code used as the registry lookup key.
	// RecordedCode, when non-empty, overrides what gets persisted as the
	// shipment's last raw code (Priority records the HTTP code while the
	// lookup key is the freeform status description).
	StatusCode   string
	RecordedCode string

	// StatusDescription is the carrier's human-readable status text, the
	// fallback when the registry has no entry for StatusCode.
	StatusDescription string

	Packages []PackageStatus
}

// APIError is a transport or carrier-level failure: non-2xx HTTP, a structured
// error object inside a 2xx body, or an unparseable payload. Body always holds
// the raw payload for the diagnostic sink.
type APIError struct {
	HTTPStatus int
	Code       string // structured carrier error code; empty if unparseable
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("carrier api error %s (http %d)", e.Code, e.HTTPStatus)
	}
	return fmt.Sprintf("carrier api error (http %d)", e.HTTPStatus)
}
