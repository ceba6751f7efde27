package models

import "time"

// Carrier codes we poll. The registry and config are keyed by these.
const (
	CarrierUPS      = "UPS"
	CarrierFedEx    = "FEDEX"
	CarrierPriority = "PRIORITY"
)

// Внутренняя таксономия статусов (значения из таблиц соответствий перевозчиков).
const (
	StatusProcessing       = "Processing"
	StatusInTransit        = "In Transit"
	StatusInTransitDelayed = "In Transit, Delayed"
	StatusSplitInTransit   = "Split In Transit"
	StatusDelivered        = "Delivered"
	StatusCancelled        = "Cancelled"
	StatusException        = "Exception"
	StatusProcessed        = "Processed"
	StatusNotFound         = "Not Found"

	// Carrier responded 2xx but had no shipment matching our reference.
	StatusNotFoundInCarrier = "Not Found In Carrier System"
	StatusDNNotFound        = "DN Not Found"

	// Raw code seen but absent from the registry and no description to fall back on.
	StatusUnmapped = "Unmapped"
)

type LookupMode string

const (
	ModeByReference  LookupMode = "by_reference"
	ModeByTrackingID LookupMode = "by_tracking_id"
)

// Shipment is an externally-owned outbound delivery record. The polling engine
// reads identifiers and writes status/timestamp fields; it never creates or
// deletes shipments.
type Shipment struct {
	ID          string    `json:"id"`
	CarrierHint string    `json:"carrier_hint"`
	PostingDate time.Time `json:"posting_date"`

	TrackingNumber *string `json:"tracking_number,omitempty"`
	Status         *string `json:"status,omitempty"`
	StatusCode     *string `json:"status_code,omitempty"`

	LastPolledAt      *time.Time `json:"last_polled_at,omitempty"`
	FirstProcessingAt *time.Time `json:"first_processing_at,omitempty"`
	FirstIncidentAt   *time.Time `json:"first_incident_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LookupModeFor decides the lookup mode once per poll: a known tracking number
// switches the shipment permanently to by-tracking-id lookups.
func LookupModeFor(sh *Shipment) LookupMode {
	if sh.TrackingNumber != nil && *sh.TrackingNumber != "" {
		return ModeByTrackingID
	}
	return ModeByReference
}

// Registry partitions: carriers publish separate code tables for tracking
// statuses and for API error codes.
const (
	PartitionSuccess = "success"
	PartitionError   = "error"
)

// StatusCodeEntry maps one (carrier, partition, raw code) to the internal
// taxonomy. Code is always a case-sensitive string: numeric for UPS, two-letter
// for FedEx, freeform descriptions and HTTP status strings for Priority.
type StatusCodeEntry struct {
	Carrier            string
	Partition          string
	Code               string
	CarrierDescription string
	NormalizedStatus   string

	// Incident marks error entries that should stamp FirstIncidentAt
	// (e.g. Priority HTTP 500 "no shipments found").
	Incident bool
}

type ShipmentCreateInput struct {
	ID          string    `json:"id"`
	CarrierHint string    `json:"carrier_hint"`
	PostingDate time.Time `json:"posting_date"`

	// Optional: known upfront for shipments already labeled by the carrier.
	TrackingNumber *string `json:"tracking_number,omitempty"`
}
