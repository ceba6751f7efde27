package models

import "time"

// Timestamp side-effect actions. SetIfAbsent keeps an already-set value so a
// repeated poll cannot re-trigger a "first entered" timestamp.
const (
	EffectSetIfAbsent = "set_if_absent"
	EffectClear       = "clear"
)

// Timestamp fields the normalizer may touch.
const (
	FieldFirstProcessingAt = "first_processing_at"
	FieldFirstIncidentAt   = "first_incident_at"
)

type TimestampEffect struct {
	Field  string
	Action string
}

// PollOutcome is the sole contract between the response normalizer and the
// reconciliation writer. The writer applies it without any carrier-specific
// knowledge, as one atomic set of field changes.
type PollOutcome struct {
	Status         string
	TrackingNumber string // non-empty only when a by-reference poll discovered it
	StatusCode     string // last raw carrier code, informational

	Effects []TimestampEffect

	// Polled marks a successful (non-transport-error) completion: LastPolledAt
	// is stamped iff it is set.
	Polled   bool
	PolledAt time.Time

	// Terminal means the poll resolved on an error path and no further parsing
	// was possible.
	Terminal bool

	UserMessage string
	ErrorDetail string
}
