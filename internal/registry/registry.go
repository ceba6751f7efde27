// Package registry holds the per-carrier mapping from raw carrier status and
// error codes to the internal status taxonomy. The tables are seeded into
// storage once by deployment tooling (cmd/parcel-seed) and loaded back into an
// in-memory Registry at the start of each sweep.
package registry

import "github.com/jammyops/parceltrack/internal/models"

type Registry struct {
	entries map[key]models.StatusCodeEntry
}

type key struct {
	carrier   string
	partition string
	code      string
}

func New(entries []models.StatusCodeEntry) *Registry {
	m := make(map[key]models.StatusCodeEntry, len(entries))
	for _, e := range entries {
		m[key{e.Carrier, e.Partition, e.Code}] = e
	}
	return &Registry{entries: m}
}

// Lookup returns the entry for (carrier, partition, rawCode). A miss is a
// legitimate outcome, not an error: the normalizer falls back to the carrier's
// own description, else "Unmapped".
func (r *Registry) Lookup(carrier, partition, rawCode string) (models.StatusCodeEntry, bool) {
	e, ok := r.entries[key{carrier, partition, rawCode}]
	return e, ok
}

func (r *Registry) Len() int { return len(r.entries) }

// SeedEntries returns the built-in tables for every carrier, used for the
// one-time idempotent population of the status_codes collection.
func SeedEntries() []models.StatusCodeEntry {
	var out []models.StatusCodeEntry
	out = append(out, upsSeed()...)
	out = append(out, fedexSeed()...)
	out = append(out, prioritySeed()...)
	return out
}
