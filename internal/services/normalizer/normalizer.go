// Package normalizer turns a raw carrier call result (or failure) into a
// PollOutcome: the internal status, the raw code to record, and any timestamp
// side effects. It is the only place where the status code registry is
// consulted and it never touches storage.
package normalizer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
	"github.com/jammyops/parceltrack/internal/registry"
)

// Normalize resolves one completed carrier call. Every input combination
// yields an outcome with a non-empty Status: transport failures resolve to the
// Exception sentinel rather than leaving the shipment untouched.
func Normalize(reg *registry.Registry, carrierCode string, mode models.LookupMode, res carrier.Result, callErr error, now time.Time) models.PollOutcome {
	if callErr != nil {
		return normalizeError(reg, carrierCode, callErr)
	}

	if res.NotFound {
		// Valid 2xx "no match": a terminal poll result the scheduler will
		// retry on a later pass. Not stamped as a successful poll.
		return models.PollOutcome{
			Status:      models.StatusNotFoundInCarrier,
			UserMessage: res.NotFoundMessage,
		}
	}

	out := models.PollOutcome{
		StatusCode:  res.StatusCode,
		Polled:      true,
		PolledAt:    now,
		UserMessage: "tracking details updated",
	}
	if res.RecordedCode != "" {
		out.StatusCode = res.RecordedCode
	}
	if mode == models.ModeByReference {
		// Captured once; every later poll for this shipment runs by
		// tracking id.
		out.TrackingNumber = res.TrackingNumber
	}

	if entry, ok := reg.Lookup(carrierCode, models.PartitionSuccess, res.StatusCode); ok {
		out.Status = entry.NormalizedStatus
	} else if res.StatusDescription != "" {
		out.Status = res.StatusDescription
	} else {
		out.Status = models.StatusUnmapped
	}

	// Processing dwell-time rule, uniform across carriers: stamp the first
	// entry into Processing, clear once the shipment moves on.
	if out.Status == models.StatusProcessing {
		out.Effects = append(out.Effects, models.TimestampEffect{
			Field:  models.FieldFirstProcessingAt,
			Action: models.EffectSetIfAbsent,
		})
	} else {
		out.Effects = append(out.Effects, models.TimestampEffect{
			Field:  models.FieldFirstProcessingAt,
			Action: models.EffectClear,
		})
	}
	return out
}

func normalizeError(reg *registry.Registry, carrierCode string, callErr error) models.PollOutcome {
	out := models.PollOutcome{
		Status:      models.StatusException,
		Terminal:    true,
		UserMessage: "error while fetching data from carrier api",
		ErrorDetail: callErr.Error(),
	}

	var apiErr *carrier.APIError
	if !errors.As(callErr, &apiErr) {
		// Network-level failure, nothing to look up.
		return out
	}
	out.ErrorDetail = apiErr.Body
	if apiErr.Code == "" {
		// Unparseable error body: raw payload passes through untouched.
		return out
	}

	entry, ok := reg.Lookup(carrierCode, models.PartitionError, apiErr.Code)
	if !ok {
		// Structured but unregistered code: generic Exception, payload kept
		// for diagnostics.
		out.Terminal = false
		out.StatusCode = apiErr.Code
		return out
	}

	out.Terminal = false
	out.Status = entry.NormalizedStatus
	out.StatusCode = apiErr.Code
	if entry.Incident {
		out.Effects = append(out.Effects, models.TimestampEffect{
			Field:  models.FieldFirstIncidentAt,
			Action: models.EffectSetIfAbsent,
		})
	}
	return out
}
