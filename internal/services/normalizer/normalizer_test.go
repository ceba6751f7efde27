package normalizer

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
	"github.com/jammyops/parceltrack/internal/registry"
)

func testRegistry() *registry.Registry {
	return registry.New(registry.SeedEntries())
}

func hasEffect(out models.PollOutcome, field, action string) bool {
	for _, e := range out.Effects {
		if e.Field == field && e.Action == action {
			return true
		}
	}
	return false
}

func TestNormalize_SuccessMappedCode(t *testing.T) {
	now := time.Now().UTC()
	out := Normalize(testRegistry(), models.CarrierUPS, models.ModeByTrackingID, carrier.Result{
		StatusCode: "5",
	}, nil, now)

	require.Equal(t, models.StatusInTransit, out.Status)
	require.Equal(t, "5", out.StatusCode)
	require.True(t, out.Polled)
	require.Equal(t, now, out.PolledAt)
	require.False(t, out.Terminal)
	require.True(t, hasEffect(out, models.FieldFirstProcessingAt, models.EffectClear))
}

func TestNormalize_TrackingNumberOnlyByReference(t *testing.T) {
	now := time.Now().UTC()
	res := carrier.Result{StatusCode: "5", TrackingNumber: "1Z999AA10123456784"}

	byRef := Normalize(testRegistry(), models.CarrierUPS, models.ModeByReference, res, nil, now)
	require.Equal(t, "1Z999AA10123456784", byRef.TrackingNumber)

	byID := Normalize(testRegistry(), models.CarrierUPS, models.ModeByTrackingID, res, nil, now)
	require.Empty(t, byID.TrackingNumber)
}

func TestNormalize_ProcessingStampsFirstEntry(t *testing.T) {
	now := time.Now().UTC()
	out := Normalize(testRegistry(), models.CarrierFedEx, models.ModeByReference, carrier.Result{
		StatusCode: "OC",
	}, nil, now)

	require.Equal(t, models.StatusProcessing, out.Status)
	require.True(t, hasEffect(out, models.FieldFirstProcessingAt, models.EffectSetIfAbsent))
	require.False(t, hasEffect(out, models.FieldFirstProcessingAt, models.EffectClear))
}

func TestNormalize_UnknownCodeFallsBackToDescription(t *testing.T) {
	now := time.Now().UTC()
	out := Normalize(testRegistry(), models.CarrierPriority, models.ModeByTrackingID, carrier.Result{
		StatusCode:        "Held At Customs",
		RecordedCode:      "200",
		StatusDescription: "Held At Customs",
	}, nil, now)

	require.Equal(t, "Held At Customs", out.Status)
	require.Equal(t, "200", out.StatusCode) // recorded code wins over the lookup key
}

func TestNormalize_UnknownCodeNoDescription(t *testing.T) {
	now := time.Now().UTC()
	out := Normalize(testRegistry(), models.CarrierUPS, models.ModeByTrackingID, carrier.Result{
		StatusCode: "999",
	}, nil, now)

	require.Equal(t, models.StatusUnmapped, out.Status)
}

func TestNormalize_NotFound(t *testing.T) {
	now := time.Now().UTC()
	out := Normalize(testRegistry(), models.CarrierUPS, models.ModeByReference, carrier.Result{
		NotFound:        true,
		NotFoundMessage: "No tracking information available",
	}, nil, now)

	require.Equal(t, models.StatusNotFoundInCarrier, out.Status)
	require.False(t, out.Polled)
	require.False(t, out.Terminal)
	require.Empty(t, out.Effects)
	require.Equal(t, "No tracking information available", out.UserMessage)
}

func TestNormalize_TransportErrorIsTerminalException(t *testing.T) {
	now := time.Now().UTC()
	out := Normalize(testRegistry(), models.CarrierUPS, models.ModeByTrackingID, carrier.Result{},
		errors.New("dial tcp: connection refused"), now)

	require.Equal(t, models.StatusException, out.Status)
	require.True(t, out.Terminal)
	require.False(t, out.Polled)
	require.Contains(t, out.ErrorDetail, "connection refused")
}

func TestNormalize_UnparseableErrorBody(t *testing.T) {
	now := time.Now().UTC()
	callErr := errors.Wrap(&carrier.APIError{HTTPStatus: 503, Body: "<html>bad gateway</html>"}, "ups track")

	out := Normalize(testRegistry(), models.CarrierUPS, models.ModeByTrackingID, carrier.Result{}, callErr, now)

	require.Equal(t, models.StatusException, out.Status)
	require.True(t, out.Terminal)
	require.Equal(t, "<html>bad gateway</html>", out.ErrorDetail)
	require.Empty(t, out.StatusCode)
}

func TestNormalize_RegisteredErrorCode(t *testing.T) {
	now := time.Now().UTC()
	callErr := &carrier.APIError{HTTPStatus: 500, Code: "INTERNAL.SERVER.ERROR", Body: `{"errors":[]}`}

	out := Normalize(testRegistry(), models.CarrierFedEx, models.ModeByTrackingID, carrier.Result{}, callErr, now)

	require.Equal(t, "Service Error, See fedex.com", out.Status)
	require.False(t, out.Terminal)
	require.False(t, out.Polled)
	require.Equal(t, "INTERNAL.SERVER.ERROR", out.StatusCode)
}

func TestNormalize_UnregisteredErrorCode(t *testing.T) {
	now := time.Now().UTC()
	callErr := &carrier.APIError{HTTPStatus: 400, Code: "SOME.NEW.CODE", Body: `{}`}

	out := Normalize(testRegistry(), models.CarrierFedEx, models.ModeByTrackingID, carrier.Result{}, callErr, now)

	require.Equal(t, models.StatusException, out.Status)
	require.False(t, out.Terminal)
	require.Equal(t, "SOME.NEW.CODE", out.StatusCode)
}

func TestNormalize_PriorityIncidentStampsFirstIncident(t *testing.T) {
	now := time.Now().UTC()
	callErr := &carrier.APIError{HTTPStatus: 500, Code: "500", Body: `{"message":"no shipments found"}`}

	out := Normalize(testRegistry(), models.CarrierPriority, models.ModeByTrackingID, carrier.Result{}, callErr, now)

	require.Equal(t, models.StatusDNNotFound, out.Status)
	require.True(t, hasEffect(out, models.FieldFirstIncidentAt, models.EffectSetIfAbsent))
	// An incident is never cleared by the normalizer, only re-stamped if absent.
	require.False(t, hasEffect(out, models.FieldFirstIncidentAt, models.EffectClear))
}

func TestNormalize_PriorityAuthError(t *testing.T) {
	now := time.Now().UTC()
	callErr := &carrier.APIError{HTTPStatus: 401, Code: "401", Body: `{"message":"bad key"}`}

	out := Normalize(testRegistry(), models.CarrierPriority, models.ModeByTrackingID, carrier.Result{}, callErr, now)

	require.Equal(t, models.StatusException, out.Status)
	require.False(t, hasEffect(out, models.FieldFirstIncidentAt, models.EffectSetIfAbsent))
}
