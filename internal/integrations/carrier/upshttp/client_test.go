package upshttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
)

func testShipment() *models.Shipment {
	return &models.Shipment{ID: "DN-1001", CarrierHint: models.CarrierUPS, PostingDate: time.Now().UTC()}
}

func newTestClient(serverURL string) *Client {
	return New(Config{
		ServerURL:       serverURL,
		ByReferencePath: "/api/track/v1/reference/details/",
		ByTrackingPath:  "/api/track/v1/details/",
		AppName:         "parceltrack",
		RefNumberType:   "FY",
		LookbackDays:    30,
	})
}

func TestTrack_ByReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/track/v1/reference/details/DN-1001", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("transId"))
		require.Equal(t, "parceltrack", r.Header.Get("transactionSrc"))

		q := r.URL.Query()
		require.Equal(t, "FY", q.Get("refNumType"))
		require.Len(t, q.Get("fromPickUpDate"), 8)
		require.Len(t, q.Get("toPickUpDate"), 8)

		_, _ = w.Write([]byte(`{"trackResponse":{"shipment":[{"package":[
			{"trackingNumber":"1Z999AA10123456784","currentStatus":{"code":"5","description":"On the Way"}},
			{"trackingNumber":"1Z999AA10123456785","currentStatus":{"code":"11","description":"Delivered"}}
		]}]}}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	require.NoError(t, err)
	require.False(t, res.NotFound)
	require.Equal(t, "1Z999AA10123456784", res.TrackingNumber)
	require.Equal(t, "5", res.StatusCode)
	require.Equal(t, "On the Way", res.StatusDescription)
	require.Len(t, res.Packages, 2)
}

func TestTrack_ByTrackingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/track/v1/details/1Z999AA10123456784", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "false", q.Get("returnSignature"))
		require.Equal(t, "false", q.Get("returnMilestones"))
		require.Equal(t, "false", q.Get("returnPOD"))

		_, _ = w.Write([]byte(`{"trackResponse":{"shipment":[{"package":[{"activity":[
			{"status":{"statusCode":"11","description":"Delivered"}},
			{"status":{"statusCode":"5","description":"On the Way"}}
		]}]}]}}`))
	}))
	defer srv.Close()

	tn := "1Z999AA10123456784"
	sh := testShipment()
	sh.TrackingNumber = &tn

	res, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByTrackingID, sh, "tok")
	require.NoError(t, err)
	// Первая запись activity — самый свежий скан.
	require.Equal(t, "11", res.StatusCode)
	require.Empty(t, res.TrackingNumber)
}

func TestTrack_WarningsMeanNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"trackResponse":{"shipment":[{"warnings":[
			{"code":"TW001","message":"Tracking Information Not Found"}
		]}]}}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	require.NoError(t, err)
	require.True(t, res.NotFound)
	require.Equal(t, "Tracking Information Not Found", res.NotFoundMessage)
}

func TestTrack_EmptyShipmentsMeanNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"trackResponse":{"shipment":[]}}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	require.NoError(t, err)
	require.True(t, res.NotFound)
}

func TestTrack_Non2xxWithStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"response":{"errors":[{"code":"TR034","message":"No tracking information"}]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	var apiErr *carrier.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
	require.Equal(t, "TR034", apiErr.Code)
}

func TestTrack_Non2xxUnparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	var apiErr *carrier.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Empty(t, apiErr.Code)
	require.Equal(t, `<html>bad gateway</html>`, apiErr.Body)
}

func TestTrack_MissingStatusCodeIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"trackResponse":{"shipment":[{"package":[{"trackingNumber":"1Z1","currentStatus":{}}]}]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	var apiErr *carrier.APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestTrack_EmptyServerURLIsConfigError(t *testing.T) {
	c := New(Config{})
	_, err := c.Track(context.Background(), models.ModeByReference, testShipment(), "tok")
	require.True(t, errors.Is(err, carrier.ErrConfig))
}
