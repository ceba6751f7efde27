package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/jammyops/parceltrack/internal/cache/rediscache"
	"github.com/jammyops/parceltrack/internal/models"
)

type stubIssuer struct {
	carrier string
	token   string
	ttl     time.Duration
	err     error
	calls   int
}

func (s *stubIssuer) Carrier() string { return s.carrier }

func (s *stubIssuer) Issue(context.Context) (string, time.Duration, error) {
	s.calls++
	return s.token, s.ttl, s.err
}

func newTestCache(t *testing.T, issuers ...Issuer) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(rediscache.New(mr.Addr()), issuers...), mr
}

func TestToken_IssuesOnceThenCaches(t *testing.T) {
	is := &stubIssuer{carrier: models.CarrierUPS, token: "tok-1", ttl: time.Hour}
	c, _ := newTestCache(t, is)
	ctx := context.Background()

	tok, err := c.Token(ctx, models.CarrierUPS)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	tok, err = c.Token(ctx, models.CarrierUPS)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.Equal(t, 1, is.calls)
}

func TestToken_ExpiryMarginApplied(t *testing.T) {
	is := &stubIssuer{carrier: models.CarrierFedEx, token: "tok-f", ttl: time.Hour}
	c, mr := newTestCache(t, is)

	_, err := c.Token(context.Background(), models.CarrierFedEx)
	require.NoError(t, err)

	ttl := mr.TTL("parcel:token:FEDEX")
	require.Equal(t, time.Hour-expiryMargin, ttl)
}

func TestToken_ShortProviderTTL(t *testing.T) {
	is := &stubIssuer{carrier: models.CarrierUPS, token: "tok-s", ttl: 30 * time.Second}
	c, mr := newTestCache(t, is)

	_, err := c.Token(context.Background(), models.CarrierUPS)
	require.NoError(t, err)
	require.Equal(t, time.Second, mr.TTL("parcel:token:UPS"))
}

func TestToken_ReissuesAfterExpiry(t *testing.T) {
	is := &stubIssuer{carrier: models.CarrierUPS, token: "tok-r", ttl: 10 * time.Minute}
	c, mr := newTestCache(t, is)
	ctx := context.Background()

	_, err := c.Token(ctx, models.CarrierUPS)
	require.NoError(t, err)

	mr.FastForward(10 * time.Minute)

	_, err = c.Token(ctx, models.CarrierUPS)
	require.NoError(t, err)
	require.Equal(t, 2, is.calls)
}

func TestToken_StaticKeyNeverExpires(t *testing.T) {
	c, mr := newTestCache(t, NewPriorityIssuer("key-123"))
	ctx := context.Background()

	tok, err := c.Token(ctx, models.CarrierPriority)
	require.NoError(t, err)
	require.Equal(t, "key-123", tok)

	mr.FastForward(240 * time.Hour)

	tok, err = c.Token(ctx, models.CarrierPriority)
	require.NoError(t, err)
	require.Equal(t, "key-123", tok)
}

func TestToken_MissingKeyIsIssuanceError(t *testing.T) {
	c, _ := newTestCache(t, NewPriorityIssuer(""))

	_, err := c.Token(context.Background(), models.CarrierPriority)
	require.ErrorIs(t, err, ErrIssuance)
}

func TestToken_NoIssuerForCarrier(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Token(context.Background(), models.CarrierUPS)
	require.ErrorIs(t, err, ErrIssuance)
}

func TestUPSIssuer_Issue(t *testing.T) {
	var gotMerchant, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMerchant = r.Header.Get("x-merchant-id")
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"ups-tok","expires_in":"14399"}`))
	}))
	defer srv.Close()

	is := NewUPSIssuer(srv.URL, "id", "secret", "acc-1")
	tok, ttl, err := is.Issue(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ups-tok", tok)
	require.Equal(t, 14399*time.Second, ttl)
	require.Equal(t, "acc-1", gotMerchant)
	require.Equal(t, "id", gotUser)
	require.Equal(t, "secret", gotPass)
}

func TestFedExIssuer_Issue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "id", r.PostForm.Get("client_id"))
		require.Equal(t, "secret", r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fdx-tok","expires_in":3599}`))
	}))
	defer srv.Close()

	is := NewFedExIssuer(srv.URL, "id", "secret")
	tok, ttl, err := is.Issue(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fdx-tok", tok)
	require.Equal(t, 3599*time.Second, ttl)
}

func TestOAuthIssuer_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, _, err := NewUPSIssuer(srv.URL, "id", "bad", "acc").Issue(context.Background())
	require.ErrorIs(t, err, ErrIssuance)

	_, _, err = NewFedExIssuer(srv.URL, "id", "bad").Issue(context.Background())
	require.ErrorIs(t, err, ErrIssuance)
}
