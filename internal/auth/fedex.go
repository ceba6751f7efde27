package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
)

// FedExIssuer runs the FedEx OAuth client-credentials flow; unlike UPS, the
// client id/secret go in the form body.
type FedExIssuer struct {
	TokenURL     string
	ClientID     string
	ClientSecret string

	httpc *http.Client
}

func NewFedExIssuer(tokenURL, clientID, clientSecret string) *FedExIssuer {
	return &FedExIssuer{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		httpc:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (i *FedExIssuer) Carrier() string { return models.CarrierFedEx }

func (i *FedExIssuer) Issue(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {i.ClientID},
		"client_secret": {i.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, errors.Wrap(err, "fedex oauth request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := i.httpc.Do(req)
	if err != nil {
		return "", 0, errors.Wrap(ErrIssuance, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, errors.Wrap(ErrIssuance, err.Error())
	}
	if resp.StatusCode/100 != 2 {
		return "", 0, errors.Wrapf(ErrIssuance, "fedex oauth http %d", resp.StatusCode)
	}

	var tr oauthTokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", 0, errors.Wrap(ErrIssuance, "fedex oauth malformed response")
	}
	return tr.AccessToken, tr.ttl(), nil
}
