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

// UPSIssuer runs the UPS OAuth client-credentials flow. The merchant account
// number travels in the x-merchant-id header, client id/secret as basic auth.
type UPSIssuer struct {
	OAuthURL      string
	ClientID      string
	ClientSecret  string
	AccountNumber string

	httpc *http.Client
}

func NewUPSIssuer(oauthURL, clientID, clientSecret, accountNumber string) *UPSIssuer {
	return &UPSIssuer{
		OAuthURL:      oauthURL,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		AccountNumber: accountNumber,
		httpc:         &http.Client{Timeout: 15 * time.Second},
	}
}

func (i *UPSIssuer) Carrier() string { return models.CarrierUPS }

type oauthTokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   json.RawMessage `json:"expires_in"` // providers send both "3599" and 3599
}

func (r oauthTokenResponse) ttl() time.Duration {
	s := strings.Trim(string(r.ExpiresIn), `"`)
	var sec int
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0
		}
		sec = sec*10 + int(ch-'0')
	}
	return time.Duration(sec) * time.Second
}

func (i *UPSIssuer) Issue(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.OAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, errors.Wrap(err, "ups oauth request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("x-merchant-id", i.AccountNumber)
	req.SetBasicAuth(i.ClientID, i.ClientSecret)

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
		return "", 0, errors.Wrapf(ErrIssuance, "ups oauth http %d", resp.StatusCode)
	}

	var tr oauthTokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", 0, errors.Wrap(ErrIssuance, "ups oauth malformed response")
	}
	return tr.AccessToken, tr.ttl(), nil
}
