package upshttp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
)

type Config struct {
	ServerURL       string
	ByReferencePath string // e.g. /api/track/v1/reference/details/
	ByTrackingPath  string // e.g. /api/track/v1/details/

	AppName       string // transactionSrc header
	Locale        string
	RefNumberType string

	// LookbackDays is the by-reference pickup-date window [today-N, today].
	LookbackDays      int
	SweepLookbackDays int
}

type Client struct {
	cfg   Config
	httpc *http.Client
}

func New(cfg Config) *Client {
	if cfg.Locale == "" {
		cfg.Locale = "en_US"
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 30
	}
	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Code() string { return models.CarrierUPS }

// Scheduler re-polls open statuses plus documents the carrier never matched,
// until the posting-date window runs out.
func (c *Client) SweepStatuses() []string {
	return []string{models.StatusProcessing, models.StatusInTransit, models.StatusNotFoundInCarrier}
}

func (c *Client) SweepLookbackDays() int { return c.cfg.SweepLookbackDays }

type upsResponse struct {
	TrackResponse struct {
		Shipment []struct {
			Warnings []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"warnings"`
			Package []struct {
				TrackingNumber string `json:"trackingNumber"`
				CurrentStatus  struct {
					Code        string `json:"code"`
					Description string `json:"description"`
				} `json:"currentStatus"`
				Activity []struct {
					Status struct {
						StatusCode  string `json:"statusCode"`
						Description string `json:"description"`
					} `json:"status"`
				} `json:"activity"`
			} `json:"package"`
		} `json:"shipment"`
	} `json:"trackResponse"`
}

type upsErrorBody struct {
	Response struct {
		Errors []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"response"`
}

func (c *Client) Track(ctx context.Context, mode models.LookupMode, sh *models.Shipment, token string) (carrier.Result, error) {
	req, err := c.buildRequest(ctx, mode, sh, token)
	if err != nil {
		return carrier.Result{}, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "ups do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "ups read body")
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &carrier.APIError{HTTPStatus: resp.StatusCode, Body: string(body)}
		var eb upsErrorBody
		if json.Unmarshal(body, &eb) == nil && len(eb.Response.Errors) > 0 {
			apiErr.Code = eb.Response.Errors[0].Code
		}
		return carrier.Result{}, apiErr
	}

	var r upsResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return carrier.Result{}, &carrier.APIError{HTTPStatus: resp.StatusCode, Body: string(body)}
	}
	return parseShipment(mode, r, string(body))
}

func (c *Client) buildRequest(ctx context.Context, mode models.LookupMode, sh *models.Shipment, token string) (*http.Request, error) {
	if c.cfg.ServerURL == "" {
		return nil, errors.Wrap(carrier.ErrConfig, "ups server url is empty")
	}

	var endpoint string
	q := url.Values{}
	q.Set("locale", c.cfg.Locale)

	switch mode {
	case models.ModeByTrackingID:
		endpoint = c.cfg.ServerURL + c.cfg.ByTrackingPath + url.PathEscape(*sh.TrackingNumber)
		q.Set("returnSignature", "false")
		q.Set("returnMilestones", "false")
		q.Set("returnPOD", "false")
	default:
		endpoint = c.cfg.ServerURL + c.cfg.ByReferencePath + url.PathEscape(sh.ID)
		today := time.Now().UTC()
		q.Set("fromPickUpDate", today.AddDate(0, 0, -c.cfg.LookbackDays).Format("20060102"))
		q.Set("toPickUpDate", today.Format("20060102"))
		q.Set("refNumType", c.cfg.RefNumberType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ups new request")
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("transId", uuid.NewString())
	req.Header.Set("transactionSrc", c.cfg.AppName)
	return req, nil
}

func parseShipment(mode models.LookupMode, r upsResponse, raw string) (carrier.Result, error) {
	if len(r.TrackResponse.Shipment) == 0 {
		return carrier.Result{NotFound: true}, nil
	}
	shp := r.TrackResponse.Shipment[0]

	if len(shp.Warnings) > 0 {
		return carrier.Result{NotFound: true, NotFoundMessage: shp.Warnings[0].Message}, nil
	}
	if len(shp.Package) == 0 {
		return carrier.Result{NotFound: true}, nil
	}
	pkg := shp.Package[0]

	res := carrier.Result{}
	switch mode {
	case models.ModeByTrackingID:
		// Activity is documented newest-first; the first entry is the latest scan.
		if len(pkg.Activity) == 0 {
			return carrier.Result{NotFound: true}, nil
		}
		res.StatusCode = pkg.Activity[0].Status.StatusCode
		res.StatusDescription = pkg.Activity[0].Status.Description
	default:
		res.TrackingNumber = pkg.TrackingNumber
		res.StatusCode = pkg.CurrentStatus.Code
		res.StatusDescription = pkg.CurrentStatus.Description
		for _, p := range shp.Package {
			res.Packages = append(res.Packages, carrier.PackageStatus{
				TrackingNumber: p.TrackingNumber,
				StatusCode:     p.CurrentStatus.Code,
			})
		}
	}

	if res.StatusCode == "" {
		return carrier.Result{}, &carrier.APIError{HTTPStatus: http.StatusOK, Body: raw}
	}
	return res, nil
}
