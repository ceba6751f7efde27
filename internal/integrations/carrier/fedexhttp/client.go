package fedexhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
)

type Config struct {
	ServerURL       string
	ByReferencePath string // e.g. /track/v1/referencenumbers
	ByTrackingPath  string // e.g. /track/v1/trackingnumbers

	Locale        string // x-locale header
	ReferenceType string // SHIPPER_REFERENCE etc.

	// AccountNumbers maps the shipment source (warehouse) to the FedEx
	// account the reference search must be scoped to. A shipment source with
	// no mapping is a configuration error, not a data error.
	AccountNumbers map[string]string

	// LookbackDays bounds shipDateEnd relative to the shipment posting date.
	LookbackDays      int
	SweepLookbackDays int
}

type Client struct {
	cfg   Config
	httpc *http.Client

	// sourceFor resolves a shipment to its account-mapping key. Hook for
	// tests; defaults to the carrier hint.
	sourceFor func(sh *models.Shipment) string
}

func New(cfg Config) *Client {
	if cfg.Locale == "" {
		cfg.Locale = "en_US"
	}
	if cfg.ReferenceType == "" {
		cfg.ReferenceType = "SHIPPER_REFERENCE"
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 30
	}
	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
		sourceFor: func(sh *models.Shipment) string { return sh.CarrierHint },
	}
}

func (c *Client) Code() string { return models.CarrierFedEx }

func (c *Client) SweepStatuses() []string {
	return []string{
		models.StatusProcessing,
		models.StatusInTransit,
		models.StatusInTransitDelayed,
		models.StatusSplitInTransit,
		models.StatusException,
	}
}

func (c *Client) SweepLookbackDays() int { return c.cfg.SweepLookbackDays }

type fedexResponse struct {
	Output struct {
		CompleteTrackResults []struct {
			TrackingNumber string `json:"trackingNumber"`
			TrackResults   []struct {
				LatestStatusDetail *struct {
					Code        string `json:"code"`
					Description string `json:"description"`
				} `json:"latestStatusDetail"`
				Error *struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			} `json:"trackResults"`
		} `json:"completeTrackResults"`
	} `json:"output"`
}

type fedexErrorBody struct {
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) Track(ctx context.Context, mode models.LookupMode, sh *models.Shipment, token string) (carrier.Result, error) {
	endpoint, payload, transactional, err := c.buildPayload(mode, sh)
	if err != nil {
		return carrier.Result{}, err
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "fedex marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "fedex new request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-locale", c.cfg.Locale)
	if transactional {
		req.Header.Set("x-customer-transaction-id", uuid.NewString())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "fedex do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "fedex read body")
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &carrier.APIError{HTTPStatus: resp.StatusCode, Body: string(body)}
		var eb fedexErrorBody
		if json.Unmarshal(body, &eb) == nil && len(eb.Errors) > 0 {
			apiErr.Code = eb.Errors[0].Code
		}
		return carrier.Result{}, apiErr
	}

	var r fedexResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return carrier.Result{}, &carrier.APIError{HTTPStatus: resp.StatusCode, Body: string(body)}
	}
	return parseTrackResults(r, string(body), resp.StatusCode)
}

func (c *Client) buildPayload(mode models.LookupMode, sh *models.Shipment) (endpoint string, payload map[string]any, transactional bool, err error) {
	if c.cfg.ServerURL == "" {
		return "", nil, false, errors.Wrap(carrier.ErrConfig, "fedex server url is empty")
	}

	if mode == models.ModeByTrackingID {
		endpoint = c.cfg.ServerURL + c.cfg.ByTrackingPath
		payload = map[string]any{
			"includeDetailedScans": true,
			"trackingInfo": []map[string]any{
				{"trackingNumberInfo": map[string]any{"trackingNumber": *sh.TrackingNumber}},
			},
		}
		return endpoint, payload, false, nil
	}

	account, ok := c.cfg.AccountNumbers[c.sourceFor(sh)]
	if !ok {
		return "", nil, false, errors.Wrapf(carrier.ErrConfig, "no fedex account number for source %q", c.sourceFor(sh))
	}

	endpoint = c.cfg.ServerURL + c.cfg.ByReferencePath
	payload = map[string]any{
		"referencesInformation": map[string]any{
			"type":          c.cfg.ReferenceType,
			"value":         sh.ID,
			"accountNumber": account,
			"carrierCode":   "FXFR",
			"shipDateBegin": sh.PostingDate.AddDate(0, 0, -2).Format("2006-01-02"),
			"shipDateEnd":   sh.PostingDate.AddDate(0, 0, c.cfg.LookbackDays).Format("2006-01-02"),
		},
		"includeDetailedScans": true,
	}
	return endpoint, payload, true, nil
}

func parseTrackResults(r fedexResponse, raw string, httpStatus int) (carrier.Result, error) {
	if len(r.Output.CompleteTrackResults) == 0 {
		return carrier.Result{NotFound: true}, nil
	}
	top := r.Output.CompleteTrackResults[0]
	if len(top.TrackResults) == 0 {
		return carrier.Result{NotFound: true}, nil
	}
	tr := top.TrackResults[0]

	// FedEx delivers per-shipment errors inside a 2xx envelope: no
	// latestStatusDetail, an error object instead.
	if tr.LatestStatusDetail == nil {
		apiErr := &carrier.APIError{HTTPStatus: httpStatus, Body: raw}
		if tr.Error != nil {
			apiErr.Code = tr.Error.Code
		}
		return carrier.Result{}, apiErr
	}

	return carrier.Result{
		TrackingNumber:    top.TrackingNumber,
		StatusCode:        tr.LatestStatusDetail.Code,
		StatusDescription: tr.LatestStatusDetail.Description,
	}, nil
}
