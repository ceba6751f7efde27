package priorityhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
)

type Config struct {
	BaseURL      string
	TrackingPath string // e.g. /api/v2/track

	// IdentifierType tells Priority how to interpret identifierValue
	// (PurchaseOrder, SalesOrder...).
	IdentifierType string

	SweepLookbackDays int
}

type Client struct {
	cfg   Config
	httpc *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Code() string { return models.CarrierPriority }

func (c *Client) SweepStatuses() []string {
	return []string{models.StatusProcessing, models.StatusInTransit, models.StatusException}
}

func (c *Client) SweepLookbackDays() int { return c.cfg.SweepLookbackDays }

type priorityResponse struct {
	Shipments []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"shipments"`
}

// Track queries Priority by the reference id in every mode: their API has a
// single identifier-based endpoint and no separate by-tracking call.
func (c *Client) Track(ctx context.Context, _ models.LookupMode, sh *models.Shipment, token string) (carrier.Result, error) {
	if c.cfg.BaseURL == "" {
		return carrier.Result{}, errors.Wrap(carrier.ErrConfig, "priority base url is empty")
	}

	payload := map[string]any{
		"identifierType":  c.cfg.IdentifierType,
		"identifierValue": sh.ID,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "priority marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+c.cfg.TrackingPath, bytes.NewReader(b))
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "priority new request")
	}
	// Priority auths with an API key header, not a bearer token.
	req.Header.Set("X-API-KEY", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "priority do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return carrier.Result{}, errors.Wrap(err, "priority read body")
	}

	if resp.StatusCode/100 != 2 {
		// The error registry partition is keyed by the HTTP status string.
		return carrier.Result{}, &carrier.APIError{
			HTTPStatus: resp.StatusCode,
			Code:       strconv.Itoa(resp.StatusCode),
			Body:       string(body),
		}
	}

	var r priorityResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return carrier.Result{}, &carrier.APIError{HTTPStatus: resp.StatusCode, Body: string(body)}
	}
	if len(r.Shipments) == 0 {
		return carrier.Result{NotFound: true}, nil
	}
	shp := r.Shipments[0]

	return carrier.Result{
		TrackingNumber: shp.ID,
		// Freeform status description is the registry key; the recorded raw
		// code is the HTTP status, matching what the carrier exposes.
		StatusCode:        shp.Status,
		RecordedCode:      strconv.Itoa(resp.StatusCode),
		StatusDescription: shp.Status,
	}, nil
}
