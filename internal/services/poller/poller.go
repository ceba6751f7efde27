package poller

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/broker/messages"
	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/models"
	"github.com/jammyops/parceltrack/internal/registry"
	"github.com/jammyops/parceltrack/internal/services/normalizer"
)

type Repository interface {
	GetShipment(ctx context.Context, id string) (*models.Shipment, error)
	ListEligible(ctx context.Context, carrierHint string, statuses []string, windowStart time.Time) ([]*models.Shipment, error)
	ListIncidentFollowups(ctx context.Context, carrierHint, status string, maxAgeDays int, windowStart time.Time) ([]*models.Shipment, error)
	LoadStatusCodes(ctx context.Context) ([]models.StatusCodeEntry, error)
}

type OutcomeWriter interface {
	Apply(ctx context.Context, shipmentID string, out models.PollOutcome) error
}

type TokenSource interface {
	Token(ctx context.Context, carrier string) (string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// ErrorSink receives diagnostic records for error-path outcomes. Writes are
// best-effort: a sink failure never fails the poll.
type ErrorSink interface {
	LogError(ctx context.Context, title, message string) error
}

type Poller struct {
	repo     Repository
	writer   OutcomeWriter
	tokens   TokenSource
	producer Producer
	sink     ErrorSink

	adapters map[string]carrier.Adapter

	topic string

	sweepInterval        time.Duration
	incidentFollowupDays int

	triggerCh chan struct{}

	startedAtUnixNano   int64
	lastSweepUnixNano   atomic.Int64
	lastTriggerUnixNano atomic.Int64
	totalSwept          atomic.Int64
	totalPolled         atomic.Int64
	totalErrors         atomic.Int64
	lastErrorMu         sync.Mutex
	lastError           string
}

func New(repo Repository, writer OutcomeWriter, tokens TokenSource, adapters ...carrier.Adapter) *Poller {
	m := make(map[string]carrier.Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Code()] = a
	}
	return &Poller{
		repo:     repo,
		writer:   writer,
		tokens:   tokens,
		adapters: m,

		topic: messages.TopicShipmentStatusUpdated,

		sweepInterval:        30 * time.Minute,
		incidentFollowupDays: 6,

		triggerCh:         make(chan struct{}, 1),
		startedAtUnixNano: time.Now().UTC().UnixNano(),
	}
}

func (p *Poller) WithProducer(producer Producer, topic string) *Poller {
	p.producer = producer
	if topic != "" {
		p.topic = topic
	}
	return p
}

func (p *Poller) WithErrorSink(sink ErrorSink) *Poller {
	p.sink = sink
	return p
}

func (p *Poller) WithSettings(sweepInterval time.Duration, incidentFollowupDays int) *Poller {
	if sweepInterval > 0 {
		p.sweepInterval = sweepInterval
	}
	if incidentFollowupDays > 0 {
		p.incidentFollowupDays = incidentFollowupDays
	}
	return p
}

// Trigger forces an immediate sweep cycle (best-effort, non-blocking).
func (p *Poller) Trigger() {
	p.lastTriggerUnixNano.Store(time.Now().UTC().UnixNano())
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

type Stats struct {
	StartedAt     time.Time  `json:"startedAt"`
	LastSweepAt   *time.Time `json:"lastSweepAt,omitempty"`
	LastTriggerAt *time.Time `json:"lastTriggerAt,omitempty"`
	TotalSwept    int64      `json:"totalSwept"`
	TotalPolled   int64      `json:"totalPolled"`
	TotalErrors   int64      `json:"totalErrors"`
	LastError     string     `json:"lastError,omitempty"`
}

func (p *Poller) Stats() Stats {
	st := Stats{
		StartedAt:   time.Unix(0, p.startedAtUnixNano).UTC(),
		TotalSwept:  p.totalSwept.Load(),
		TotalPolled: p.totalPolled.Load(),
		TotalErrors: p.totalErrors.Load(),
	}
	if n := p.lastSweepUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastSweepAt = &t
	}
	if n := p.lastTriggerUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastTriggerAt = &t
	}
	p.lastErrorMu.Lock()
	st.LastError = p.lastError
	p.lastErrorMu.Unlock()
	return st
}

func (p *Poller) Run(ctx context.Context) error {
	t := time.NewTicker(p.sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			p.sweepAll(ctx)
		case <-p.triggerCh:
			p.sweepAll(ctx)
		}
	}
}

func (p *Poller) sweepAll(ctx context.Context) {
	p.lastSweepUnixNano.Store(time.Now().UTC().UnixNano())
	for code := range p.adapters {
		if err := p.SweepEligible(ctx, code); err != nil {
			p.noteError(err)
			slog.Error("sweep carrier", "carrier", code, "error", err.Error())
		}
	}
}

// SweepEligible polls every shipment of one carrier whose status is still
// non-terminal and whose posting date falls inside the adapter's trailing
// window. Shipments are polled sequentially: carrier tracking APIs tolerate a
// steady low rate far better than bursts.
func (p *Poller) SweepEligible(ctx context.Context, carrierCode string) error {
	ad, ok := p.adapters[carrierCode]
	if !ok {
		return errors.Errorf("unknown carrier %q", carrierCode)
	}

	reg, err := p.loadRegistry(ctx)
	if err != nil {
		return err
	}

	windowStart := time.Now().UTC().AddDate(0, 0, -ad.SweepLookbackDays())
	items, err := p.repo.ListEligible(ctx, carrierCode, ad.SweepStatuses(), windowStart)
	if err != nil {
		return errors.Wrap(err, "list eligible shipments")
	}

	seen := make(map[string]struct{}, len(items))
	for _, sh := range items {
		seen[sh.ID] = struct{}{}
	}

	// Priority lookups that earlier ended as a carrier-side incident come back
	// for re-checks for a few days: the record may appear in the carrier
	// system later.
	if carrierCode == models.CarrierPriority {
		followups, err := p.repo.ListIncidentFollowups(ctx, carrierCode, models.StatusDNNotFound, p.incidentFollowupDays, windowStart)
		if err != nil {
			return errors.Wrap(err, "list incident followups")
		}
		for _, sh := range followups {
			if _, ok := seen[sh.ID]; !ok {
				items = append(items, sh)
				seen[sh.ID] = struct{}{}
			}
		}
	}

	p.totalSwept.Add(int64(len(items)))

	for _, sh := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.pollOne(ctx, reg, ad, sh); err != nil {
			p.noteError(err)
			slog.Error("poll shipment", "shipment_id", sh.ID, "carrier", carrierCode, "error", err.Error())
		}
	}
	return nil
}

// PollShipment runs one on-demand poll for a single shipment.
func (p *Poller) PollShipment(ctx context.Context, carrierCode, shipmentID string) error {
	ad, ok := p.adapters[carrierCode]
	if !ok {
		return errors.Errorf("unknown carrier %q", carrierCode)
	}

	reg, err := p.loadRegistry(ctx)
	if err != nil {
		return err
	}

	sh, err := p.repo.GetShipment(ctx, shipmentID)
	if err != nil {
		return errors.Wrap(err, "get shipment")
	}
	return p.pollOne(ctx, reg, ad, sh)
}

func (p *Poller) pollOne(ctx context.Context, reg *registry.Registry, ad carrier.Adapter, sh *models.Shipment) error {
	mode := models.LookupModeFor(sh)

	// Аутентификация не удалась — запись не трогаем вообще.
	token, err := p.tokens.Token(ctx, ad.Code())
	if err != nil {
		return errors.Wrap(err, "issue carrier token")
	}

	res, callErr := ad.Track(ctx, mode, sh, token)
	if callErr != nil && errors.Is(callErr, carrier.ErrConfig) {
		p.logSink(ctx, "carrier config", callErr.Error())
		return callErr
	}

	out := normalizer.Normalize(reg, ad.Code(), mode, res, callErr, time.Now().UTC())

	if err := p.writer.Apply(ctx, sh.ID, out); err != nil {
		return err
	}
	p.totalPolled.Add(1)

	if out.ErrorDetail != "" {
		p.logSink(ctx, "carrier response error: "+sh.ID, out.ErrorDetail)
	}

	p.publish(ctx, ad.Code(), sh.ID, out)
	return nil
}

func (p *Poller) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	entries, err := p.repo.LoadStatusCodes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load status codes")
	}
	return registry.New(entries), nil
}

func (p *Poller) publish(ctx context.Context, carrierCode, shipmentID string, out models.PollOutcome) {
	if p.producer == nil {
		return
	}
	msg := messages.ShipmentStatusUpdated{
		ShipmentID:     shipmentID,
		Carrier:        carrierCode,
		Status:         out.Status,
		StatusCode:     out.StatusCode,
		TrackingNumber: out.TrackingNumber,
	}
	if out.Polled {
		at := out.PolledAt
		msg.PolledAt = &at
	}
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal kafka msg", "error", err.Error())
		return
	}
	// Доставка события вторична относительно записи в БД.
	if err := p.producer.Publish(ctx, p.topic, []byte(shipmentID), b); err != nil {
		slog.Warn("publish status update", "shipment_id", shipmentID, "error", err.Error())
	}
}

func (p *Poller) logSink(ctx context.Context, title, message string) {
	if p.sink == nil {
		return
	}
	if err := p.sink.LogError(ctx, title, message); err != nil {
		slog.Warn("write error log", "error", err.Error())
	}
}

func (p *Poller) noteError(err error) {
	p.totalErrors.Add(1)
	p.lastErrorMu.Lock()
	p.lastError = err.Error()
	p.lastErrorMu.Unlock()
}
