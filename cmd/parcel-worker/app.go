package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jammyops/parceltrack/config"
	"github.com/jammyops/parceltrack/internal/auth"
	"github.com/jammyops/parceltrack/internal/broker/kafka"
	"github.com/jammyops/parceltrack/internal/cache/rediscache"
	"github.com/jammyops/parceltrack/internal/integrations/carrier"
	"github.com/jammyops/parceltrack/internal/integrations/carrier/fake"
	"github.com/jammyops/parceltrack/internal/integrations/carrier/fedexhttp"
	"github.com/jammyops/parceltrack/internal/integrations/carrier/priorityhttp"
	"github.com/jammyops/parceltrack/internal/integrations/carrier/upshttp"
	"github.com/jammyops/parceltrack/internal/models"
	"github.com/jammyops/parceltrack/internal/services/poller"
	"github.com/jammyops/parceltrack/internal/services/reconcile"
	"github.com/jammyops/parceltrack/internal/services/shipments"
	"github.com/jammyops/parceltrack/internal/storage/pgshipment"
)

// invalidatingWriter drops the cached current state of a shipment right after
// its status row changes.
type invalidatingWriter struct {
	w   *reconcile.Writer
	svc *shipments.Service
}

func (iw *invalidatingWriter) Apply(ctx context.Context, shipmentID string, out models.PollOutcome) error {
	if err := iw.w.Apply(ctx, shipmentID, out); err != nil {
		return err
	}
	iw.svc.InvalidateCurrent(ctx, shipmentID)
	return nil
}

// workerStorage is everything the worker needs from Postgres: the sweep
// queries, the atomic status writes, shipment registration/reads and the
// error log.
type workerStorage interface {
	poller.Repository
	reconcile.Repository
	poller.ErrorSink
	shipments.Repository
}

type workerFactories struct {
	newStorage      func(cfg *config.Config) (st workerStorage, closeFn func(), err error)
	newProducer     func(cfg *config.Config) poller.Producer
	newTokens       func(cfg *config.Config) poller.TokenSource
	newAdapters     func(cfg *config.Config) []carrier.Adapter
	newCurrentCache func(cfg *config.Config) shipments.BytesCache
}

// staticTokens раздаёт пустой токен — для fake-интеграций.
type staticTokens struct{}

func (staticTokens) Token(context.Context, string) (string, error) { return "", nil }

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStorage: func(cfg *config.Config) (workerStorage, func(), error) {
			sslMode := cfg.Database.SSLMode
			if sslMode == "" {
				sslMode = "disable"
			}
			connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
				cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, sslMode)
			st, err := pgshipment.New(connString)
			if err != nil {
				return nil, nil, err
			}
			return st, st.Close, nil
		},
		newProducer: func(cfg *config.Config) poller.Producer {
			brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
			return kafka.NewProducer(brokers)
		},
		newTokens: func(cfg *config.Config) poller.TokenSource {
			if cfg.Worker.UseFakeCarriers {
				return staticTokens{}
			}
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			return auth.New(rediscache.New(redisAddr),
				auth.NewUPSIssuer(cfg.UPS.TokenURL, cfg.UPS.ClientID, cfg.UPS.ClientSecret, cfg.UPS.MerchantID),
				auth.NewFedExIssuer(cfg.FedEx.TokenURL, cfg.FedEx.ClientID, cfg.FedEx.ClientSecret),
				auth.NewPriorityIssuer(cfg.Priority.APIKey),
			)
		},
		newCurrentCache: func(cfg *config.Config) shipments.BytesCache {
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			return rediscache.New(redisAddr)
		},
		newAdapters: func(cfg *config.Config) []carrier.Adapter {
			// Без настроенных эндпоинтов работаем на локальных fake'ах.
			if cfg.Worker.UseFakeCarriers {
				return []carrier.Adapter{
					fake.New(models.CarrierUPS),
					fake.New(models.CarrierFedEx),
					fake.New(models.CarrierPriority),
				}
			}
			return []carrier.Adapter{
				upshttp.New(upshttp.Config{
					ServerURL:         cfg.UPS.ServerURL,
					ByReferencePath:   cfg.UPS.ByReferencePath,
					ByTrackingPath:    cfg.UPS.ByTrackingPath,
					AppName:           cfg.UPS.AppName,
					Locale:            cfg.UPS.Locale,
					RefNumberType:     cfg.UPS.RefNumberType,
					LookbackDays:      cfg.UPS.LookbackDays,
					SweepLookbackDays: cfg.UPS.SweepLookbackDays,
				}),
				fedexhttp.New(fedexhttp.Config{
					ServerURL:         cfg.FedEx.ServerURL,
					ByReferencePath:   cfg.FedEx.ByReferencePath,
					ByTrackingPath:    cfg.FedEx.ByTrackingPath,
					Locale:            cfg.FedEx.Locale,
					ReferenceType:     cfg.FedEx.ReferenceType,
					AccountNumbers:    cfg.FedEx.AccountNumbers,
					LookbackDays:      cfg.FedEx.LookbackDays,
					SweepLookbackDays: cfg.FedEx.SweepLookbackDays,
				}),
				priorityhttp.New(priorityhttp.Config{
					BaseURL:           cfg.Priority.BaseURL,
					TrackingPath:      cfg.Priority.TrackingPath,
					IdentifierType:    cfg.Priority.IdentifierType,
					SweepLookbackDays: cfg.Priority.SweepLookbackDays,
				}),
			}
		},
	}
}

func RunParcelWorker(ctx context.Context, cfg *config.Config, f workerFactories, swaggerPath string) error {
	topic := cfg.Kafka.ShipmentStatusUpdatedTopicName
	if topic == "" {
		topic = "shipment.status.updated"
	}

	sweepInterval := time.Duration(cfg.Worker.SweepIntervalSeconds) * time.Second
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Minute
	}

	st, closeFn, err := f.newStorage(cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	var currentCache shipments.BytesCache
	if f.newCurrentCache != nil {
		currentCache = f.newCurrentCache(cfg)
	}
	currentTTL := time.Duration(cfg.Worker.CurrentStatusTTLSeconds) * time.Second
	svc := shipments.New(st, currentCache, currentTTL)

	writer := &invalidatingWriter{w: reconcile.New(st), svc: svc}

	p := poller.New(st, writer, f.newTokens(cfg), f.newAdapters(cfg)...).
		WithProducer(f.newProducer(cfg), topic).
		WithErrorSink(st).
		WithSettings(sweepInterval, cfg.Worker.IncidentFollowupDays)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(ctx) })
	g.Go(func() error {
		err := runWorkerHTTPServer(ctx, workerHTTPOpts{
			httpAddr:    cfg.Worker.HTTPAddr,
			swaggerPath: swaggerPath,
			poller:      p,
			shipments:   svc,
			cfg:         cfg,
		})
		if errors.Is(err, http.ErrServerClosed) {
			return ctx.Err()
		}
		return err
	})
	return g.Wait()
}
