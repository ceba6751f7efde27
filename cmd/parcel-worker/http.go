package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/jammyops/parceltrack/config"
	"github.com/jammyops/parceltrack/internal/models"
	"github.com/jammyops/parceltrack/internal/services/poller"
	"github.com/jammyops/parceltrack/internal/services/shipments"
	"github.com/jammyops/parceltrack/internal/storage/pgshipment"
)

type workerHTTPOpts struct {
	httpAddr    string
	swaggerPath string
	onListen    func(httpAddr string)

	poller    *poller.Poller
	shipments *shipments.Service
	cfg       *config.Config
}

func runWorkerHTTPServer(ctx context.Context, opts workerHTTPOpts) error {
	if opts.httpAddr == "" {
		opts.httpAddr = ":8091"
	}
	if opts.swaggerPath == "" {
		return fmt.Errorf("worker swaggerPath env var is required")
	}
	if _, err := os.Stat(opts.swaggerPath); os.IsNotExist(err) {
		return fmt.Errorf("worker swagger file not found: %s", opts.swaggerPath)
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	r := newWorkerRouter(opts)

	srv := &http.Server{Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = lis.Close()
	}()

	return srv.Serve(lis)
}

func newWorkerRouter(opts workerHTTPOpts) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.poller == nil {
			_, _ = w.Write([]byte(`{"error":"poller not wired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(opts.poller.Stats())
	})

	r.Get("/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.cfg == nil {
			_, _ = w.Write([]byte(`{"error":"config not wired"}`))
			return
		}
		// Секреты в ответ не попадают, только рабочие настройки.
		out := map[string]any{
			"sweepIntervalSeconds": opts.cfg.Worker.SweepIntervalSeconds,
			"incidentFollowupDays": opts.cfg.Worker.IncidentFollowupDays,
			"useFakeCarriers":      opts.cfg.Worker.UseFakeCarriers,
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	r.Post("/trigger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.poller == nil {
			_, _ = w.Write([]byte(`{"error":"poller not wired"}`))
			return
		}
		opts.poller.Trigger()
		_, _ = w.Write([]byte(`{"triggered":true}`))
	})

	r.Post("/sweeps/{carrier}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.poller == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "poller not wired")
			return
		}
		carrierCode := chi.URLParam(r, "carrier")
		if err := opts.poller.SweepEligible(r.Context(), carrierCode); err != nil {
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		_, _ = w.Write([]byte(`{"swept":true}`))
	})

	r.Post("/polls/{carrier}/{shipmentID}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.poller == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "poller not wired")
			return
		}
		carrierCode := chi.URLParam(r, "carrier")
		shipmentID := chi.URLParam(r, "shipmentID")
		if err := opts.poller.PollShipment(r.Context(), carrierCode, shipmentID); err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, pgshipment.ErrShipmentNotFound) {
				status = http.StatusNotFound
			}
			writeJSONError(w, status, err.Error())
			return
		}
		_, _ = w.Write([]byte(`{"polled":true}`))
	})

	r.Post("/shipments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.shipments == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "shipments service not wired")
			return
		}
		var items []models.ShipmentCreateInput
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		n, err := opts.shipments.Register(r.Context(), items)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"registered": n})
	})

	r.Get("/shipments/{shipmentID}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.shipments == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "shipments service not wired")
			return
		}
		out, err := opts.shipments.GetByIDs(r.Context(), []string{chi.URLParam(r, "shipmentID")})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(out) == 0 {
			writeJSONError(w, http.StatusNotFound, "shipment not found")
			return
		}
		_ = json.NewEncoder(w).Encode(out[0])
	})

	// Swagger с no-cache и кэшбастером.
	r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		http.ServeFile(w, r, opts.swaggerPath)
	})

	swaggerURL := "/swagger.json"
	if fi, err := os.Stat(opts.swaggerPath); err == nil {
		swaggerURL = fmt.Sprintf("/swagger.json?v=%d", fi.ModTime().Unix())
	}
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
