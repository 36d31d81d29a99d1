// Package server serves filtered order views and sales analytics over http.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	nt "cafedash/entity"
	"cafedash/metrics"
	"cafedash/source"
)

// Invalidator drops cached upstream data; the redis cache is one.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Config is the server's tunables.
type Config struct {
	Timeout  time.Duration `yaml:"timeout"`
	MaxAge   time.Duration `yaml:"max_age"`
	PageSize int           `yaml:"page_size"`
}

// Server holds the order snapshot and answers queries against it.
type Server struct {
	fetcher     source.Fetcher
	invalidator Invalidator
	metrics     *metrics.Registry
	logger      nt.Logger
	snap        *snapshot
	now         func() time.Time

	timeout  time.Duration
	maxAge   time.Duration
	pageSize int
}

// New creates a server; zero durations fall back to 10s timeout and 60s max age.
func (cfg *Config) New(fetcher source.Fetcher, reg *metrics.Registry, lgr nt.Logger) *Server {

	svr := &Server{
		fetcher:  fetcher,
		metrics:  reg,
		logger:   lgr,
		snap:     &snapshot{},
		now:      time.Now,
		timeout:  cfg.Timeout,
		maxAge:   cfg.MaxAge,
		pageSize: cfg.PageSize,
	}
	if svr.timeout <= 0 {
		svr.timeout = 10 * time.Second
	}
	if svr.maxAge <= 0 {
		svr.maxAge = 60 * time.Second
	}

	inv, ok := fetcher.(Invalidator)
	if ok {
		svr.invalidator = inv
	}

	return svr
}

// Refresh fetches a new snapshot, emptying the current one on failure.
func (svr *Server) Refresh(ctx context.Context) (err error) {

	ctx, cancel := context.WithTimeout(ctx, svr.timeout)
	defer cancel()

	start := svr.now()
	svr.metrics.Fetches.Inc()

	orders, err := svr.fetcher.FetchOrders(ctx)
	if err == nil {
		err = svr.snap.replace(orders, svr.now())
	}
	svr.metrics.FetchSec.Observe(time.Since(start).Seconds())

	if err != nil {
		svr.snap.clear()
		svr.metrics.FetchErrors.Inc()
		svr.metrics.Orders.Set(0)
		err = errors.Wrapf(err, "failed to refresh orders")
		return
	}

	svr.metrics.Orders.Set(float64(len(orders)))
	svr.logger.Info(ctx, "refreshed orders", "count", len(orders))
	return
}

// Router returns the http handler with all routes mounted.
func (svr *Server) Router() http.Handler {

	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(middleware.RealIP)
	rtr.Use(svr.logRequests)
	rtr.Use(middleware.Recoverer)

	rtr.Handle("/metrics", svr.metrics.Handler())
	svr.RegisterRoutes(rtr)

	return rtr
}

// RegisterRoutes registers the api routes on a chi router.
func (svr *Server) RegisterRoutes(rtr chi.Router) {
	rtr.Route("/api", func(rtr chi.Router) {
		rtr.Route("/orders", func(rtr chi.Router) {
			rtr.Get("/", svr.listOrders)
			rtr.Post("/refresh", svr.refreshOrders)
			rtr.Get("/{id}", svr.getOrder)
		})
		rtr.Route("/sales", func(rtr chi.Router) {
			rtr.Get("/sales_summary", svr.report(salesSummary))
			rtr.Get("/category_sales", svr.report(categorySales))
			rtr.Get("/sales_by_weather", svr.report(salesByWeather))
			rtr.Get("/sales_by_gender", svr.report(salesByGender))
			rtr.Get("/weather_timeslot_analysis", svr.report(weatherTimeSlot))
			rtr.Get("/hourly_sales", svr.report(hourlySales))
			rtr.Get("/period_sales", svr.report(periodSales))
		})
		rtr.Route("/products", func(rtr chi.Router) {
			rtr.Get("/bestsellers", svr.report(bestsellers))
			rtr.Get("/discount_analysis", svr.report(discountAnalysis))
			rtr.Get("/dine_in_popular_items", svr.report(dineInBySlot))
			rtr.Get("/dine_in_popular", svr.report(dineInPopular))
			rtr.Get("/takeout_popular", svr.report(takeoutPopular))
			rtr.Get("/combo_analysis", svr.report(comboAnalysis))
		})
		rtr.Route("/menu-items", func(rtr chi.Router) {
			rtr.Get("/", svr.report(menuItems))
			rtr.Get("/categories", svr.report(menuCategories))
		})
		rtr.Get("/dashboard/{period}", svr.dashboard)
	})
}

// unexported

// orders returns the snapshot, refetching when it is missing or older than max age.
func (svr *Server) orders(ctx context.Context) (orders []nt.Order, err error) {

	orders, fetched := svr.snap.get()
	if !fetched.IsZero() && svr.now().Sub(fetched) < svr.maxAge {
		return
	}

	err = svr.Refresh(ctx)
	if err != nil {
		return
	}

	orders, _ = svr.snap.get()
	return
}

func (svr *Server) logRequests(next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		rctx := chi.RouteContext(r.Context())
		if rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		svr.metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		svr.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
			"elapsed", time.Since(start).String(),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (svr *Server) sendJSON(w http.ResponseWriter, r *http.Request, status int, data any) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		svr.logger.Error(r.Context(), "failed to encode response", err)
	}
}

func (svr *Server) sendError(w http.ResponseWriter, r *http.Request, status int, err error) {

	svr.logger.Error(r.Context(), "request failed", err, "path", r.URL.Path, "status", status)
	svr.sendJSON(w, r, status, errorResponse{Error: err.Error()})
}
