// Package httpapi exposes the forecast service over HTTP: the JSON API,
// the CSV export, the embedded dashboard, and the health/metrics routes.
package httpapi

import (
	"context"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flood-insights-service/internal/domain"
	"github.com/couchcryptid/flood-insights-service/internal/forecast"
)

//go:embed web/index.html
var webFS embed.FS

// ForecastService is the application boundary the handlers call into.
type ForecastService interface {
	CityForecast(ctx context.Context, city string) (forecast.Report, error)
	Assess(series domain.WeatherSeries) (domain.FloodRiskAssessment, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the API, dashboard, health, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	svc        ForecastService
	logger     *slog.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(addr string, svc ForecastService, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/forecast", s.handleForecast)
		r.Get("/forecast/export", s.handleExportCSV)
		r.Post("/assess", s.handleAssess)
	})

	r.Get("/", s.handleDashboard)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleForecast serves GET /api/v1/forecast?city=<name>.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "city query parameter is required")
		return
	}

	report, err := s.svc.CityForecast(r.Context(), city)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleExportCSV serves GET /api/v1/forecast/export?city=<name> as a CSV
// download of the hourly series.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "city query parameter is required")
		return
	}

	report, err := s.svc.CityForecast(r.Context(), city)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	filename := strings.ReplaceAll(city, " ", "_") + "_weather.csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"time", "temperature_c", "rainfall_mm", "humidity_pct", "wind_kph"})
	for _, sample := range report.Series {
		_ = cw.Write([]string{
			sample.Timestamp.Format(time.RFC3339),
			formatFloat(sample.TemperatureC),
			formatFloat(sample.RainfallMM),
			formatFloat(sample.HumidityPct),
			formatFloat(sample.WindKPH),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.Warn("csv export write failed", "error", err)
	}
}

// handleAssess serves POST /api/v1/assess with a JSON weather series body,
// exposing the classifier directly at the boundary.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var series domain.WeatherSeries
	if err := decodeJSON(r, &series); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	assessment, err := s.svc.Assess(series)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// writeServiceError maps service-layer failures onto HTTP statuses:
// unknown city 404, invalid series 422, provider trouble 502.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *domain.InvalidInputError

	switch {
	case errors.Is(err, domain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "location not found")
	case errors.As(err, &inputErr):
		writeError(w, http.StatusUnprocessableEntity, inputErr.Error())
	default:
		s.logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusBadGateway, "weather data unavailable")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
