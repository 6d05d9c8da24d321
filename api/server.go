package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"weather-lookup/locale"
	"weather-lookup/lookup"
	"weather-lookup/metrics"
	"weather-lookup/models"
	"weather-lookup/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// DefaultLocation is what the page shows when no city was searched
type DefaultLocation struct {
	Coordinates models.Coordinates
	Name        string
}

// Server represents the HTTP server
type Server struct {
	orchestrator *lookup.Orchestrator
	fallback     DefaultLocation
	server       *http.Server
}

// NewServer creates a new HTTP server. The orchestrator must render HTML.
func NewServer(orchestrator *lookup.Orchestrator, fallback DefaultLocation, port int) *Server {
	s := &Server{
		orchestrator: orchestrator,
		fallback:     fallback,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router builds the route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(metrics.Middleware)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealthCheck)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/weather", s.handleWeather)
	})
	return r
}

// Start begins serving and blocks until the server stops
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// handleIndex renders the page. With a city query parameter (even an empty
// one, as submitted by the form) it looks the city up; otherwise it shows the
// default location.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage()
	query := r.URL.Query()
	city := query.Get("city")

	if query.Has("city") {
		_, _ = s.orchestrator.ByCity(r.Context(), city, page)
	} else {
		_, _ = s.orchestrator.ByCoordinates(r.Context(), s.fallback.Coordinates, s.fallback.Name, page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.WritePage(w, render.PageData{
		Lang:  s.orchestrator.Renderer().Language(),
		Query: city,
		Page:  page,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to write page")
	}
}

// handleWeather returns the lookup report as JSON, for a city or a point
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	latStr, lonStr := query.Get("lat"), query.Get("lon")
	msgs := locale.For(s.orchestrator.Renderer().Language())
	page := render.NewPage()

	var (
		report *models.Report
		err    error
	)
	if latStr != "" || lonStr != "" {
		coords, perr := parseCoordinates(latStr, lonStr)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": perr.Error(), "kind": "invalid_coordinates"})
			return
		}
		name := strings.TrimSpace(query.Get("name"))
		if name == "" {
			name = fmt.Sprintf("%.4f, %.4f", coords.Latitude, coords.Longitude)
		}
		report, err = s.orchestrator.ByCoordinates(r.Context(), coords, name, page)
	} else {
		report, err = s.orchestrator.ByCity(r.Context(), query.Get("city"), page)
	}

	if err != nil {
		kind := lookup.Kind(err)
		writeJSON(w, statusFor(kind), map[string]string{
			"error": lookup.UserMessage(msgs, err),
			"kind":  kind,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":      report,
		"timestamp": time.Now(),
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func statusFor(kind string) int {
	switch kind {
	case lookup.KindEmptyInput:
		return http.StatusBadRequest
	case lookup.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func parseCoordinates(latStr, lonStr string) (models.Coordinates, error) {
	if latStr == "" || lonStr == "" {
		return models.Coordinates{}, fmt.Errorf("lat and lon parameters are both required")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return models.Coordinates{}, fmt.Errorf("invalid lat parameter")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return models.Coordinates{}, fmt.Errorf("invalid lon parameter")
	}
	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
