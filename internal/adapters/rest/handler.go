// Package rest exposes the HTTP interface for the recommendation service.
package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/services"
)

// Handler manages the HTTP interface for the service.
type Handler struct {
	svc          *services.Recommender
	refreshToken string
	log          zerolog.Logger
	router       chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes. refreshToken is
// the stored refresh token paired with the bearer token of each request to
// form a complete credential.
func NewHandler(svc *services.Recommender, refreshToken string, log zerolog.Logger) *Handler {
	h := &Handler{
		svc:          svc,
		refreshToken: refreshToken,
		log:          log,
		router:       chi.NewRouter(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(middleware.Recoverer)

	h.router.Get("/health", h.HealthCheck)
	h.router.Post("/recommendations", h.CreateRecommendation)
	h.router.Get("/recommendations/{id}", h.GetRecommendation)
	h.router.Get("/mood-summary", h.MoodSummary)
	h.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type recommendRequest struct {
	Location string `json:"location"`
}

type trackResponse struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Artist   string               `json:"artist"`
	Album    string               `json:"album,omitempty"`
	Features domain.FeatureVector `json:"features,omitempty"`
}

type recommendResponse struct {
	ID         string          `json:"id"`
	Mood       string          `json:"mood"`
	PlaylistID string          `json:"playlist_id,omitempty"`
	Synced     bool            `json:"synced"`
	SyncError  string          `json:"sync_error,omitempty"`
	Tracks     []trackResponse `json:"tracks"`
}

// CreateRecommendation runs the full weather-to-playlist flow for a location.
func (h *Handler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Location) == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	result, err := h.svc.Recommend(r.Context(), h.credential(r), req.Location)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "unknown location")
		case errors.Is(err, domain.ErrInvalidSnapshot):
			writeError(w, http.StatusBadGateway, "weather provider returned an incomplete observation")
		case errors.Is(err, domain.ErrPoolUnreachable):
			writeError(w, http.StatusBadGateway, "candidate search unavailable")
		default:
			h.log.Error().Err(err).Msg("recommendation failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toRecommendResponse(result))
}

// GetRecommendation returns a previously generated recommendation.
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetRecommendation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recommendation not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to load recommendation")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toRecommendResponse(services.Result{Recommendation: rec}))
}

// MoodSummary reports the predominant mood of recent listening.
func (h *Handler) MoodSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.DailyMoodSummary(r.Context(), h.credential(r))
	if err != nil {
		h.log.Error().Err(err).Msg("mood summary failed")
		writeError(w, http.StatusBadGateway, "listening history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// credential assembles the explicit credential for one request: the caller's
// bearer token plus the stored refresh token.
func (h *Handler) credential(r *http.Request) domain.Credential {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return domain.Credential{AccessToken: token, RefreshToken: h.refreshToken}
}

func toRecommendResponse(result services.Result) recommendResponse {
	rec := result.Recommendation
	resp := recommendResponse{
		ID:         rec.ID,
		Mood:       string(rec.Mood),
		PlaylistID: rec.PlaylistID,
		Synced:     result.SyncErr == nil && rec.PlaylistID != "",
		Tracks:     make([]trackResponse, len(rec.Tracks)),
	}
	if result.SyncErr != nil {
		resp.SyncError = result.SyncErr.Error()
	}
	for i, t := range rec.Tracks {
		resp.Tracks[i] = trackResponse{
			ID:       t.ID,
			Title:    t.Title,
			Artist:   t.Artist,
			Album:    t.Album,
			Features: t.Features,
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
