package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/search"
)

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	errBadCoordinate = errors.New("lat and lng must both be given as numbers")
)

// Server exposes category listing and resource search over HTTP.
type Server struct {
	searcher *search.Searcher
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates a server answering from searcher.
func NewServer(searcher *search.Searcher, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	s := &Server{
		searcher: searcher,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "http")
	return s, nil
}

// Router returns the routes without access logging.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", s.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/categories/{category}/resources", s.searchResources).Methods(http.MethodGet)

	return r
}

// Handler returns the routes wrapped in an Apache-style access log written to accessLog.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	return handlers.LoggingHandler(accessLog, s.Router())
}

type categoryView struct {
	ID       string   `json:"id"`
	Family   string   `json:"family,omitempty"`
	Keywords []string `json:"keywords"`
	Types    []string `json:"types"`
	Offline  int      `json:"offlineResources"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.searcher.Registry().Categories()
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, viewOf(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) searchResources(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	origin, err := parseOrigin(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.searcher.Search(r.Context(), category, origin, r.URL.Query().Get("q"))
	s.logger.Debug("served search",
		"run", result.RunID,
		"category", result.Category,
		"source", result.Source,
		"resources", len(result.Resources))
	writeJSON(w, http.StatusOK, result)
}

// parseOrigin reads lat/lng query parameters. Both absent means the caller
// did not share a location.
func parseOrigin(r *http.Request) (*core.Coordinate, error) {
	q := r.URL.Query()
	latText, lngText := q.Get("lat"), q.Get("lng")
	if latText == "" && lngText == "" {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(latText, 64)
	lng, lngErr := strconv.ParseFloat(lngText, 64)
	if latErr != nil || lngErr != nil {
		return nil, errBadCoordinate
	}
	c := core.Coordinate{Lat: lat, Lng: lng}
	if err := core.ValidateCoordinate(c); err != nil {
		return nil, err
	}
	return &c, nil
}

func viewOf(c catalog.Category) categoryView {
	return categoryView{
		ID:       c.ID,
		Family:   string(c.Family),
		Keywords: c.Keywords,
		Types:    c.Types,
		Offline:  len(c.Fallback),
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
