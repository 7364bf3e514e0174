// Package server exposes catalogs over HTTP: browsing, search, header
// generation and a debounced hash lookup socket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saffronjam/nativedb/internal/browse"
	"github.com/saffronjam/nativedb/internal/common"
	"github.com/saffronjam/nativedb/internal/fetch"
	"github.com/saffronjam/nativedb/internal/generator"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxOptionsBody  = 1 << 20

	// selectAll in a generate request selects every namespace.
	selectAll = "*"
)

// CatalogSource loads the catalog of a game.
type CatalogSource interface {
	Load(ctx context.Context, gameID string) (*common.Catalog, error)
}

type Config struct {
	Games          []common.Game
	Defaults       common.GenerationOptions
	LookupDebounce time.Duration
	Logger         common.Logger
}

type Server struct {
	source   CatalogSource
	cfg      Config
	logger   common.Logger
	upgrader websocket.Upgrader
}

func New(source CatalogSource, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = common.DiscardLogger
	}
	return &Server{
		source: source,
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("GET /api/games/{id}/namespaces", s.handleNamespaces)
	mux.HandleFunc("GET /api/games/{id}/natives", s.handleSearch)
	mux.HandleFunc("GET /api/games/{id}/natives/{hash}", s.handleNative)
	mux.HandleFunc("POST /api/games/{id}/generate", s.handleGenerate)
	mux.HandleFunc("GET /ws/lookup", s.handleLookup)

	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger common.Logger) error {
	if logger == nil {
		logger = common.DiscardLogger
	}
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

type gameSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Format      common.Format `json:"format"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games := make([]gameSummary, 0, len(s.cfg.Games))
	for _, g := range s.cfg.Games {
		games = append(games, gameSummary{ID: g.ID, Name: g.Name, Description: g.Description, Format: g.Format})
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleNamespaces(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	cat, ok := s.load(w, r, gameID)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Game       string                    `json:"game"`
		Total      int                       `json:"total"`
		Namespaces []browse.NamespaceSummary `json:"namespaces"`
	}{
		Game:       gameID,
		Total:      browse.Total(cat),
		Namespaces: browse.Namespaces(cat, r.URL.Query().Get("q")),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	query := r.URL.Query()
	matches := browse.Search(cat, browse.Query{
		Text:       query.Get("q"),
		Namespace:  query.Get("ns"),
		ReturnType: query.Get("returns"),
		ParamType:  query.Get("param"),
	})
	s.writeJSON(w, http.StatusOK, matches)
}

type nativeDetail struct {
	browse.Match
	Snippets map[browse.Language]string `json:"snippets"`
}

func (s *Server) handleNative(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	match, found := browse.FindByHash(cat, r.PathValue("hash"))
	if !found {
		http.Error(w, "native not found", http.StatusNotFound)
		return
	}
	detail := nativeDetail{Match: match, Snippets: make(map[browse.Language]string)}
	for _, lang := range browse.Languages() {
		detail.Snippets[lang] = browse.Snippet(lang, match.Entry)
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	opts := s.cfg.Defaults
	opts.SelectedNamespaces = nil
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOptionsBody)).Decode(&opts); err != nil {
		http.Error(w, fmt.Sprintf("invalid options: %v", err), http.StatusBadRequest)
		return
	}
	naming, err := common.ParseNamingConvention(string(opts.NamingConvention))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts.NamingConvention = naming

	cat, ok := s.load(w, r, gameID)
	if !ok {
		return
	}
	if len(opts.SelectedNamespaces) == 1 && opts.SelectedNamespaces[0] == selectAll {
		opts.SelectedNamespaces = generator.SelectAll(cat)
	}

	out, err := generator.Generate(cat, opts)
	switch {
	case errors.Is(err, generator.ErrEmptySelection), errors.Is(err, generator.ErrUnknownNamespace):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.logger.Printf("generate %s failed: %v", gameID, err)
		http.Error(w, "generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", generator.FileName(gameID)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// load fetches a catalog and writes the error response itself when that
// fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request, gameID string) (*common.Catalog, bool) {
	cat, err := s.source.Load(r.Context(), gameID)
	if err == nil {
		return cat, true
	}

	switch {
	case errors.Is(err, common.ErrUnknownGame):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, fetch.ErrUpstreamStatus):
		s.logger.Printf("upstream failure for %s: %v", gameID, err)
		http.Error(w, "failed to fetch natives", http.StatusBadGateway)
	default:
		s.logger.Printf("load %s failed: %v", gameID, err)
		http.Error(w, "failed to load natives", http.StatusBadGateway)
	}
	return nil, false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Printf("failed to marshal response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
