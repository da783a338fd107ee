// Package api provides the HTTP API for playing and observing a
// playthrough. GET endpoints are public (read-only views of the state
// and catalogs). POST endpoints mutate the game and require a bearer
// token when one is configured.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/talgya/kingdoms/internal/engine"
	"github.com/talgya/kingdoms/internal/persistence"
)

// Server serves one playthrough over HTTP.
type Server struct {
	Game     *engine.Game
	Store    *persistence.Store
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST open.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// One shared limiter for all mutating endpoints.
	commandLimiter := NewRateLimiter(600, time.Hour)

	mux := http.NewServeMux()

	// Public read-only views.
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/event", s.handleEvent)
	mux.HandleFunc("/api/v1/ending", s.handleEnding)
	mux.HandleFunc("/api/v1/summary", s.handleSummary)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)

	// Command endpoints.
	command := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimitMiddleware(commandLimiter, s.adminOnly(h))
	}
	mux.HandleFunc("/api/v1/new", command(s.handleNew))
	mux.HandleFunc("/api/v1/nation", command(s.handleNation))
	mux.HandleFunc("/api/v1/traits", command(s.handleTraits))
	mux.HandleFunc("/api/v1/locale", command(s.handleLocale))
	mux.HandleFunc("/api/v1/action", command(s.handleAction))
	mux.HandleFunc("/api/v1/war-action", command(s.handleWarAction))
	mux.HandleFunc("/api/v1/economy-action", command(s.handleEconomyAction))
	mux.HandleFunc("/api/v1/end-turn", command(s.handleEndTurn))
	mux.HandleFunc("/api/v1/choose", command(s.handleChoose))
	mux.HandleFunc("/api/v1/save", command(s.handleSave))
	mux.HandleFunc("/api/v1/load", command(s.handleLoad))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires POST plus (when configured) bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey != "" && !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Game.Snapshot())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"event": s.Game.CurrentEvent()})
}

func (s *Server) handleEnding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ending": s.Game.Ending()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	st := s.Game.Snapshot()
	actions, events := 0, 0
	for _, e := range st.Summary {
		switch e.Type {
		case "event":
			events++
		default:
			actions++
		}
	}
	writeJSON(w, map[string]any{
		"entries":         st.Summary,
		"actions_taken":   actions,
		"events_resolved": events,
		"turns":           st.Turn,
		"ending_id":       st.EndingID,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.Game.Catalogs()
	writeJSON(w, map[string]any{
		"nations":         cat.Nations,
		"traits":          cat.Traits,
		"actions":         cat.Actions,
		"war_actions":     cat.WarActions,
		"economy_actions": cat.EconomyActions,
	})
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.Game.NewGame()
	writeJSON(w, s.Game.Snapshot())
}

// idRequest is the shared body shape for id-addressed commands.
type idRequest struct {
	ID string `json:"id"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleNation(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, s.Game.SetNation(req.ID))
}

func (s *Server) handleTraits(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, s.Game.SetTraits(req.IDs))
}

func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locale string `json:"locale"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.Game.SetLocale(req.Locale)
	s.respond(w, nil)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, s.Game.ApplyAction(req.ID))
}

func (s *Server) handleWarAction(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, s.Game.ApplyWarAction(req.ID))
}

func (s *Server) handleEconomyAction(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, s.Game.ApplyEconomyAction(req.ID))
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	s.Game.EndTurn()
	s.respond(w, nil)
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, s.Game.ChooseEventOption(req.Choice))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "persistence not available", http.StatusServiceUnavailable)
		return
	}
	if err := s.Store.Save(s.Game.Snapshot()); err != nil {
		slog.Error("save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"saved": true})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "persistence not available", http.StatusServiceUnavailable)
		return
	}
	st, ok, err := s.Store.Load()
	if err != nil {
		slog.Error("load failed", "error", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "no save found", http.StatusNotFound)
		return
	}
	s.Game.Restore(st)
	writeJSON(w, s.Game.Snapshot())
}

// respond maps an engine error to an HTTP status, or returns the updated
// state plus pending event on success.
func (s *Server) respond(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, map[string]any{
			"state": s.Game.Snapshot(),
			"event": s.Game.CurrentEvent(),
		})
	case errors.Is(err, engine.ErrUnknownAction),
		errors.Is(err, engine.ErrUnknownNation),
		errors.Is(err, engine.ErrUnknownTrait):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrTraitCount),
		errors.Is(err, engine.ErrUnknownChoice):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, engine.ErrNoActionPoints),
		errors.Is(err, engine.ErrRequirementsNotMet),
		errors.Is(err, engine.ErrNoCurrentEvent),
		errors.Is(err, engine.ErrNoActiveWar):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
