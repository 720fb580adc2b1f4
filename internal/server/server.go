package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lazypower/tend/internal/config"
	"github.com/lazypower/tend/internal/store"
)

// Server is the tend HTTP API server.
type Server struct {
	db      *store.DB
	cfg     config.Config
	router  chi.Router
	version string
	started time.Time

	// now is injectable so route tests can pin the clock; everything
	// below the handlers takes time as a parameter.
	now func() time.Time

	// gardenCache holds aggregate snapshots keyed by (write revision,
	// day). Both the meeting penalties and the overdue counts move
	// with the calendar, so a snapshot is only valid within one day.
	gardenCache *lru.Cache[snapshotKey, gardenSnapshot]
}

// New creates a new Server with the given database and version string.
func New(db *store.DB, cfg config.Config, version string) *Server {
	cache, _ := lru.New[snapshotKey, gardenSnapshot](8)
	s := &Server{
		db:          db,
		cfg:         cfg,
		version:     version,
		started:     time.Now(),
		now:         time.Now,
		gardenCache: cache,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/friends", s.handleListFriends)
		r.Post("/friends", s.handleCreateFriend)
		r.Get("/friends/{friendID}", s.handleGetFriend)
		r.Put("/friends/{friendID}", s.handleUpdateFriend)
		r.Delete("/friends/{friendID}", s.handleDeleteFriend)

		r.Post("/friends/{friendID}/contact", s.handleContact)
		r.Delete("/friends/{friendID}/logs/{logID}", s.handleRemoveLog)
		r.Get("/friends/{friendID}/status", s.handleStatus)

		r.Get("/nudges", s.handleNudges)
		r.Get("/garden", s.handleGarden)
		r.Get("/digest", s.handleDigest)

		r.Get("/meetings", s.handleListMeetings)
		r.Post("/meetings", s.handleCreateMeeting)
		r.Put("/meetings/{meetingID}", s.handleUpdateMeeting)
		r.Delete("/meetings/{meetingID}", s.handleDeleteMeeting)

		r.Post("/import", s.handleImport)
		r.Get("/export/calendar", s.handleExportCalendar)
	})

	// Embedded web UI with SPA fallback
	r.Get("/*", spaHandler())

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
