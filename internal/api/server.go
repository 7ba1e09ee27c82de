package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/pbaille/notes/internal/domain"
	"github.com/pbaille/notes/internal/store"
)

// Server exposes the note collection over HTTP for local frontends.
// It owns the in-memory collection for its lifetime: loaded once at
// startup, written back through the store after every mutation.
type Server struct {
	store   *store.Store
	creator *domain.Creator
	addr    string
	logger  *slog.Logger

	mu    sync.Mutex
	notes []domain.Note
}

// New creates a new API server and loads the persisted collection
func New(s *store.Store, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   s,
		creator: domain.NewCreator(),
		addr:    addr,
		logger:  logger,
		notes:   s.Load(),
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	s.logger.Info("starting server", slog.String("addr", s.addr))
	return http.ListenAndServe(s.addr, withCORS(s.Handler()))
}

// Handler returns the route table without the outer middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /notes", s.listNotes)
	mux.HandleFunc("POST /notes", s.addNote)
	mux.HandleFunc("POST /notes/{id}/toggle", s.toggleNote)
	mux.HandleFunc("DELETE /notes/{id}", s.deleteNote)

	mux.HandleFunc("GET /stats", s.stats)
	mux.HandleFunc("GET /health", s.health)

	return mux
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AddNoteRequest is the request body for adding a note
type AddNoteRequest struct {
	Text string `json:"text"`
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := s.creator.New(req.Text)
	if errors.Is(err, domain.ErrEmptyText) {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, note)
	s.store.Save(s.notes)

	writeJSON(w, http.StatusCreated, map[string]interface{}{"note": note})
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := domain.ParseStatus(r.URL.Query().Get("status"))
	sortBy := domain.ParseSortBy(r.URL.Query().Get("sort"))

	s.mu.Lock()
	defer s.mu.Unlock()

	view := domain.FilterByStatus(s.notes, status)
	view = domain.Search(view, query)
	view = domain.Sort(view, sortBy)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notes":  view,
		"query":  query,
		"status": status,
		"sort":   sortBy,
	})
}

func (s *Server) toggleNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findByPrefix(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	s.notes[i] = domain.Toggle(s.notes[i])
	s.store.Save(s.notes)

	writeJSON(w, http.StatusOK, map[string]interface{}{"note": s.notes[i]})
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findByPrefix(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	deleted := s.notes[i].ID
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	s.store.Save(s.notes)

	writeJSON(w, http.StatusOK, map[string]string{"deleted": deleted})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, domain.CalcStats(s.notes))
}

// findByPrefix returns the index of the first note whose ID starts with
// the given prefix, or -1. Callers must hold the lock.
func (s *Server) findByPrefix(prefix string) int {
	if prefix == "" {
		return -1
	}
	for i, n := range s.notes {
		if strings.HasPrefix(n.ID, prefix) {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
