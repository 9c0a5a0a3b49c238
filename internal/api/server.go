package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dcall/lastcall/internal/cdr"
)

type Server struct {
	router *chi.Mux
	store  *cdr.Store
	port   int
}

func NewServer(store *cdr.Store, port int) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		store:  store,
		port:   port,
	}

	router.Get("/health", s.health)
	router.Get("/cdr/all", s.allRecords)
	router.Get("/cdr/{number}", s.lookup)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) allRecords(w http.ResponseWriter, r *http.Request) {
	records := s.store.Snapshot()
	if records == nil {
		// An empty store is still a JSON array, not null.
		records = []cdr.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(records)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	rec, ok := s.store.Latest(number)
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "No CDR data found for this number"})
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rec)
}
