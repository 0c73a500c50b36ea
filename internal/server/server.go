// Package server exposes a finished analysis snapshot over HTTP. The
// snapshot is computed once at startup; every handler reads from it.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/StefanVerhoef/solarroof/pkg/analysis"
	"github.com/StefanVerhoef/solarroof/pkg/rank"
	"github.com/StefanVerhoef/solarroof/pkg/validation"
)

// Server serves one analysis snapshot.
type Server struct {
	snapshot *analysis.Snapshot
	report   *validation.Report
	port     int
}

// New creates a server over a completed analysis.
func New(snapshot *analysis.Snapshot, report *validation.Report, port int) *Server {
	return &Server{
		snapshot: snapshot,
		report:   report,
		port:     port,
	}
}

// Router builds the HTTP routes. Split out from Start for tests.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/buildings", s.handleBuildings).Methods(http.MethodGet)
	r.HandleFunc("/buildings/{id}", s.handleBuilding).Methods(http.MethodGet)
	r.HandleFunc("/buildings/{id}/suitability", s.handleSuitability).Methods(http.MethodGet)
	r.HandleFunc("/priority", s.handlePriority).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/validation", s.handleValidation).Methods(http.MethodGet)
	return r
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("solarroof server starting on http://localhost%s", addr)
	log.Printf("Snapshot %s: %d buildings", s.snapshot.ID, len(s.snapshot.Records))

	return http.ListenAndServe(addr, s.Router())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"snapshot_id":  s.snapshot.ID,
		"generated_at": s.snapshot.GeneratedAt,
		"buildings":    len(s.snapshot.Records),
	})
}

// floatParam parses an optional float query parameter.
func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	return &v, nil
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return v, nil
}

func filterFromQuery(r *http.Request) (analysis.Filter, error) {
	var f analysis.Filter
	var err error

	if f.MinScore, err = floatParam(r, "min_score"); err != nil {
		return f, err
	}
	if f.MaxScore, err = floatParam(r, "max_score"); err != nil {
		return f, err
	}
	if f.MinArea, err = floatParam(r, "min_area"); err != nil {
		return f, err
	}
	if f.MinEnergy, err = floatParam(r, "min_energy"); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(r, "limit", 0); err != nil {
		return f, err
	}
	if f.Offset, err = intParam(r, "offset", 0); err != nil {
		return f, err
	}
	f.Category = rank.Category(r.URL.Query().Get("category"))
	return f, nil
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	details := s.snapshot.List(f)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(details),
		"buildings": details,
	})
}

func (s *Server) handleBuilding(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := s.snapshot.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("building %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSuitability(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := s.snapshot.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("building %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"building_id":    d.BuildingID,
		"score":          d.Score,
		"category":       d.Category,
		"rank":           d.Rank,
		"shading_factor": d.ShadingFactor,
		"payback_years":  d.PaybackYears,
	})
}

func (s *Server) handlePriority(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "top_n", 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if n < 0 {
		writeError(w, http.StatusBadRequest, "parameter \"top_n\" must not be negative")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"top_n":     n,
		"buildings": s.snapshot.Top(n),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot.Stats())
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.report)
}
