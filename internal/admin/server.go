package admin

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meteorsim/internal/engine"
	"meteorsim/internal/impact"
	"meteorsim/internal/preset"
)

type Server struct {
	Engine  *engine.Engine
	presets *preset.Catalog
	hub     *Hub
	tpl     *template.Template
}

//go:embed templates/index.html
var content embed.FS

func NewServer(eng *engine.Engine, presets *preset.Catalog) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	if presets == nil {
		presets = preset.Builtin()
	}
	return &Server{Engine: eng, presets: presets, hub: NewHub(), tpl: tpl}
}

// Hub exposes the websocket hub so it can join the result writer fan-out.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() {
	http.HandleFunc("/", s.handleIndex)
	http.HandleFunc("/run", s.handleRun)
	http.HandleFunc("/history", s.handleHistory)
	http.HandleFunc("/clear", s.handleClear)
	http.HandleFunc("/presets", s.handlePresets)
	http.HandleFunc("/healthz", s.handleHealthz)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/ws", s.hub.handleWS)
}

func (s *Server) Start(addr string) error {
	go s.hub.Run()
	s.routes()
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Presets []preset.Preset
		History []historyEntry
	}{
		Presets: s.presets.All(),
		History: historyView(s.Engine),
	}
	s.tpl.Execute(w, data)
}

// runRequest is the POST /run payload. Either a preset name or explicit
// parameters; explicit values win when both are present.
type runRequest struct {
	Preset   string                     `json:"preset,omitempty"`
	Params   *impact.AsteroidParameters `json:"params,omitempty"`
	Location *impact.ImpactLocation     `json:"location,omitempty"`
}

type runResponse struct {
	Outcome string                  `json:"outcome"`
	Result  impact.SimulationResult `json:"result"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	params := impact.AsteroidParameters{}
	location := req.Location
	if req.Preset != "" {
		p, ok := s.presets.ByName(req.Preset)
		if !ok {
			http.Error(w, "unknown preset", http.StatusNotFound)
			return
		}
		params = p.Params
		if location == nil {
			location = p.Location
		}
	}
	if req.Params != nil {
		params = *req.Params
	}

	result, outcome, err := s.Engine.Run(r.Context(), params, location)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(verr.Report)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runResponse{Outcome: string(outcome), Result: result})
}

// historyEntry flattens a run for listing; the full result stays available
// via the id query parameter.
type historyEntry struct {
	ID             string  `json:"id"`
	DiameterM      float64 `json:"diameter_m"`
	VelocityKmps   float64 `json:"velocity_kmps"`
	EnergyMegatons float64 `json:"energy_megatons"`
	Timestamp      string  `json:"ts"`
}

func historyView(eng *engine.Engine) []historyEntry {
	entries := eng.History()
	out := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntry{
			ID:             e.ID,
			DiameterM:      e.Params.DiameterM,
			VelocityKmps:   e.Params.VelocityKmps,
			EnergyMegatons: e.Result.EnergyMegatons,
			Timestamp:      e.Result.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	return out
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if id := r.URL.Query().Get("id"); id != "" {
		entry, ok := s.Engine.LoadRun(id)
		if !ok {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(entry)
		return
	}
	json.NewEncoder(w).Encode(s.Engine.History())
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Engine.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.presets.All())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
