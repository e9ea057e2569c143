// Package api serves the world state over HTTP.
// GET endpoints are public (read-only observation); POST endpoints require a
// bearer token (admin control plane). Every handler reads through
// Simulation.Snapshot or Stats, so responses are consistent between ticks.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/archipelago/internal/agents"
	"github.com/talgya/archipelago/internal/engine"
	"github.com/talgya/archipelago/internal/world"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	Eng      *engine.Engine
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	regenLimiter := NewRateLimiter(12, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/grid", s.handleGrid)
	mux.HandleFunc("/api/v1/regions", s.handleRegions)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/placement", s.handlePlacement)

	// Admin endpoints.
	mux.HandleFunc("/api/v1/regenerate", s.adminOnly(RateLimitMiddleware(regenLimiter, s.handleRegenerate)))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no admin key set)", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Sim.Stats()
	writeJSON(w, map[string]any{
		"name":        "archipelago",
		"seed":        s.Sim.Seed(),
		"epoch":       st.Epoch,
		"running":     s.Eng.Running,
		"speed":       s.Eng.Speed,
		"islands":     st.Islands,
		"land_tiles":  humanize.Comma(int64(st.LandTiles)),
		"zombies":     st.Zombies,
		"civilians":   st.Civilians,
		"trees":       st.Trees,
		"conversions": st.Conversions,
	})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	if snap.Grid == nil {
		http.Error(w, "no world generated yet", http.StatusServiceUnavailable)
		return
	}

	// Rows as strings of '~' (water) and '#' (land): compact and greppable.
	rows := make([]string, snap.Grid.Height)
	var sb strings.Builder
	for y := 0; y < snap.Grid.Height; y++ {
		sb.Reset()
		for x := 0; x < snap.Grid.Width; x++ {
			if snap.Grid.At(x, y) == world.TileLand {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('~')
			}
		}
		rows[y] = sb.String()
	}

	writeJSON(w, map[string]any{
		"width":  snap.Grid.Width,
		"height": snap.Grid.Height,
		"seed":   snap.Seed,
		"rows":   rows,
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()

	type regionInfo struct {
		Index    int `json:"index"`
		Size     int `json:"size"`
		Centroid any `json:"centroid"`
	}
	regions := make([]regionInfo, 0, len(snap.Placement.Islands))
	for i := range snap.Placement.Islands {
		reg := &snap.Placement.Islands[i]
		regions = append(regions, regionInfo{Index: i, Size: reg.Size(), Centroid: reg.Centroid()})
	}

	writeJSON(w, map[string]any{
		"islands":    regions,
		"lab_island": snap.Placement.LabIsland,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()

	kindFilter := r.URL.Query().Get("kind")
	out := make([]*agents.Agent, 0, len(snap.Agents))
	for _, a := range snap.Agents {
		switch kindFilter {
		case "zombie":
			if a.Kind != agents.KindZombie {
				continue
			}
		case "civilian":
			if a.Kind != agents.KindCivilian {
				continue
			}
		}
		out = append(out, a)
	}

	writeJSON(w, map[string]any{
		"epoch":  snap.Epoch,
		"count":  len(out),
		"agents": out,
	})
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	writeJSON(w, snap.Placement)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if err := s.Sim.Regenerate(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	st := s.Sim.Stats()
	slog.Info("regeneration requested via API", "epoch", st.Epoch, "remote", r.RemoteAddr)
	writeJSON(w, map[string]any{
		"epoch":     st.Epoch,
		"seed":      s.Sim.Seed(),
		"islands":   st.Islands,
		"zombies":   st.Zombies,
		"civilians": st.Civilians,
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	val := r.URL.Query().Get("value")
	speed, err := strconv.ParseFloat(val, 64)
	if err != nil || speed < 0 || speed > 20 {
		http.Error(w, "value must be a float in [0, 20]", http.StatusBadRequest)
		return
	}
	s.Eng.Speed = speed
	slog.Info("speed changed via API", "speed", speed)
	writeJSON(w, map[string]any{"speed": speed})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
