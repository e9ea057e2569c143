package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/archipelago/internal/engine"
	"github.com/talgya/archipelago/internal/world"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := world.DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.Seed = "test"

	sim, err := engine.NewSimulation(cfg)
	require.NoError(t, err)
	require.NoError(t, sim.Generate())

	return &Server{Sim: sim, Eng: engine.NewEngine(), AdminKey: "hunter2"}
}

func TestHandleStatus(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test", body["seed"])
	assert.EqualValues(t, 1, body["epoch"])
}

func TestHandleGrid(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.handleGrid(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grid", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Width  int      `json:"width"`
		Height int      `json:"height"`
		Rows   []string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 20, body.Width)
	require.Len(t, body.Rows, 20)
	for _, row := range body.Rows {
		assert.Len(t, row, 20)
	}
	// Border invariant shows up in the rendered rows.
	assert.NotContains(t, body.Rows[0], "#")
}

func TestAdminAuth(t *testing.T) {
	s := testServer(t)
	handler := s.adminOnly(s.handleRegenerate)

	// GET is not allowed at all.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/regenerate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// POST without a token is rejected.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/regenerate", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// POST with the right token regenerates.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/regenerate", nil)
	req.Header.Set("Authorization", "Bearer hunter2")
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	// Budgets are per IP.
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.Greater(t, rl.RetryAfter("10.0.0.1"), 0)
}
