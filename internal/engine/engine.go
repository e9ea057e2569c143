// Package engine provides the tick loop and the agent simulation it drives.
package engine

import (
	"log/slog"
	"time"
)

// Engine drives the simulation forward at a steady wall-clock rate.
type Engine struct {
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	// OnTick receives the simulated elapsed seconds for each tick.
	OnTick func(dt float64)
}

// NewEngine creates an engine ticking 20 times per second at real-time speed.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: 50 * time.Millisecond,
	}
}

// Run starts the tick loop. Blocks until Stop is called. Each tick processes
// the full agent set before the next begins; there is no mid-tick
// cancellation.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "interval", e.Interval, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused. Sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		if e.OnTick != nil {
			e.OnTick(e.Interval.Seconds() * e.Speed)
		}

		// Sleep for the remainder of the tick interval.
		if elapsed := time.Since(start); elapsed < e.Interval {
			time.Sleep(e.Interval - elapsed)
		}
	}

	slog.Info("simulation engine stopped")
}

// Stop halts the tick loop after the current tick completes.
func (e *Engine) Stop() {
	e.Running = false
}
