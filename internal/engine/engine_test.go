package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineTicksAndStops(t *testing.T) {
	eng := NewEngine()
	eng.Interval = 5 * time.Millisecond

	var ticks atomic.Int64
	var lastDT atomic.Value
	eng.OnTick = func(dt float64) {
		ticks.Add(1)
		lastDT.Store(dt)
	}

	done := make(chan struct{})
	go func() {
		eng.Run()
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	eng.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine did not stop")
	}

	require.Greater(t, ticks.Load(), int64(2))
	assert.InDelta(t, 0.005, lastDT.Load().(float64), 1e-9)
}

func TestEnginePausedDoesNotTick(t *testing.T) {
	eng := NewEngine()
	eng.Interval = time.Millisecond
	eng.Speed = 0

	var ticks atomic.Int64
	eng.OnTick = func(float64) { ticks.Add(1) }

	go eng.Run()
	time.Sleep(30 * time.Millisecond)
	eng.Stop()

	assert.Zero(t, ticks.Load())
}
