// Package agents provides the agent data model and the steering primitives
// shared by zombies and civilians. Both kinds are the same record with a
// kind tag and a behavioral state; the per-tick policy lives in the engine.
package agents

import (
	"math"

	"github.com/google/uuid"

	"github.com/talgya/archipelago/internal/world"
)

// ID is a stable identifier for an agent, unique within one simulation
// epoch. IDs are never reused until the next regeneration.
type ID uint64

// Kind tags an agent as zombie or civilian.
type Kind uint8

const (
	KindZombie Kind = iota
	KindCivilian
)

// State is the agent's current behavioral state. Zombies move between
// Patrol and Chase, civilians between Wander and Flee. Conversion is an
// instantaneous transition, not a resting state.
type State uint8

const (
	StatePatrol State = iota
	StateChase
	StateWander
	StateFlee
)

// Steering and interaction constants, in world units.
const (
	// CatchRadius is the distance at which a chasing zombie converts its
	// target civilian.
	CatchRadius = 0.4
	// ArriveThreshold is the distance at which a wander target counts as
	// reached and a new one is picked.
	ArriveThreshold = 0.15
	// FleeStep is how far past its own position a fleeing civilian projects
	// its target, recomputed every tick.
	FleeStep = 3.0
	// TurnRate is the zombie's rotation speed toward the lab, degrees/sec.
	TurnRate = 180.0
)

// Agent is one simulated entity. Island indexes the placement result's
// island list; -1 means unassigned, which disables wander retargeting.
type Agent struct {
	ID     ID      `json:"id"`
	Kind   Kind    `json:"kind"`
	State  State   `json:"state"`
	Island int     `json:"island"`
	Speed  float64 `json:"-"`

	Pos     world.Vec2 `json:"pos"`
	Target  world.Vec2 `json:"target"`
	Heading float64    `json:"heading"` // degrees, 0 = +X

	// Handle identifies this agent's visual representation with the entity
	// spawner. Not part of simulation state.
	Handle uuid.UUID `json:"handle"`
}

// Step moves the agent linearly toward its current target by speed × dt,
// never overshooting and never teleporting.
func (a *Agent) Step(dt float64) {
	a.Pos = a.Pos.MoveToward(a.Target, a.Speed*dt)
}

// Arrived reports whether the agent is within the arrive threshold of its
// current target.
func (a *Agent) Arrived() bool {
	return a.Pos.Dist(a.Target) <= ArriveThreshold
}

// FaceToward rotates the agent's heading toward the direction of p by at
// most TurnRate × dt degrees. No-op when the agent already stands at p.
func (a *Agent) FaceToward(p world.Vec2, dt float64) {
	d := p.Sub(a.Pos)
	if d.Len() == 0 {
		return
	}
	want := math.Atan2(d.Y, d.X) * 180 / math.Pi
	a.Heading = rotateToward(a.Heading, want, TurnRate*dt)
}

// rotateToward moves angle from toward to by at most maxDelta degrees,
// taking the short way around the circle.
func rotateToward(from, to, maxDelta float64) float64 {
	diff := math.Mod(to-from+540, 360) - 180
	if math.Abs(diff) <= maxDelta {
		return normalizeAngle(to)
	}
	if diff > 0 {
		return normalizeAngle(from + maxDelta)
	}
	return normalizeAngle(from - maxDelta)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Nearest returns the closest candidate to from within the given range, or
// nil when none qualifies. A plain linear scan: the tick is
// O(zombies × civilians) by design, with no spatial index.
func Nearest(from world.Vec2, candidates []*Agent, within float64) *Agent {
	var best *Agent
	bestDist := within
	for _, c := range candidates {
		if d := from.Dist(c.Pos); d <= bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
