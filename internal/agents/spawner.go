// Agent spawning — allocates stable IDs and visual-representation handles.
// The spawner stands at the entity-spawner boundary: the simulation tracks
// the handles it issues but never touches their rendering.
package agents

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/archipelago/internal/world"
)

// Spawner creates and destroys agents for the simulation. Optional hooks let
// a visual frontend mirror the population; they run synchronously on the
// simulation thread.
type Spawner struct {
	nextID ID

	OnSpawn   func(*Agent)
	OnDestroy func(*Agent)
}

// NewSpawner returns a spawner issuing IDs from 1.
func NewSpawner() *Spawner {
	return &Spawner{nextID: 1}
}

// Reset restarts ID allocation. Called on regeneration, after every prior
// agent has been destroyed.
func (s *Spawner) Reset() {
	s.nextID = 1
}

// Spawn creates an agent of the given kind at pos, owned by the island with
// the given index, with its wander target equal to its spawn position.
func (s *Spawner) Spawn(kind Kind, pos world.Vec2, island int, speed float64) *Agent {
	id := s.nextID
	s.nextID++

	state := StatePatrol
	if kind == KindCivilian {
		state = StateWander
	}

	a := &Agent{
		ID:     id,
		Kind:   kind,
		State:  state,
		Island: island,
		Speed:  speed,
		Pos:    pos,
		Target: pos,
		Handle: uuid.New(),
	}
	if s.OnSpawn != nil {
		s.OnSpawn(a)
	}
	return a
}

// Destroy releases an agent's visual representation.
func (s *Spawner) Destroy(a *Agent) {
	if s.OnDestroy != nil {
		s.OnDestroy(a)
	}
	slog.Debug("agent destroyed", "id", a.ID, "kind", a.Kind, "handle", a.Handle)
}
