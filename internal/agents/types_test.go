package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/archipelago/internal/world"
)

func TestStepNeverOvershoots(t *testing.T) {
	a := &Agent{Pos: world.Vec2{}, Target: world.Vec2{X: 1}, Speed: 10}
	a.Step(1.0) // Step of 10 units toward a target 1 unit away.
	assert.Equal(t, world.Vec2{X: 1}, a.Pos)

	a = &Agent{Pos: world.Vec2{}, Target: world.Vec2{X: 4}, Speed: 1}
	a.Step(0.5)
	assert.InDelta(t, 0.5, a.Pos.X, 1e-9)
	assert.Zero(t, a.Pos.Y)
}

func TestArrived(t *testing.T) {
	a := &Agent{Pos: world.Vec2{X: 0.1}, Target: world.Vec2{}}
	assert.True(t, a.Arrived())
	a.Pos.X = 0.5
	assert.False(t, a.Arrived())
}

func TestFaceTowardConverges(t *testing.T) {
	a := &Agent{Pos: world.Vec2{}, Heading: 180}
	target := world.Vec2{X: 5} // Due +X, heading 0.

	a.FaceToward(target, 0.5) // Up to 90 degrees of turn.
	assert.InDelta(t, 90, a.Heading, 1e-9)
	a.FaceToward(target, 0.5)
	assert.InDelta(t, 0, a.Heading, 1e-9)

	// Already aligned: stable.
	a.FaceToward(target, 0.5)
	assert.InDelta(t, 0, a.Heading, 1e-9)

	// Standing on the target: no-op.
	a.Pos = target
	before := a.Heading
	a.FaceToward(target, 0.5)
	assert.Equal(t, before, a.Heading)
}

func TestRotateTowardShortWay(t *testing.T) {
	// 350 -> 10 goes through 0, not the long way around.
	assert.InDelta(t, 355, rotateToward(350, 10, 5), 1e-9)
	assert.InDelta(t, 10, rotateToward(350, 10, 30), 1e-9)
	assert.InDelta(t, 345, rotateToward(350, 340, 5), 1e-9)
}

func TestNearest(t *testing.T) {
	far := &Agent{Pos: world.Vec2{X: 9}}
	near := &Agent{Pos: world.Vec2{X: 2}}
	mid := &Agent{Pos: world.Vec2{X: 4}}

	got := Nearest(world.Vec2{}, []*Agent{far, mid, near}, 5)
	assert.Same(t, near, got)

	assert.Nil(t, Nearest(world.Vec2{}, []*Agent{far}, 5))
	assert.Nil(t, Nearest(world.Vec2{}, nil, 5))
}

func TestSpawnerAssignsIdentity(t *testing.T) {
	s := NewSpawner()
	var spawned, destroyed int
	s.OnSpawn = func(*Agent) { spawned++ }
	s.OnDestroy = func(*Agent) { destroyed++ }

	z := s.Spawn(KindZombie, world.Vec2{X: 1, Y: 2}, 0, 1.5)
	c := s.Spawn(KindCivilian, world.Vec2{X: 3}, 1, 2.0)

	require.Equal(t, ID(1), z.ID)
	require.Equal(t, ID(2), c.ID)
	assert.Equal(t, StatePatrol, z.State)
	assert.Equal(t, StateWander, c.State)
	// Initial wander target is the spawn cell.
	assert.Equal(t, z.Pos, z.Target)
	assert.NotEqual(t, z.Handle, c.Handle)
	assert.Equal(t, 2, spawned)

	s.Destroy(c)
	assert.Equal(t, 1, destroyed)

	s.Reset()
	assert.Equal(t, ID(1), s.Spawn(KindZombie, world.Vec2{}, 0, 1).ID)
}
