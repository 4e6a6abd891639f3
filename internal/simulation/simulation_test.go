package simulation

import (
	"image/color"
	"math"
	"testing"

	"lidar-sim/internal/common"
	"lidar-sim/internal/config"
	"lidar-sim/internal/raycast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	fieldWidth  = 850
	fieldHeight = 627
	radius      = 30
	margin      = 5
	rayStep     = 1.2
)

func newTestSimulation(t *testing.T, positions ...common.Vector) *Simulation {
	t.Helper()
	sensor, err := NewSensor(24, radius, 5*math.Pi/180, math.Pi/180)
	require.NoError(t, err)
	sim, err := NewSimulation(fieldWidth, fieldHeight, radius, margin, rayStep, sensor, zap.NewNop())
	require.NoError(t, err)
	for _, p := range positions {
		sim.AddCircle(p, HomeTeam)
	}
	return sim
}

func TestNewSimulationErrors(t *testing.T) {
	sensor, err := NewSensor(24, radius, 0, 0)
	require.NoError(t, err)

	_, err = NewSimulation(0, fieldHeight, radius, margin, rayStep, sensor, nil)
	assert.Error(t, err)
	_, err = NewSimulation(fieldWidth, fieldHeight, 0, margin, rayStep, sensor, nil)
	assert.Error(t, err)
	_, err = NewSimulation(fieldWidth, fieldHeight, radius, margin, 0, sensor, nil)
	assert.Error(t, err)
	_, err = NewSimulation(fieldWidth, fieldHeight, radius, margin, rayStep, nil, nil)
	assert.Error(t, err)

	_, err = NewSensor(-1, radius, 0, 0)
	assert.Error(t, err)
}

func TestIsValidPositionBounds(t *testing.T) {
	sim := newTestSimulation(t, common.NewVector(400, 300))

	tests := []struct {
		name string
		pos  common.Vector
		want bool
	}{
		{"left edge is exclusive", common.NewVector(35, 300), false},
		{"just inside left", common.NewVector(36, 300), true},
		{"right edge", common.NewVector(815, 300), true},
		{"past right", common.NewVector(815.5, 300), false},
		{"top edge is inclusive", common.NewVector(400, 35), true},
		{"past top", common.NewVector(400, 34.5), false},
		{"bottom edge", common.NewVector(400, 592), true},
		{"past bottom", common.NewVector(400, 592.5), false},
		{"far outside", common.NewVector(-100, 1000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sim.IsValidPosition(0, tt.pos))
		})
	}

	assert.False(t, sim.IsValidPosition(-1, common.NewVector(400, 300)))
	assert.False(t, sim.IsValidPosition(1, common.NewVector(400, 300)))
}

func TestIsValidPositionOverlap(t *testing.T) {
	sim := newTestSimulation(t, common.NewVector(100, 100), common.NewVector(300, 100))

	assert.False(t, sim.IsValidPosition(0, common.NewVector(241, 100)))
	assert.True(t, sim.IsValidPosition(0, common.NewVector(240, 100)))
	assert.False(t, sim.IsValidPosition(1, common.NewVector(150, 120)))
	// A circle never collides with itself.
	assert.True(t, sim.IsValidPosition(0, common.NewVector(100, 101)))
}

func TestDragLifecycle(t *testing.T) {
	sim := newTestSimulation(t, common.NewVector(100, 100), common.NewVector(300, 100))

	assert.Equal(t, -1, sim.BeginDrag(common.NewVector(200, 300)))
	assert.False(t, sim.Dragging())

	require.Equal(t, 1, sim.BeginDrag(common.NewVector(330, 100)))
	assert.True(t, sim.Circles()[1].Dragging())
	assert.False(t, sim.Circles()[0].Dragging())

	assert.True(t, sim.DragTo(common.NewVector(400, 200)))
	assert.Equal(t, common.NewVector(400, 200), sim.Circles()[1].GetPosition())

	// Overlapping and out-of-field positions are discarded.
	assert.False(t, sim.DragTo(common.NewVector(120, 100)))
	assert.False(t, sim.DragTo(common.NewVector(900, 200)))
	assert.Equal(t, common.NewVector(400, 200), sim.Circles()[1].GetPosition())

	sim.EndDrag()
	assert.False(t, sim.Dragging())
	assert.False(t, sim.DragTo(common.NewVector(500, 200)))
	assert.Equal(t, common.NewVector(400, 200), sim.Circles()[1].GetPosition())
}

func TestBeginDragFirstMatchWins(t *testing.T) {
	sim := newTestSimulation(t, common.NewVector(100, 100), common.NewVector(160, 100))
	assert.Equal(t, 0, sim.BeginDrag(common.NewVector(130, 100)))
	assert.False(t, sim.Circles()[1].Dragging())
}

func TestCastRaysCount(t *testing.T) {
	sim := newTestSimulation(t, common.NewVector(425, 313))

	for _, n := range []int{0, 1, 7, 24, 360} {
		rays := sim.CastRays(common.NewVector(425, 313), n)
		assert.Len(t, rays, n)
		assert.LessOrEqual(t, sim.Collisions().Total(), n)
	}
	assert.Len(t, sim.CastRays(common.NewVector(425, 313), -3), 0)
	assert.Equal(t, 0, sim.Collisions().Total())
}

func TestCastRaysStartOnRadius(t *testing.T) {
	origin := common.NewVector(425, 313)
	sim := newTestSimulation(t, origin)
	sim.Sensor().SetAngles(0.3, -1.7)

	for _, ray := range sim.CastRays(origin, 24) {
		assert.InDelta(t, radius, common.Distance(ray.Start, origin), 1e-9)
	}
}

func TestCastRaysDeterministic(t *testing.T) {
	build := func() *Simulation {
		sim := newTestSimulation(t, common.NewVector(150, 150), common.NewVector(350, 250), common.NewVector(550, 350))
		sim.AddGoal(NewGoal("goal-0", 763, 200, 27, 200, color.RGBA{0, 0, 255, 255}))
		sim.Sensor().SetAngles(0.4, 0.1)
		return sim
	}

	a, b := build(), build()
	raysA := a.CastRays(common.NewVector(150, 150), 24)
	raysB := b.CastRays(common.NewVector(150, 150), 24)
	assert.Equal(t, raysA, raysB)
	assert.Equal(t, a.Collisions(), b.Collisions())

	// Repeated casts do not accumulate.
	again := a.CastRays(common.NewVector(150, 150), 24)
	assert.Equal(t, raysA, again)
	assert.Equal(t, b.Collisions(), a.Collisions())
}

func TestCastRaysEastWall(t *testing.T) {
	origin := common.NewVector(fieldWidth/2, 313)
	sim := newTestSimulation(t, origin)

	rays := sim.CastRays(origin, 1)
	require.Len(t, rays, 1)
	ray := rays[0]

	assert.Equal(t, common.NewVector(origin.X+radius, origin.Y), ray.Start)
	require.Equal(t, raycast.HitWall, ray.Hit)
	assert.Equal(t, raycast.Right, ray.Wall)
	assert.Equal(t, float64(fieldWidth), ray.End.X)
	assert.InDelta(t, origin.Y, ray.End.Y, 1e-9)

	tally := sim.Collisions()
	assert.Equal(t, 1, tally.Count(raycast.Right))
	assert.Equal(t, 1, tally.Total())
}

func TestCastRaysGoal(t *testing.T) {
	origin := common.NewVector(600, 300)
	sim := newTestSimulation(t, origin)
	goal := NewGoal("goal-1", 763, 200, 27, 200, color.RGBA{255, 255, 0, 255})
	sim.AddGoal(goal)

	rays := sim.CastRays(origin, 1)
	require.Len(t, rays, 1)
	ray := rays[0]

	require.Equal(t, raycast.HitGoal, ray.Hit)
	assert.Equal(t, 0, ray.Target)

	// The first sample inside the goal, not the wall behind it.
	dir := common.NewVector(1, 0)
	var want common.Vector
	for length := 1; ; length++ {
		p := common.Sample(ray.Start, dir, length, rayStep)
		if goal.Bounds().Contains(p) {
			want = p
			break
		}
	}
	assert.Equal(t, want, ray.End)
	assert.Less(t, ray.End.X, float64(fieldWidth))
	assert.Equal(t, 0, sim.Collisions().Total())
}

func TestCastRaysCircle(t *testing.T) {
	origin := common.NewVector(200, 300)
	other := common.NewVector(500, 300)
	sim := newTestSimulation(t, origin, other)

	rays := sim.CastRays(origin, 1)
	require.Len(t, rays, 1)
	ray := rays[0]

	require.Equal(t, raycast.HitCircle, ray.Hit)
	assert.Equal(t, 1, ray.Target)
	assert.Less(t, common.Distance(ray.End, other), float64(radius))
	assert.GreaterOrEqual(t, common.Distance(common.Along(ray.End, common.NewVector(1, 0), -rayStep), other), float64(radius))
	assert.Equal(t, raycast.Tally{}, sim.Collisions())
}

func TestCastRaysIgnoresSensorCircle(t *testing.T) {
	origin := common.NewVector(425, 313)
	sim := newTestSimulation(t, origin)
	sim.Sensor().SetAngles(0, math.Pi)

	rays := sim.CastRays(origin, 1)
	require.Len(t, rays, 1)
	assert.Equal(t, raycast.HitWall, rays[0].Hit)
	assert.Equal(t, raycast.Left, rays[0].Wall)
	assert.Equal(t, 0.0, rays[0].End.X)
}

func TestRotateAndTilt(t *testing.T) {
	sim := newTestSimulation(t, common.NewVector(425, 313))

	sim.Rotate(1)
	sim.Rotate(1)
	sim.Rotate(-1)
	sim.Tilt(-1)
	assert.InDelta(t, 5*math.Pi/180, sim.Sensor().Rotation(), 1e-12)
	assert.InDelta(t, -math.Pi/180, sim.Sensor().Tilt(), 1e-12)

	for i := 0; i < 100; i++ {
		sim.Rotate(1)
	}
	// Angles accumulate without wrapping.
	assert.InDelta(t, 505*math.Pi/180, sim.Sensor().Rotation(), 1e-9)
}

func TestRotationMovesMountPoints(t *testing.T) {
	origin := common.NewVector(425, 313)
	sim := newTestSimulation(t, origin)
	sim.Sensor().SetAngles(math.Pi/2, 0)

	rays := sim.CastRays(origin, 1)
	require.Len(t, rays, 1)
	assert.InDelta(t, origin.X, rays[0].Start.X, 1e-9)
	assert.InDelta(t, origin.Y+radius, rays[0].Start.Y, 1e-9)
	assert.Equal(t, raycast.Bottom, rays[0].Wall)

	// Tilt turns the beam but leaves the mount point in place.
	sim.Sensor().SetAngles(math.Pi/2, -math.Pi/2)
	rays = sim.CastRays(origin, 1)
	assert.InDelta(t, origin.Y+radius, rays[0].Start.Y, 1e-9)
	assert.Equal(t, raycast.Right, rays[0].Wall)
}

func TestStepFromScene(t *testing.T) {
	scene, err := config.Default()
	require.NoError(t, err)
	sim, err := NewFromScene(scene, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, sim.Circles(), 4)
	assert.Equal(t, HomeTeam, sim.Circles()[0].Team())
	assert.Equal(t, HomeTeam, sim.Circles()[1].Team())
	assert.Equal(t, EnemyTeam, sim.Circles()[2].Team())
	assert.Equal(t, EnemyTeam, sim.Circles()[3].Team())
	require.Len(t, sim.Goals(), 2)
	assert.NotEqual(t, sim.Circles()[0].GetID(), sim.Circles()[1].GetID())

	sim.Step()
	rays := sim.Rays()
	require.Len(t, rays, 24)
	walls := 0
	for _, ray := range rays {
		if ray.Hit == raycast.HitWall {
			walls++
		}
	}
	assert.Equal(t, walls, sim.Collisions().Total())
}

func TestStepWithoutCircles(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Step()
	assert.Empty(t, sim.Rays())
	assert.Equal(t, 0, sim.Collisions().Total())
}
