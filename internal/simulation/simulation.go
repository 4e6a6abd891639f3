package simulation

import (
	"fmt"

	"lidar-sim/internal/common"
	"lidar-sim/internal/config"
	"lidar-sim/internal/raycast"

	"go.uber.org/zap"
)

// SensorCircle is the index of the circle carrying the lidar.
const SensorCircle = 0

// Simulation holds the scene and the lidar state. It is not safe for concurrent use.
type Simulation struct {
	width  float64
	height float64
	radius float64 // shared by all circles
	margin float64 // extra inset for drag bounds

	circles []*Circle
	goals   []*Goal
	sensor  *Sensor
	caster  raycast.Caster

	// Results of the last ray cast; rebuilt from scratch each time.
	rays       []raycast.Ray
	collisions raycast.Tally

	logger *zap.Logger
}

// NewSimulation creates an empty field of the given size.
func NewSimulation(width, height, radius, margin, step float64, sensor *Sensor, logger *zap.Logger) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("field size must be positive, got %gx%g", width, height)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("circle radius must be positive, got %g", radius)
	}
	if step <= 0 {
		return nil, fmt.Errorf("ray step must be positive, got %g", step)
	}
	if sensor == nil {
		return nil, fmt.Errorf("sensor is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Simulation{
		width:  width,
		height: height,
		radius: radius,
		margin: margin,
		sensor: sensor,
		caster: raycast.NewCaster(width, height, step),
		logger: logger,
	}, nil
}

// NewFromScene builds the simulation described by a scene config.
func NewFromScene(scene *config.Scene, logger *zap.Logger) (*Simulation, error) {
	sensor, err := NewSensor(
		scene.Lidar.Rays,
		scene.Circles.Radius,
		common.Radians(scene.Lidar.RotationStepDeg),
		common.Radians(scene.Lidar.TiltStepDeg),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sensor: %w", err)
	}

	sim, err := NewSimulation(scene.Field.Width, scene.Field.Height, scene.Circles.Radius, scene.Field.Margin, scene.Lidar.Step, sensor, logger)
	if err != nil {
		return nil, err
	}

	for i, p := range scene.Circles.Positions {
		team := EnemyTeam
		if i < scene.Circles.HomeCount {
			team = HomeTeam
		}
		sim.AddCircle(common.NewVector(p[0], p[1]), team)
	}
	for i, g := range scene.Goals {
		sim.AddGoal(NewGoal(fmt.Sprintf("goal-%d", i), g.Rect.X(), g.Rect.Y(), g.Rect.Width(), g.Rect.Height(), g.Color.RGBA))
	}
	return sim, nil
}

// AddCircle places a circle on the field. Initial positions are not validated.
func (s *Simulation) AddCircle(pos common.Vector, team Team) *Circle {
	c := NewCircle(pos, team)
	s.circles = append(s.circles, c)
	s.logger.Debug("circle added", zap.String("id", c.GetID()), zap.Stringer("team", team))
	return c
}

// AddGoal places a goal on the field.
func (s *Simulation) AddGoal(g *Goal) {
	s.goals = append(s.goals, g)
}

func (s *Simulation) Width() float64  { return s.width }
func (s *Simulation) Height() float64 { return s.height }
func (s *Simulation) Radius() float64 { return s.radius }

// Circles returns the circles in insertion order.
func (s *Simulation) Circles() []*Circle {
	return s.circles
}

// Goals returns the goals in insertion order.
func (s *Simulation) Goals() []*Goal {
	return s.goals
}

// Objects returns everything on the field: circles first, then goals, each in insertion order.
func (s *Simulation) Objects() []SimulationObject {
	objects := make([]SimulationObject, 0, len(s.circles)+len(s.goals))
	for _, c := range s.circles {
		objects = append(objects, c)
	}
	for _, g := range s.goals {
		objects = append(objects, g)
	}
	return objects
}

func (s *Simulation) Sensor() *Sensor {
	return s.sensor
}

// IsValidPosition reports whether circle index may move to pos: inside the inset
// field and at least two radii from every other circle.
func (s *Simulation) IsValidPosition(index int, pos common.Vector) bool {
	if index < 0 || index >= len(s.circles) {
		return false
	}

	inset := s.margin + s.radius
	// The left edge is exclusive, the top edge inclusive.
	if !(pos.X > inset && pos.X <= s.width-inset) {
		return false
	}
	if !(pos.Y >= inset && pos.Y <= s.height-inset) {
		return false
	}

	for i, c := range s.circles {
		if i == index {
			continue
		}
		if common.Distance(pos, c.position) < 2*s.radius {
			return false
		}
	}
	return true
}

// BeginDrag grabs the first circle whose center lies within one radius of pos.
// It returns the circle's index, or -1 when nothing was grabbed.
func (s *Simulation) BeginDrag(pos common.Vector) int {
	for i, c := range s.circles {
		if common.Distance(pos, c.position) <= s.radius {
			c.dragging = true
			s.logger.Debug("drag started", zap.String("id", c.id), zap.Int("index", i))
			return i
		}
	}
	return -1
}

// DragTo moves every dragged circle to pos when the position is valid for it.
// It reports whether any circle moved.
func (s *Simulation) DragTo(pos common.Vector) bool {
	moved := false
	for i, c := range s.circles {
		if !c.dragging {
			continue
		}
		if !s.IsValidPosition(i, pos) {
			s.logger.Debug("drag position rejected", zap.String("id", c.id), zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
			continue
		}
		c.position = pos
		moved = true
	}
	return moved
}

// EndDrag releases all circles.
func (s *Simulation) EndDrag() {
	for _, c := range s.circles {
		if c.dragging {
			s.logger.Debug("drag ended", zap.String("id", c.id), zap.String("pos", common.Format(c.position)))
		}
		c.dragging = false
	}
}

// Dragging reports whether any circle is being dragged.
func (s *Simulation) Dragging() bool {
	for _, c := range s.circles {
		if c.dragging {
			return true
		}
	}
	return false
}

// Rotate turns the sensor by steps rotation steps.
func (s *Simulation) Rotate(steps int) {
	s.sensor.Rotate(steps)
	s.logger.Debug("sensor rotated", zap.Float64("rotation", s.sensor.Rotation()))
}

// Tilt tilts the sensor beams by steps tilt steps.
func (s *Simulation) Tilt(steps int) {
	s.sensor.TiltBy(steps)
	s.logger.Debug("sensor tilted", zap.Float64("tilt", s.sensor.Tilt()))
}

// CastRays emits n rays from a sensor centered at origin and rebuilds the collision
// tally. Circles other than the sensor carrier and all goals stop the rays.
// Only wall hits are counted.
func (s *Simulation) CastRays(origin common.Vector, n int) []raycast.Ray {
	s.collisions = raycast.Tally{}
	if n <= 0 {
		return []raycast.Ray{}
	}

	obstacles := s.obstacles()
	rays := make([]raycast.Ray, 0, n)
	for i := 0; i < n; i++ {
		start, dir := s.sensor.Beam(origin, i, n)
		ray := s.caster.March(start, dir, obstacles)
		s.collisions.Record(ray)
		rays = append(rays, ray)
	}
	return rays
}

func (s *Simulation) obstacles() raycast.Obstacles {
	obstacles := raycast.Obstacles{}
	for i, c := range s.circles {
		if i == SensorCircle {
			continue
		}
		obstacles.Discs = append(obstacles.Discs, raycast.Disc{Index: i, Center: c.position, Radius: s.radius})
	}
	for _, g := range s.goals {
		obstacles.Goals = append(obstacles.Goals, g.bounds)
	}
	return obstacles
}

// Step recomputes the frame's rays from the sensor circle.
func (s *Simulation) Step() {
	if len(s.circles) <= SensorCircle {
		s.rays = nil
		s.collisions = raycast.Tally{}
		return
	}
	s.rays = s.CastRays(s.circles[SensorCircle].position, s.sensor.Rays())
}

// Rays returns the rays of the last Step.
func (s *Simulation) Rays() []raycast.Ray {
	return s.rays
}

// Collisions returns the wall tally of the last ray cast.
func (s *Simulation) Collisions() raycast.Tally {
	return s.collisions
}

// PrintState logs the current scene.
func (s *Simulation) PrintState() {
	for _, obj := range s.Objects() {
		s.logger.Info("object",
			zap.String("id", obj.GetID()),
			zap.String("pos", common.Format(obj.GetPosition())),
			zap.Stringer("object", obj),
		)
	}
	s.logger.Info("sensor", zap.Stringer("sensor", s.sensor))
}
