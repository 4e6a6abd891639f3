package simulation

import (
	"fmt"
	"math"

	"lidar-sim/internal/common"
)

// Sensor is the lidar mounted on a circle. It emits evenly spaced rays from the
// circle's edge.
//
// Rotation turns the mount points around the circle. Tilt turns each beam's travel
// direction away from its mount angle. Neither angle is wrapped.
type Sensor struct {
	rays         int
	mountRadius  float64 // distance from the circle's center to the mount points
	rotation     float64
	tilt         float64
	rotationStep float64
	tiltStep     float64
}

// NewSensor creates a sensor with the given ray count and per-keypress steps (radians).
func NewSensor(rays int, mountRadius, rotationStep, tiltStep float64) (*Sensor, error) {
	if rays < 0 {
		return nil, fmt.Errorf("ray count must not be negative, got %d", rays)
	}
	if mountRadius <= 0 {
		return nil, fmt.Errorf("mount radius must be positive, got %g", mountRadius)
	}
	return &Sensor{
		rays:         rays,
		mountRadius:  mountRadius,
		rotationStep: rotationStep,
		tiltStep:     tiltStep,
	}, nil
}

// Rays returns the number of rays emitted per frame.
func (s *Sensor) Rays() int {
	return s.rays
}

// Rotation returns the current rotation offset in radians.
func (s *Sensor) Rotation() float64 {
	return s.rotation
}

// Tilt returns the current tilt offset in radians.
func (s *Sensor) Tilt() float64 {
	return s.tilt
}

// SetAngles overrides both offsets.
func (s *Sensor) SetAngles(rotation, tilt float64) {
	s.rotation = rotation
	s.tilt = tilt
}

// Rotate moves the rotation offset by steps rotation steps (negative turns the other way).
func (s *Sensor) Rotate(steps int) {
	s.rotation += float64(float64(steps) * s.rotationStep)
}

// TiltBy moves the tilt offset by steps tilt steps.
func (s *Sensor) TiltBy(steps int) {
	s.tilt += float64(float64(steps) * s.tiltStep)
}

// Beam returns the mount point and unit travel direction of ray i out of n,
// for a sensor centered at origin.
func (s *Sensor) Beam(origin common.Vector, i, n int) (start, dir common.Vector) {
	angleStep := 2 * math.Pi / float64(n)
	base := float64(float64(i)*angleStep) + s.rotation
	start = common.Polar(origin, base, s.mountRadius)
	dir = common.Direction(base + s.tilt)
	return start, dir
}

func (s *Sensor) String() string {
	return fmt.Sprintf("Sensor Rays: %d Rotation: %.3f Tilt: %.3f", s.rays, s.rotation, s.tilt)
}
