package common

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector represents a point or direction on the 2D field.
// Y grows downwards, matching screen space.
//
// The helpers below spell out their arithmetic with explicit float64 conversions so
// that every product is rounded on its own and never fused into a multiply-add.
// Ray endpoints and strict "<" distance checks depend on those exact bits.
type Vector = r2.Vec

// NewVector creates a vector from its coordinates.
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Distance calculates the Euclidean distance between two points as sqrt(dx²+dy²).
func Distance(a, b Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(float64(dx*dx) + float64(dy*dy))
}

// pi is held in a variable so π/180 is a float64 division at run time,
// not an exact constant expression.
var pi = math.Pi

// Radians converts degrees to radians as deg * (π/180).
func Radians(deg float64) float64 {
	return deg * (pi / 180)
}

// Direction returns the unit vector pointing at angle (radians).
func Direction(angle float64) Vector {
	return Vector{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Polar returns origin + (cos(angle)*length, sin(angle)*length).
func Polar(origin Vector, angle, length float64) Vector {
	return Vector{
		X: origin.X + float64(math.Cos(angle)*length),
		Y: origin.Y + float64(math.Sin(angle)*length),
	}
}

// Sample returns the n-th point on a ray marched in increments of step:
// start + (dir*n)*step, scaled in that order.
func Sample(start, dir Vector, n int, step float64) Vector {
	l := float64(n)
	return Vector{
		X: start.X + float64(float64(dir.X*l)*step),
		Y: start.Y + float64(float64(dir.Y*l)*step),
	}
}

// Along returns origin + dir*length.
func Along(origin, dir Vector, length float64) Vector {
	return r2.Add(origin, r2.Scale(length, dir))
}

// Format returns a short string representation of the vector.
func Format(v Vector) string {
	return fmt.Sprintf("[%.3f, %.3f]", v.X, v.Y)
}
