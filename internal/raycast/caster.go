package raycast

import (
	"lidar-sim/internal/common"

	"gonum.org/v1/gonum/spatial/r2"
)

// Wall identifies one side of the field.
type Wall int

const (
	Top Wall = iota
	Bottom
	Left
	Right

	NumWalls = 4
)

// Walls lists the sides in display order.
var Walls = [NumWalls]Wall{Top, Bottom, Left, Right}

func (w Wall) String() string {
	switch w {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// HitKind describes what terminated a ray.
type HitKind int

const (
	HitNone HitKind = iota // ran out of length
	HitWall
	HitCircle
	HitGoal
)

func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitCircle:
		return "circle"
	case HitGoal:
		return "goal"
	default:
		return "none"
	}
}

// Disc is a circular obstacle. Index is the caller's identifier, reported back in Ray.Target.
type Disc struct {
	Index  int
	Center common.Vector
	Radius float64
}

// Obstacles are scanned in slice order; the first match wins.
type Obstacles struct {
	Discs []Disc
	Goals []r2.Box
}

// Ray is a single lidar beam from its mount point to its first obstruction.
type Ray struct {
	Start  common.Vector
	End    common.Vector
	Hit    HitKind
	Wall   Wall // valid when Hit == HitWall
	Target int  // Disc.Index or goal slice index, valid for HitCircle / HitGoal
}

// Caster marches rays across a field spanning [0, Width] x [0, Height].
type Caster struct {
	Width  float64
	Height float64
	Step   float64 // distance covered per sample
	Limit  int     // samples are taken for lengths 1 .. Limit-1
}

// NewCaster creates a caster whose march limit is the larger field dimension.
func NewCaster(width, height, step float64) Caster {
	limit := int(width)
	if int(height) > limit {
		limit = int(height)
	}
	return Caster{Width: width, Height: height, Step: step, Limit: limit}
}

// March steps a ray from start along dir until it leaves the field or touches an obstacle.
// Per sample the checks run in a fixed order: left/right exit, top/bottom exit, discs, goals.
// A ray that never terminates ends at its last sample.
func (c Caster) March(start, dir common.Vector, obstacles Obstacles) Ray {
	ray := Ray{Start: start, End: start, Hit: HitNone}

	for length := 1; length < c.Limit; length++ {
		p := common.Sample(start, dir, length, c.Step)
		ray.End = p

		if wall, end, ok := c.exit(p); ok {
			ray.End = end
			ray.Hit = HitWall
			ray.Wall = wall
			return ray
		}

		for _, d := range obstacles.Discs {
			if common.Distance(p, d.Center) < d.Radius {
				ray.Hit = HitCircle
				ray.Target = d.Index
				return ray
			}
		}

		for i, g := range obstacles.Goals {
			if g.Contains(p) {
				ray.Hit = HitGoal
				ray.Target = i
				return ray
			}
		}
	}

	return ray
}

// exit reports the wall crossed by p, if any, and the point clamped onto it.
func (c Caster) exit(p common.Vector) (Wall, common.Vector, bool) {
	if p.X <= 0 {
		return Left, common.NewVector(0, p.Y), true
	} else if p.X >= c.Width {
		return Right, common.NewVector(c.Width, p.Y), true
	}
	if p.Y <= 0 {
		return Top, common.NewVector(p.X, 0), true
	} else if p.Y >= c.Height {
		return Bottom, common.NewVector(p.X, c.Height), true
	}
	return 0, p, false
}

// Tally counts wall hits per side.
type Tally [NumWalls]int

// Record adds the ray to the tally when it ended on a wall.
func (t *Tally) Record(ray Ray) {
	if ray.Hit == HitWall {
		t[ray.Wall]++
	}
}

// Count returns the number of hits recorded for w.
func (t Tally) Count(w Wall) int {
	if w < 0 || w >= NumWalls {
		return 0
	}
	return t[w]
}

// Total returns the number of wall hits over all sides.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}
