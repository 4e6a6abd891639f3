package simulation

import (
	"fmt"
	"image/color"

	"lidar-sim/internal/common"

	"gonum.org/v1/gonum/spatial/r2"
)

// Goal is a static rectangular target zone. Rays stop when they enter it.
type Goal struct {
	id     string
	bounds r2.Box
	color  color.RGBA
}

// NewGoal creates a goal spanning [x, x+width] x [y, y+height].
func NewGoal(id string, x, y, width, height float64, clr color.RGBA) *Goal {
	return &Goal{
		id: id,
		bounds: r2.Box{
			Min: common.NewVector(x, y),
			Max: common.NewVector(x+width, y+height),
		},
		color: clr,
	}
}

func (g *Goal) GetID() string {
	return g.id
}

// GetPosition returns the top-left corner of the goal.
func (g *Goal) GetPosition() common.Vector {
	return g.bounds.Min
}

// Bounds returns the goal rectangle. Its edges count as inside.
func (g *Goal) Bounds() r2.Box {
	return g.bounds
}

func (g *Goal) Color() color.RGBA {
	return g.color
}

func (g *Goal) String() string {
	return fmt.Sprintf("Goal[%s] Min: %s Max: %s", g.id, common.Format(g.bounds.Min), common.Format(g.bounds.Max))
}
