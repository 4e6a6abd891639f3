package simulation

import (
	"fmt"

	"lidar-sim/internal/common"

	"github.com/google/uuid"
)

// Team decides how a circle is drawn.
type Team int

const (
	HomeTeam Team = iota
	EnemyTeam
)

func (t Team) String() string {
	if t == HomeTeam {
		return "home"
	}
	return "enemy"
}

// Circle is a draggable player on the field.
type Circle struct {
	id       string
	position common.Vector
	team     Team
	dragging bool
}

// NewCircle creates a circle centered at pos.
func NewCircle(pos common.Vector, team Team) *Circle {
	return &Circle{
		id:       fmt.Sprintf("circle-%s", uuid.NewString()[:8]),
		position: pos,
		team:     team,
	}
}

// GetID returns the unique identifier of the circle.
func (c *Circle) GetID() string {
	return c.id
}

// GetPosition returns the center of the circle.
func (c *Circle) GetPosition() common.Vector {
	return c.position
}

func (c *Circle) Team() Team {
	return c.team
}

// Dragging reports whether the circle follows the pointer.
func (c *Circle) Dragging() bool {
	return c.dragging
}

// String representation for logging
func (c *Circle) String() string {
	return fmt.Sprintf("Circle[%s] Pos: %s Team: %s", c.id, common.Format(c.position), c.team)
}
