package simulation

import (
	"fmt"

	"lidar-sim/internal/common"
)

var (
	_ SimulationObject = (*Circle)(nil)
	_ SimulationObject = (*Goal)(nil)
)

// SimulationObject is anything placed on the field.
type SimulationObject interface {
	fmt.Stringer
	// GetID returns the unique identifier of the object.
	GetID() string
	// GetPosition returns the anchor point of the object: a circle's center, a goal's top-left corner.
	GetPosition() common.Vector
}
