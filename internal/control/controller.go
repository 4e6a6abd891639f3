package control

import (
	"fmt"
	"math"
	"strings"

	"lidar-sim/internal/common"
	"lidar-sim/internal/raycast"
	"lidar-sim/internal/simulation"
)

// FrameInput is the pointer and keyboard activity collected during one frame.
// Key fields are edges: true only on the frame the key went down.
type FrameInput struct {
	Cursor   common.Vector
	Pressed  bool // left button went down
	Released bool // left button went up

	Left  bool
	Right bool
	Up    bool
	Down  bool
	Quit  bool
}

// Controller turns frame input into simulation updates.
type Controller struct {
	sim        *simulation.Simulation
	lastCursor common.Vector
}

// NewController creates a controller driving sim.
func NewController(sim *simulation.Simulation) *Controller {
	return &Controller{sim: sim}
}

// Apply handles one frame of input and then recomputes the rays.
func (c *Controller) Apply(in FrameInput) {
	c.mouse(in)
	c.keyboard(in)
	c.sim.Step()
}

func (c *Controller) mouse(in FrameInput) {
	moved := in.Cursor != c.lastCursor
	c.lastCursor = in.Cursor

	if in.Pressed {
		c.sim.BeginDrag(in.Cursor)
	} else if moved && c.sim.Dragging() {
		c.sim.DragTo(in.Cursor)
	}
	if in.Released {
		c.sim.EndDrag()
	}
}

func (c *Controller) keyboard(in FrameInput) {
	if in.Left {
		c.sim.Rotate(-1)
	} else if in.Right {
		c.sim.Rotate(1)
	}
	if in.Down {
		c.sim.Tilt(-1)
	} else if in.Up {
		c.sim.Tilt(1)
	}
}

// PanelLines returns the debug panel text, one entry per line.
func PanelLines(sim *simulation.Simulation) []string {
	tally := sim.Collisions()
	lines := make([]string, 0, raycast.NumWalls+2)
	for _, w := range raycast.Walls {
		name := w.String()
		lines = append(lines, fmt.Sprintf("%s collisions: %d", strings.ToUpper(name[:1])+name[1:], tally.Count(w)))
	}
	lines = append(lines,
		fmt.Sprintf("TILT: %d", degrees(sim.Sensor().Tilt())),
		fmt.Sprintf("ROTATION: %d", degrees(sim.Sensor().Rotation())),
	)
	return lines
}

// degrees converts radians to whole degrees, rounding half to even.
func degrees(rad float64) int {
	return int(math.RoundToEven(rad * 180 / math.Pi))
}
