package control

import "lidar-sim/internal/common"

// Key is a keyboard key the controller reacts to.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyQuit
)

// InputSource reports the input state of the current frame.
// The Just* methods are edges: true only on the frame the key or button changed.
type InputSource interface {
	CursorPosition() (x, y int)
	IsKeyJustPressed(key Key) bool
	IsButtonJustPressed() bool
	IsButtonJustReleased() bool
}

// ReadFrame collects one frame of input from src.
func ReadFrame(src InputSource) FrameInput {
	x, y := src.CursorPosition()
	return FrameInput{
		Cursor:   common.NewVector(float64(x), float64(y)),
		Pressed:  src.IsButtonJustPressed(),
		Released: src.IsButtonJustReleased(),
		Left:     src.IsKeyJustPressed(KeyLeft),
		Right:    src.IsKeyJustPressed(KeyRight),
		Up:       src.IsKeyJustPressed(KeyUp),
		Down:     src.IsKeyJustPressed(KeyDown),
		Quit:     src.IsKeyJustPressed(KeyQuit),
	}
}

// Update reads a frame from src and applies it. It returns false, without touching
// the simulation, when the frame asks to quit.
func (c *Controller) Update(src InputSource) bool {
	in := ReadFrame(src)
	if in.Quit {
		return false
	}
	c.Apply(in)
	return true
}
