package visualization

import (
	"lidar-sim/internal/control"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var _ control.InputSource = ebitenInput{}

var keyBindings = map[control.Key]ebiten.Key{
	control.KeyLeft:  ebiten.KeyArrowLeft,
	control.KeyRight: ebiten.KeyArrowRight,
	control.KeyUp:    ebiten.KeyArrowUp,
	control.KeyDown:  ebiten.KeyArrowDown,
	control.KeyQuit:  ebiten.KeyEscape,
}

// ebitenInput reads the keyboard and left mouse button through ebiten.
type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) IsKeyJustPressed(key control.Key) bool {
	k, ok := keyBindings[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

func (ebitenInput) IsButtonJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) IsButtonJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}
