package visualization

import (
	"image/color"

	"lidar-sim/internal/config"
	"lidar-sim/internal/control"
	"lidar-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

const (
	panelTextX      = 10 // offset from the panel's left edge
	panelTextTop    = 20
	panelLineHeight = 30
)

// Renderer implements ebiten.Game: it feeds input to the controller and draws the scene.
type Renderer struct {
	sim        *simulation.Simulation
	controller *control.Controller
	scene      *config.Scene
	logger     *zap.Logger

	screenWidth  int
	screenHeight int
}

// NewRenderer creates a renderer for sim laid out as described by scene.
func NewRenderer(sim *simulation.Simulation, scene *config.Scene, logger *zap.Logger) *Renderer {
	return &Renderer{
		sim:          sim,
		controller:   control.NewController(sim),
		scene:        scene,
		logger:       logger,
		screenWidth:  int(sim.Width()) + scene.Field.PanelWidth,
		screenHeight: int(sim.Height()),
	}
}

// Size returns the fixed window size: the field plus the debug panel.
func (r *Renderer) Size() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Update is called every tick.
func (r *Renderer) Update() error {
	if !r.controller.Update(ebitenInput{}) {
		r.logger.Info("quit requested, shutting down")
		return ebiten.Termination
	}
	return nil
}

// Draw renders the rays computed by the last Update.
func (r *Renderer) Draw(screen *ebiten.Image) {
	field := r.scene.Field
	w, h := float32(r.sim.Width()), float32(r.sim.Height())

	screen.Fill(field.Color.RGBA)

	// Border strokes are centered on the path; inset them to stay inside the field.
	bw := float32(field.BorderWidth)
	vector.StrokeRect(screen, bw/2, bw/2, w-bw, h-bw, bw, field.BorderColor.RGBA, false)
	m := field.Markings
	vector.StrokeRect(screen, float32(m.Rect.X()), float32(m.Rect.Y()), float32(m.Rect.Width()), float32(m.Rect.Height()), float32(m.Width), m.Color.RGBA, false)

	for _, g := range r.sim.Goals() {
		b := g.Bounds()
		vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Max.X-b.Min.X), float32(b.Max.Y-b.Min.Y), g.Color(), false)
	}

	r.drawCircles(screen)

	lidar := r.scene.Lidar
	for _, ray := range r.sim.Rays() {
		vector.StrokeLine(screen, float32(ray.Start.X), float32(ray.Start.Y), float32(ray.End.X), float32(ray.End.Y), float32(lidar.Width), lidar.Color.RGBA, true)
	}

	r.drawPanel(screen)
}

func (r *Renderer) drawCircles(screen *ebiten.Image) {
	radius := float32(r.sim.Radius())
	for _, c := range r.sim.Circles() {
		var clr color.RGBA
		if c.Team() == simulation.HomeTeam {
			clr = r.scene.Circles.HomeColor.RGBA
		} else {
			clr = r.scene.Circles.EnemyColor.RGBA
		}
		pos := c.GetPosition()
		// Centers snap to whole pixels.
		vector.DrawFilledCircle(screen, float32(int(pos.X)), float32(int(pos.Y)), radius, clr, true)
	}
}

func (r *Renderer) drawPanel(screen *ebiten.Image) {
	x := float32(r.sim.Width())
	vector.DrawFilledRect(screen, x, 0, float32(r.scene.Field.PanelWidth), float32(r.screenHeight), r.scene.Panel.Color.RGBA, false)

	if r.scene.Field.PanelWidth == 0 {
		return
	}
	for i, line := range control.PanelLines(r.sim) {
		ebitenutil.DebugPrintAt(screen, line, int(x)+panelTextX, panelTextTop+i*panelLineHeight)
	}
}

// Layout keeps the logical screen at the field-plus-panel size.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.screenWidth, r.screenHeight
}
