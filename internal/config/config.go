package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scene.yaml
var defaultScene []byte

// Scene describes the window, the field and everything placed on it.
type Scene struct {
	Window   WindowConfig  `yaml:"window"`
	Field    FieldConfig   `yaml:"field"`
	Circles  CirclesConfig `yaml:"circles"`
	Goals    []GoalConfig  `yaml:"goals"`
	Lidar    LidarConfig   `yaml:"lidar"`
	Panel    PanelConfig   `yaml:"panel"`
	LogLevel string        `yaml:"log_level"`
}

type WindowConfig struct {
	Title string `yaml:"title"`
	TPS   int    `yaml:"tps"`
}

// FieldConfig is the play area. The debug panel is drawn to its right.
type FieldConfig struct {
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	Margin      float64        `yaml:"margin"` // extra inset applied to drag bounds
	PanelWidth  int            `yaml:"panel_width"`
	Color       Color          `yaml:"color"`
	BorderColor Color          `yaml:"border_color"`
	BorderWidth float64        `yaml:"border_width"`
	Markings    MarkingsConfig `yaml:"markings"`
}

type MarkingsConfig struct {
	Rect  Rect    `yaml:"rect"`
	Color Color   `yaml:"color"`
	Width float64 `yaml:"width"`
}

type CirclesConfig struct {
	Radius     float64 `yaml:"radius"`
	HomeColor  Color   `yaml:"home_color"`
	EnemyColor Color   `yaml:"enemy_color"`
	HomeCount  int     `yaml:"home_count"` // the first HomeCount circles play for the home team
	Positions  []Point `yaml:"positions"`
}

type GoalConfig struct {
	Rect  Rect  `yaml:"rect"`
	Color Color `yaml:"color"`
}

type LidarConfig struct {
	Rays            int     `yaml:"rays"`
	Step            float64 `yaml:"step"`
	RotationStepDeg float64 `yaml:"rotation_step_deg"`
	TiltStepDeg     float64 `yaml:"tilt_step_deg"`
	Color           Color   `yaml:"color"`
	Width           float64 `yaml:"width"`
}

type PanelConfig struct {
	Color Color `yaml:"color"`
}

// Point is an [x, y] pair.
type Point []float64

// Rect is an [x, y, width, height] quadruple.
type Rect []float64

func (r Rect) X() float64      { return r[0] }
func (r Rect) Y() float64      { return r[1] }
func (r Rect) Width() float64  { return r[2] }
func (r Rect) Height() float64 { return r[3] }

// Color decodes "#rrggbb" or "#rrggbbaa" strings.
type Color struct {
	color.RGBA
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// ParseColor parses a hex colour.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid colour %q: expected #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}}, nil
}

// LoadYAML loads a scene from a YAML reader and validates it.
func LoadYAML(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return &s, nil
}

// Default returns the scene compiled into the binary.
func Default() (*Scene, error) {
	return LoadYAML(bytes.NewReader(defaultScene))
}

// Validate checks the scene for values the simulation cannot work with.
func (s *Scene) Validate() error {
	if s.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", s.Window.TPS)
	}
	if s.Field.Width <= 0 || s.Field.Height <= 0 {
		return fmt.Errorf("field size must be positive, got %gx%g", s.Field.Width, s.Field.Height)
	}
	if s.Field.Margin < 0 {
		return fmt.Errorf("field.margin must not be negative, got %g", s.Field.Margin)
	}
	if s.Field.PanelWidth < 0 {
		return fmt.Errorf("field.panel_width must not be negative, got %d", s.Field.PanelWidth)
	}
	if err := s.Field.Markings.Rect.validate("field.markings.rect"); err != nil {
		return err
	}

	if s.Circles.Radius <= 0 {
		return fmt.Errorf("circles.radius must be positive, got %g", s.Circles.Radius)
	}
	if len(s.Circles.Positions) == 0 {
		return fmt.Errorf("at least one circle is required")
	}
	for i, p := range s.Circles.Positions {
		if len(p) != 2 {
			return fmt.Errorf("circles.positions[%d]: expected [x, y], got %d values", i, len(p))
		}
	}
	if s.Circles.HomeCount < 0 {
		return fmt.Errorf("circles.home_count must not be negative, got %d", s.Circles.HomeCount)
	}

	for i, g := range s.Goals {
		if err := g.Rect.validate(fmt.Sprintf("goals[%d].rect", i)); err != nil {
			return err
		}
	}

	if s.Lidar.Rays < 0 {
		return fmt.Errorf("lidar.rays must not be negative, got %d", s.Lidar.Rays)
	}
	if s.Lidar.Step <= 0 {
		return fmt.Errorf("lidar.step must be positive, got %g", s.Lidar.Step)
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", s.LogLevel)
	}
	return nil
}

func (r Rect) validate(name string) error {
	if len(r) != 4 {
		return fmt.Errorf("%s: expected [x, y, width, height], got %d values", name, len(r))
	}
	if r.Width() < 0 || r.Height() < 0 {
		return fmt.Errorf("%s: width and height must not be negative", name)
	}
	return nil
}
