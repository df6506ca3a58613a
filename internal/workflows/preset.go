package workflows

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/figprep/figprep/internal/compose"
)

// Preset is the YAML form of batch crop settings, so a directory of
// figures can carry its icon style in a checked-in file.
type Preset struct {
	Sides       int     `yaml:"sides"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Rotation    float64 `yaml:"rotation"`
	ShiftX      int     `yaml:"shift_x"`
	ShiftY      int     `yaml:"shift_y"`
	BorderWidth int     `yaml:"border_width"`
	BorderColor string  `yaml:"border_color"`
	Padding     int     `yaml:"padding"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset %s: %w", path, err)
	}
	// Hexagon unless the preset says otherwise.
	p := Preset{Sides: 6, BorderColor: "auto"}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return p, nil
}

// Options resolves the preset into batch options, parsing the border
// color ("auto", a name, or a hex string).
func (p Preset) Options() (Options, error) {
	border, err := compose.ParseBorderColor(p.BorderColor)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Sides:        p.Sides,
		CanvasWidth:  p.Width,
		CanvasHeight: p.Height,
		RotationDeg:  p.Rotation,
		ShiftX:       p.ShiftX,
		ShiftY:       p.ShiftY,
		BorderWidth:  p.BorderWidth,
		BorderColor:  border,
		Padding:      p.Padding,
	}, nil
}
