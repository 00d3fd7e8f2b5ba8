package colorscale

import (
	"fmt"
	"image/color"
	"sort"
)

// Preset tables are defined over [0, 1] and rescaled to the legend domain.
var (
	thermal = GradientTable{
		{MustParseHex("#313695"), 0.0},
		{MustParseHex("#4575b4"), 0.15},
		{MustParseHex("#74add1"), 0.3},
		{MustParseHex("#abd9e9"), 0.4},
		{MustParseHex("#fee090"), 0.55},
		{MustParseHex("#fdae61"), 0.7},
		{MustParseHex("#f46d43"), 0.85},
		{MustParseHex("#a50026"), 1.0},
	}

	viridis = GradientTable{
		{MustParseHex("#440154"), 0.0},
		{MustParseHex("#3b528b"), 0.25},
		{MustParseHex("#21918c"), 0.5},
		{MustParseHex("#5ec962"), 0.75},
		{MustParseHex("#fde725"), 1.0},
	}

	// Cold to hot through green, the ramp used by the temperature widgets.
	traffic = GradientTable{
		{MustParseHex("#0000ff"), 0.0},
		{MustParseHex("#00ff00"), 0.5},
		{MustParseHex("#ff0000"), 1.0},
	}
)

var presets = map[string]func(min, max float64) Scale{
	"thermal": func(min, max float64) Scale { return thermal.Rescaled(min, max) },
	"viridis": func(min, max float64) Scale { return viridis.Rescaled(min, max) },
	"traffic": func(min, max float64) Scale { return traffic.Rescaled(min, max) },
	"grayscale": func(min, max float64) Scale {
		return Grayscale(min, max)
	},
}

const DefaultName = "thermal"

// Thermal returns a blue to red diverging scale over [min, max].
func Thermal(min, max float64) Scale { return thermal.Rescaled(min, max) }

// Grayscale returns a black to white scale over [min, max], clamped at both ends.
func Grayscale(min, max float64) Scale {
	return Func(func(v float64) color.Color {
		t := 0.0
		if max != min {
			t = (v - min) / (max - min)
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		return color.Gray{Y: uint8(t*255 + 0.5)}
	})
}

// Lookup returns the named preset spanning [min, max].
func Lookup(name string, min, max float64) (Scale, error) {
	if name == "" {
		name = DefaultName
	}
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return build(min, max), nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
