// Package colorscale provides value-to-color scales for legends.
package colorscale

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownScale = errors.New("unknown color scale")

// Scale maps a numeric value to a color.
type Scale interface {
	At(v float64) color.Color
}

// Func adapts a plain function to Scale.
type Func func(v float64) color.Color

func (f Func) At(v float64) color.Color { return f(v) }

// Stop is a gradient keypoint.
type Stop struct {
	Col colorful.Color
	Pos float64
}

// GradientTable is a list of stops sorted by Pos.
type GradientTable []Stop

// At returns the HCL blend between the two stops around v.
// Values outside the table clamp to the first or last stop.
func (g GradientTable) At(v float64) color.Color {
	return g.Color(v)
}

func (g GradientTable) Color(v float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if v <= g[0].Pos {
		return g[0].Col
	}
	if v >= g[len(g)-1].Pos {
		return g[len(g)-1].Col
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= v && v <= c2.Pos {
			if c2.Pos == c1.Pos {
				return c2.Col
			}
			t := (v - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, t).Clamped()
		}
	}
	return g[len(g)-1].Col
}

// Rescaled returns a copy of g with its stop positions mapped linearly from
// [g's first Pos, g's last Pos] onto [min, max].
func (g GradientTable) Rescaled(min, max float64) GradientTable {
	out := make(GradientTable, len(g))
	copy(out, g)
	if len(g) < 2 {
		return out
	}
	lo, hi := g[0].Pos, g[len(g)-1].Pos
	for i := range out {
		t := 0.0
		if hi != lo {
			t = (g[i].Pos - lo) / (hi - lo)
		}
		out[i].Pos = min + t*(max-min)
	}
	return out
}

// NewGradient builds a table from hex colors evenly spaced over [min, max].
func NewGradient(min, max float64, hexes ...string) (GradientTable, error) {
	if len(hexes) == 0 {
		return nil, errors.New("gradient needs at least one color")
	}
	table := make(GradientTable, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		pos := min
		if len(hexes) > 1 {
			pos = min + float64(i)/float64(len(hexes)-1)*(max-min)
		}
		table[i] = Stop{Col: c, Pos: pos}
	}
	sort.SliceStable(table, func(i, j int) bool { return table[i].Pos < table[j].Pos })
	return table, nil
}

// MustParseHex is for package-level color tables.
func MustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}
