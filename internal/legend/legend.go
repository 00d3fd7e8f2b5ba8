// Package legend draws a vertical color-gradient legend next to a chart.
//
// The legend is a strip of thin filled rectangles sampled from a color scale,
// with the domain bounds written beside its top and bottom ends.
package legend

import (
	"image/color"
	"strconv"

	"github.com/rook-computer/heatlegend/internal/render"
)

const (
	DefaultGap         = 20.0 // between the chart's right edge and the strip
	DefaultWidth       = 30.0
	DefaultSteps       = 100
	DefaultLabelOffset = 5.0
	DefaultClass       = "legend"
	DefaultFontFamily  = "Times New Roman"
	DefaultFontSize    = 15.0
	DefaultFontWeight  = 500
)

// Margin is the chart inset.
type Margin struct {
	Top, Bottom, Left, Right float64
}

// ColorScale maps a value of the legend domain to a color.
// A nil color is passed through as an undefined fill.
type ColorScale interface {
	At(v float64) color.Color
}

// Domain is the value range the legend covers and the unit it is labeled with.
type Domain struct {
	Min, Max float64
	Unit     string
}

// DefaultDomain is 0 to 40 degrees Celsius.
func DefaultDomain() Domain {
	return Domain{Min: 0, Max: 40, Unit: "Celsius"}
}

func (d Domain) MinLabel() string { return boundLabel(d.Min, d.Unit) }
func (d Domain) MaxLabel() string { return boundLabel(d.Max, d.Unit) }

func boundLabel(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Options controls legend layout. Zero Steps, Class and label font fields take defaults.
type Options struct {
	Domain      Domain
	Gap         float64
	Width       float64
	Steps       int
	LabelOffset float64
	LabelStyle  render.TextStyle
	Class       string
}

func DefaultOptions() Options {
	return Options{
		Domain:      DefaultDomain(),
		Gap:         DefaultGap,
		Width:       DefaultWidth,
		Steps:       DefaultSteps,
		LabelOffset: DefaultLabelOffset,
		LabelStyle: render.TextStyle{
			Anchor:     render.AnchorStart,
			FontFamily: DefaultFontFamily,
			FontSize:   DefaultFontSize,
			FontWeight: DefaultFontWeight,
		},
		Class: DefaultClass,
	}
}

func (o Options) withDefaults() Options {
	if o.Steps <= 0 {
		o.Steps = DefaultSteps
	}
	if o.Class == "" {
		o.Class = DefaultClass
	}
	if o.LabelStyle.FontFamily == "" {
		o.LabelStyle.FontFamily = DefaultFontFamily
	}
	if o.LabelStyle.FontSize <= 0 {
		o.LabelStyle.FontSize = DefaultFontSize
	}
	if o.LabelStyle.FontWeight <= 0 {
		o.LabelStyle.FontWeight = DefaultFontWeight
	}
	return o
}

// Geometry is the placement of a legend derived from the chart it belongs to.
type Geometry struct {
	X, Y          float64
	Width, Height float64
	Steps         int
	StepSize      float64
	// ValueScale maps the legend domain onto [Y, Y+Height].
	// Steps are placed by direct subdivision, not through this scale.
	ValueScale LinearScale
}

// ComputeGeometry returns the default legend placement for a chart.
func ComputeGeometry(chartWidth, chartHeight float64, margin Margin, adjust float64) Geometry {
	return DefaultOptions().Geometry(chartWidth, chartHeight, margin, adjust)
}

// Geometry returns the legend placement for a chart under o.
// The height is not validated: a non-positive value produces an invisible legend.
func (o Options) Geometry(chartWidth, chartHeight float64, margin Margin, adjust float64) Geometry {
	o = o.withDefaults()
	x := chartWidth + o.Gap
	y := margin.Top
	height := chartHeight - margin.Top - margin.Bottom - adjust
	return Geometry{
		X:          x,
		Y:          y,
		Width:      o.Width,
		Height:     height,
		Steps:      o.Steps,
		StepSize:   height / float64(o.Steps),
		ValueScale: NewLinearScale(o.Domain.Min, o.Domain.Max, y, y+height),
	}
}

// Samples returns steps evenly spaced values starting at d.Min with stride
// (Max-Min)/steps. d.Max itself is never included.
func Samples(d Domain, steps int) []float64 {
	if steps <= 0 {
		return nil
	}
	stride := (d.Max - d.Min) / float64(steps)
	out := make([]float64, steps)
	for i := range out {
		out[i] = d.Min + float64(i)*stride
	}
	return out
}

// Render appends a 0-40 Celsius legend to canvas, to the right of a chart of
// chartWidth x chartHeight. adjust is subtracted from the legend height.
func Render(canvas render.Surface, chartWidth, chartHeight float64, margin Margin, scale ColorScale, adjust float64) {
	RenderWith(canvas, DefaultOptions(), chartWidth, chartHeight, margin, scale, adjust)
}

// RenderWith appends a legend group to canvas; both the sampled values and the
// bound labels come from opts.Domain. Each call appends a new group.
func RenderWith(canvas render.Surface, opts Options, chartWidth, chartHeight float64, margin Margin, scale ColorScale, adjust float64) Geometry {
	opts = opts.withDefaults()
	geo := opts.Geometry(chartWidth, chartHeight, margin, adjust)
	group := canvas.AppendGroup(opts.Class)

	for i, v := range Samples(opts.Domain, geo.Steps) {
		var fill color.Color
		if scale != nil {
			fill = scale.At(v)
		}
		group.AppendRect(render.Rect{
			X:      geo.X,
			Y:      geo.Y + float64(i)*geo.StepSize,
			Width:  geo.Width,
			Height: geo.StepSize + 1, // overlap neighbours to hide seams
			Fill:   fill,
		})
	}

	labelX := geo.X + geo.Width + opts.LabelOffset
	group.AppendText(render.Text{
		X:       labelX,
		Y:       geo.Y + opts.LabelOffset,
		Content: opts.Domain.MinLabel(),
		Style:   opts.LabelStyle,
	})
	group.AppendText(render.Text{
		X:       labelX,
		Y:       geo.Y + geo.Height - opts.LabelOffset,
		Content: opts.Domain.MaxLabel(),
		Style:   opts.LabelStyle,
	})
	return geo
}
