package main

import (
	"flag"

	"github.com/rook-computer/heatlegend/internal/config"
)

// overrides holds flag values that win over file and environment settings.
// Only flags set on the command line are applied.
type overrides struct {
	width, height            *float64
	top, bottom, left, right *float64
	adjust                   *float64
	min, max                 *float64
	unit                     *string
	scale                    *string
	format, out              *string
	zoom                     *float64
	listen                   *string
	dev                      *bool
	publicURL                *string
}

func newOverrides(fs *flag.FlagSet) *overrides {
	d := config.Default()
	return &overrides{
		width:     fs.Float64("width", d.Chart.Width, "host chart width"),
		height:    fs.Float64("height", d.Chart.Height, "host chart height"),
		top:       fs.Float64("top", d.Chart.Margin.Top, "chart top margin"),
		bottom:    fs.Float64("bottom", d.Chart.Margin.Bottom, "chart bottom margin"),
		left:      fs.Float64("left", d.Chart.Margin.Left, "chart left margin"),
		right:     fs.Float64("right", d.Chart.Margin.Right, "chart right margin"),
		adjust:    fs.Float64("adjust", d.Chart.Adjust, "subtracted from the legend height"),
		min:       fs.Float64("min", d.Legend.Min, "legend domain minimum"),
		max:       fs.Float64("max", d.Legend.Max, "legend domain maximum"),
		unit:      fs.String("unit", d.Legend.Unit, "unit written after the bound labels"),
		scale:     fs.String("scale", d.Scale, "color scale: grayscale | thermal | traffic | viridis; also configurable via "+config.EnvScale),
		format:    fs.String("format", d.Output.Format, "output format: svg | png | fb; also configurable via "+config.EnvFormat),
		out:       fs.String("o", "", "output file (default stdout)"),
		zoom:      fs.Float64("zoom", d.Output.Scale, "pixels per unit for png and fb output"),
		listen:    fs.String("listen", d.Server.ListenAddr, "http listen address; also configurable via "+config.EnvListenAddr),
		dev:       fs.Bool("dev", d.Server.DevMode, "enable dev mode (permissive CORS); also configurable via "+config.EnvDevMode),
		publicURL: fs.String("public-url", "", "base URL encoded into the share QR code; also configurable via "+config.EnvPublicURL),
	}
}

func (o *overrides) apply(fs *flag.FlagSet, cfg config.Config) config.Config {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Chart.Width = *o.width
		case "height":
			cfg.Chart.Height = *o.height
		case "top":
			cfg.Chart.Margin.Top = *o.top
		case "bottom":
			cfg.Chart.Margin.Bottom = *o.bottom
		case "left":
			cfg.Chart.Margin.Left = *o.left
		case "right":
			cfg.Chart.Margin.Right = *o.right
		case "adjust":
			cfg.Chart.Adjust = *o.adjust
		case "min":
			cfg.Legend.Min = *o.min
		case "max":
			cfg.Legend.Max = *o.max
		case "unit":
			cfg.Legend.Unit = *o.unit
		case "scale":
			cfg.Scale = *o.scale
		case "format":
			cfg.Output.Format = *o.format
		case "o":
			cfg.Output.Path = *o.out
		case "zoom":
			cfg.Output.Scale = *o.zoom
		case "listen":
			cfg.Server.ListenAddr = *o.listen
		case "dev":
			cfg.Server.DevMode = *o.dev
		case "public-url":
			cfg.Server.PublicURL = *o.publicURL
		}
	})
	return cfg
}
