// Package config resolves heatlegend settings from defaults, a TOML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const (
	EnvListenAddr = "HEATLEGEND_LISTEN"
	EnvDevMode    = "HEATLEGEND_DEV"
	EnvScale      = "HEATLEGEND_SCALE"
	EnvFormat     = "HEATLEGEND_FORMAT"
	EnvPublicURL  = "HEATLEGEND_PUBLIC_URL"
	EnvStdioLog   = "HEATLEGEND_STDIO_LOG"
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatFB  = "fb"
)

type Margin struct {
	Top    float64 `toml:"top"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
	Right  float64 `toml:"right"`
}

type Chart struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin Margin  `toml:"margin"`
	Adjust float64 `toml:"adjust"`
}

type Legend struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Unit string  `toml:"unit"`
}

type Output struct {
	Format string  `toml:"format"`
	Path   string  `toml:"path"` // empty means stdout
	Scale  float64 `toml:"scale"`
}

// Server contains settings for the HTTP server.
//
// PublicURL is the base address encoded into the share QR code; when empty it
// is derived from ListenAddr.
type Server struct {
	ListenAddr string `toml:"listen"`
	DevMode    bool   `toml:"dev"`
	PublicURL  string `toml:"public_url"`
}

type Config struct {
	Chart  Chart  `toml:"chart"`
	Legend Legend `toml:"legend"`
	Scale  string `toml:"scale"`
	Output Output `toml:"output"`
	Server Server `toml:"server"`
}

// Default returns the built-in configuration: a 400x300 chart with 10 unit
// vertical margins and a 0-40 Celsius thermal legend.
func Default() Config {
	return Config{
		Chart: Chart{
			Width:  400,
			Height: 300,
			Margin: Margin{Top: 10, Bottom: 10},
		},
		Legend: Legend{Min: 0, Max: 40, Unit: "Celsius"},
		Scale:  "thermal",
		Output: Output{Format: FormatSVG, Scale: 1},
		Server: Server{ListenAddr: ":8080"},
	}
}

// Load reads a TOML file over cfg. Unknown keys are rejected.
func Load(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Decode(cfg, data)
}

// Decode parses TOML data over cfg.
func Decode(cfg Config, data []byte) (Config, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config: %s", strict.String())
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with HEATLEGEND_* variables read through getenv.
func ApplyEnv(cfg Config, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvListenAddr); v != "" {
		cfg.Server.ListenAddr = v
	}
	if raw := getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.Server.DevMode = parsed
	}
	if v := getenv(EnvScale); v != "" {
		cfg.Scale = v
	}
	if v := getenv(EnvFormat); v != "" {
		cfg.Output.Format = v
	}
	if v := getenv(EnvPublicURL); v != "" {
		cfg.Server.PublicURL = v
	}
	return cfg, nil
}

// FromEnv returns Default with an optional file and the environment applied.
func FromEnv(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(cfg, path); err != nil {
			return cfg, err
		}
	}
	return ApplyEnv(cfg, os.Getenv)
}

// Validate reports settings that can not produce output.
// A non-positive legend height is allowed; it renders an empty legend.
func (c Config) Validate() error {
	numbers := []struct {
		name string
		v    float64
	}{
		{"chart.width", c.Chart.Width},
		{"chart.height", c.Chart.Height},
		{"chart.margin.top", c.Chart.Margin.Top},
		{"chart.margin.bottom", c.Chart.Margin.Bottom},
		{"chart.margin.left", c.Chart.Margin.Left},
		{"chart.margin.right", c.Chart.Margin.Right},
		{"chart.adjust", c.Chart.Adjust},
		{"legend.min", c.Legend.Min},
		{"legend.max", c.Legend.Max},
		{"output.scale", c.Output.Scale},
	}
	for _, n := range numbers {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%s must be a finite number (got %g)", n.name, n.v)
		}
	}
	switch c.Output.Format {
	case FormatSVG, FormatPNG, FormatFB:
	default:
		return fmt.Errorf("output format must be one of svg, png, fb (got %q)", c.Output.Format)
	}
	if !(c.Chart.Width > 0) || !(c.Chart.Height > 0) {
		return fmt.Errorf("chart size must be positive (got %gx%g)", c.Chart.Width, c.Chart.Height)
	}
	if !(c.Legend.Min < c.Legend.Max) {
		return fmt.Errorf("legend min must be below max (got %g..%g)", c.Legend.Min, c.Legend.Max)
	}
	if c.Output.Scale < 0 {
		return fmt.Errorf("output scale must not be negative (got %g)", c.Output.Scale)
	}
	return nil
}
