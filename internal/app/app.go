package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rook-computer/heatlegend/internal/colorscale"
	"github.com/rook-computer/heatlegend/internal/config"
	"github.com/rook-computer/heatlegend/internal/legend"
	"github.com/rook-computer/heatlegend/internal/render"
	"github.com/rook-computer/heatlegend/internal/system"
	"github.com/rook-computer/heatlegend/internal/web"
)

// LabelSpace is the room reserved right of the strip for the bound labels.
const LabelSpace = 120.0

type App struct {
	Logger Logger
	// Stdout receives documents when no output path is configured.
	Stdout io.Writer
	// FBDevice is the framebuffer used by the fb output format.
	FBDevice string
}

func New(logger Logger) *App {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &App{Logger: logger, Stdout: os.Stdout, FBDevice: render.DefaultFramebufferDevice}
}

// RenderDocument builds a scene holding one legend placed for the configured chart.
// The scene spans the chart area plus the legend and its labels; the chart area
// itself is left empty for the caller to overlay.
func (app *App) RenderDocument(ctx context.Context, cfg config.Config) (*render.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scale, err := colorscale.Lookup(cfg.Scale, cfg.Legend.Min, cfg.Legend.Max)
	if err != nil {
		return nil, err
	}

	opts := legend.DefaultOptions()
	opts.Domain = legend.Domain{Min: cfg.Legend.Min, Max: cfg.Legend.Max, Unit: cfg.Legend.Unit}

	width := cfg.Chart.Width + opts.Gap + opts.Width + LabelSpace
	scene := render.NewScene(width, cfg.Chart.Height)
	margin := legend.Margin{
		Top:    cfg.Chart.Margin.Top,
		Bottom: cfg.Chart.Margin.Bottom,
		Left:   cfg.Chart.Margin.Left,
		Right:  cfg.Chart.Margin.Right,
	}
	geo := legend.RenderWith(scene, opts, cfg.Chart.Width, cfg.Chart.Height, margin, scale, cfg.Chart.Adjust)
	if geo.Height <= 0 {
		app.Logger.Infof("legend", "legend height %g is not positive, output will be empty", geo.Height)
	}
	return scene, nil
}

// WriteOutput renders the configured legend and writes it in cfg.Output.Format.
// The fb format blocks until ctx is done.
func (app *App) WriteOutput(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	scene, err := app.RenderDocument(ctx, cfg)
	if err != nil {
		return err
	}
	rasterOpts := render.RasterOptions{Scale: cfg.Output.Scale, Logger: app.Logger}

	if cfg.Output.Format == config.FormatFB {
		return app.showOnFramebuffer(ctx, scene, rasterOpts)
	}

	if cfg.Output.Path == "" {
		if err := encodeScene(app.Stdout, scene, cfg.Output.Format, rasterOpts); err != nil {
			return err
		}
	} else if err := writeFile(cfg.Output.Path, scene, cfg.Output.Format, rasterOpts); err != nil {
		return err
	}
	app.Logger.Infof("app", "wrote %s legend (%d nodes)", cfg.Output.Format, scene.NodeCount())
	return nil
}

func encodeScene(w io.Writer, scene *render.Scene, format string, opts render.RasterOptions) error {
	if format == config.FormatPNG {
		return render.EncodePNG(w, scene, opts)
	}
	return render.EncodeSVG(w, scene)
}

// writeFile encodes scene to path. A failed encode or close removes the partial file.
func writeFile(path string, scene *render.Scene, format string, opts render.RasterOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	err = encodeScene(f, scene, format, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func (app *App) showOnFramebuffer(ctx context.Context, scene *render.Scene, opts render.RasterOptions) error {
	img, err := render.Rasterize(scene, opts)
	if err != nil {
		return err
	}
	display := render.NewFBDisplay(app.FBDevice)
	display.Logger = app.Logger
	if err := display.Start(ctx); err != nil {
		app.Logger.Errorf("fb", "framebuffer open failed: %v", err)
		return err
	}
	defer display.Stop()

	// Switch console to KD_GRAPHICS so the cursor does not blink over the legend.
	if err := system.SetGraphicsModeWithLog(app.Logger); err == nil {
		defer func() { _ = system.RestoreTextModeWithLog(app.Logger) }()
	}
	_ = system.HideCursorWithLog(app.Logger)
	defer func() { _ = system.ShowCursorWithLog(app.Logger) }()

	display.Run(ctx, img)
	return nil
}

// Serve runs the HTTP server until ctx is done.
func (app *App) Serve(ctx context.Context, cfg config.Config) error {
	server := web.NewHTTPServer(web.ServerConfig{
		ListenAddr: cfg.Server.ListenAddr,
		DevMode:    cfg.Server.DevMode,
		PublicURL:  cfg.Server.PublicURL,
	})
	server.Defaults = cfg
	server.LegendFunc = app.RenderDocument
	server.Logger = app.Logger
	if err := server.Start(ctx); err != nil {
		app.Logger.Errorf("web", "server start error: %v", err)
		return err
	}
	app.Logger.Infof("web", "listening on %s", server.Addr())

	<-ctx.Done()
	return server.Stop()
}
