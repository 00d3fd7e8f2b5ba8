package render

import (
	"context"
	"image"
	"image/color"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/heatlegend/internal/render/layout"
	xdraw "golang.org/x/image/draw"
)

const DefaultFramebufferDevice = "/dev/fb0"

// FBDisplay shows rasterized scenes on the Linux framebuffer.
type FBDisplay struct {
	Device string
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	dev *fb.Device
}

func NewFBDisplay(device string) *FBDisplay {
	if device == "" {
		device = DefaultFramebufferDevice
	}
	return &FBDisplay{Device: device}
}

func (d *FBDisplay) Start(ctx context.Context) error {
	dev, err := fb.Open(d.Device)
	if err != nil {
		return err
	}
	d.dev = dev
	if d.Logger != nil {
		bounds := dev.Bounds()
		d.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

func (d *FBDisplay) Stop() error {
	if d.dev != nil {
		d.dev.Close()
		d.dev = nil
	}
	return nil
}

// Run redraws img once per second until the context is done, so console output
// written over the framebuffer does not stay visible.
func (d *FBDisplay) Run(ctx context.Context, img image.Image) {
	d.Show(img)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Show(img)
		}
	}
}

// Show fills the framebuffer with the default background and draws img
// scaled to fit, centered.
func (d *FBDisplay) Show(img image.Image) {
	if d.dev == nil || img == nil {
		return
	}
	bounds := d.dev.Bounds()
	frame := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(frame, frame.Bounds(), &image.Uniform{C: DefaultBackground}, image.Point{}, xdraw.Src)
	dst := layout.FitCentered(img.Bounds(), frame.Bounds())
	xdraw.NearestNeighbor.Scale(frame, dst, img, img.Bounds(), xdraw.Over, nil)
	blitToFB(d.dev, frame)
}

// Helper: copy frame to the framebuffer pixel by pixel with opaque alpha.
func blitToFB(dev *fb.Device, frame *image.RGBA) {
	bounds := dev.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			pixel := frame.RGBAAt(x, y)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
