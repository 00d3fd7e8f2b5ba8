package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/heatlegend/internal/render/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/math/fixed"
)

// RasterOptions controls Rasterize.
type RasterOptions struct {
	// Scale is the number of pixels per user unit; 0 means DefaultRasterScale.
	Scale float64
	// Background overrides the scene background.
	Background color.Color
	Logger     interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// MaxCanvasPixels bounds the pixel count of a rasterized canvas.
const MaxCanvasPixels = 1 << 25

var ErrCanvasTooLarge = errors.New("canvas too large")

// CheckCanvas reports whether a width x height canvas fits MaxCanvasPixels at scale.
// Non-finite sizes or scales never fit.
func CheckCanvas(width, height, scale float64) error {
	if scale == 0 {
		scale = DefaultRasterScale
	}
	px := math.Ceil(math.Max(width*scale, 0)) * math.Ceil(math.Max(height*scale, 0))
	if math.IsNaN(scale) || math.IsNaN(px) || px > MaxCanvasPixels {
		return fmt.Errorf("%w: %gx%g at scale %g exceeds %d pixels", ErrCanvasTooLarge, width, height, scale, MaxCanvasPixels)
	}
	return nil
}

var (
	ttOnce sync.Once
	ttFont *truetype.Font
	ttErr  error
)

// textFont returns the embedded Go Medium face used for all labels.
// Font families are not resolved; the medium weight matches the label styling.
func textFont() (*truetype.Font, error) {
	ttOnce.Do(func() {
		ttFont, ttErr = truetype.Parse(gomedium.TTF)
	})
	return ttFont, ttErr
}

// Rasterize paints scene onto a new RGBA image.
func Rasterize(scene *Scene, opts RasterOptions) (*image.RGBA, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultRasterScale
	}
	if err := CheckCanvas(scene.Width, scene.Height, scale); err != nil {
		return nil, err
	}
	w, h := layout.CanvasSize(scene.Width, scene.Height, scale)
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := opts.Background
	if bg == nil {
		bg = scene.Background
	}
	if bg == nil {
		bg = DefaultBackground
	}
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	r := &rasterizer{canvas: canvas, scale: scale, logger: opts.Logger}
	if tt, err := textFont(); err != nil {
		if r.logger != nil {
			r.logger.Errorf("raster", "truetype parse failed, using basicfont: %v", err)
		}
	} else {
		r.tt = tt
	}
	if err := r.paint(scene.Nodes); err != nil {
		return nil, err
	}
	return canvas, nil
}

// EncodePNG rasterizes scene and writes it as PNG.
func EncodePNG(w io.Writer, scene *Scene, opts RasterOptions) error {
	img, err := Rasterize(scene, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

type rasterizer struct {
	canvas *image.RGBA
	scale  float64
	tt     *truetype.Font
	logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func (r *rasterizer) paint(nodes []Node) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case *GroupNode:
			if err := r.paint(node.Children); err != nil {
				return err
			}
		case RectNode:
			r.fillRect(node.Rect)
		case TextNode:
			if err := r.drawText(node.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *rasterizer) fillRect(rect Rect) {
	dst := layout.SnapRect(rect.X, rect.Y, rect.Width, rect.Height, r.scale)
	if dst.Empty() {
		return
	}
	fill := rect.Fill
	if fill == nil {
		fill = DefaultRectFill
	}
	draw.Draw(r.canvas, dst, &image.Uniform{C: fill}, image.Point{}, draw.Over)
}

func (r *rasterizer) drawText(t Text) error {
	if t.Content == "" {
		return nil
	}
	fill := t.Style.Fill
	if fill == nil {
		fill = DefaultTextFill
	}
	size := t.Style.FontSize
	if size <= 0 {
		size = 12
	}
	px := size * r.scale

	if r.tt == nil {
		// basicfont has a single fixed size.
		drawer := &font.Drawer{Dst: r.canvas, Src: image.NewUniform(fill), Face: basicfont.Face7x13}
		width := drawer.MeasureString(t.Content).Ceil()
		x := anchorX(t.X*r.scale, float64(width), t.Style.Anchor)
		drawer.Dot = fixed.P(int(math.Round(x)), int(math.Round(t.Y*r.scale)))
		drawer.DrawString(t.Content)
		return nil
	}

	face := truetype.NewFace(r.tt, &truetype.Options{Size: px, DPI: 72, Hinting: font.HintingNone})
	defer face.Close()
	width := font.MeasureString(face, t.Content)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.tt)
	ctx.SetFontSize(px)
	ctx.SetHinting(font.HintingNone)
	ctx.SetClip(r.canvas.Bounds())
	ctx.SetDst(r.canvas)
	ctx.SetSrc(image.NewUniform(fill))

	x := anchorX(t.X*r.scale, float64(width)/64, t.Style.Anchor)
	pt := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(t.Y * r.scale * 64)}
	if _, err := ctx.DrawString(t.Content, pt); err != nil {
		return fmt.Errorf("draw text %q: %w", t.Content, err)
	}
	return nil
}

func anchorX(x, width float64, anchor TextAnchor) float64 {
	switch anchor {
	case AnchorMiddle:
		return x - width/2
	case AnchorEnd:
		return x - width
	default:
		return x
	}
}
