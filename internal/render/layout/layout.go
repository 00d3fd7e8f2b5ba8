package layout

import (
	"image"
	"math"
)

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SnapRect converts a rectangle in user units to pixels at scale.
// Edges are rounded so adjacent rectangles share pixel rows.
// Non-positive width or height yields an empty rectangle: such shapes are invisible.
func SnapRect(x, y, width, height, scale float64) image.Rectangle {
	if !(width > 0) || !(height > 0) {
		return image.Rectangle{}
	}
	minX := int(math.Round(x * scale))
	minY := int(math.Round(y * scale))
	maxX := int(math.Round((x + width) * scale))
	maxY := int(math.Round((y + height) * scale))
	return image.Rect(minX, minY, maxX, maxY)
}

// CanvasSize returns the pixel size of a width x height user-unit canvas at scale.
func CanvasSize(width, height, scale float64) (int, int) {
	w := int(math.Ceil(width * scale))
	h := int(math.Ceil(height * scale))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// FitCentered returns the largest rectangle with src's aspect ratio that fits into dst,
// centered on both axes.
func FitCentered(src, dst image.Rectangle) image.Rectangle {
	src = Normalize(src)
	dst = Normalize(dst)
	if src.Empty() || dst.Empty() {
		return image.Rectangle{}
	}
	scale := math.Min(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	w := int(float64(src.Dx()) * scale)
	h := int(float64(src.Dy()) * scale)
	minX := dst.Min.X + (dst.Dx()-w)/2
	minY := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(minX, minY, minX+w, minY+h)
}
