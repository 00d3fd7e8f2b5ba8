package render

import "image/color"

// Global render defaults used when a scene or primitive leaves a color unset.
var (
	// Text is drawn black unless the style says otherwise, as in SVG.
	DefaultTextFill = color.RGBA{A: 0xFF}
	// Missing rect fills also render black, matching SVG's initial fill value.
	DefaultRectFill = color.RGBA{A: 0xFF}
	// Background for raster output when the scene has none.
	DefaultBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	// DefaultRasterScale is the number of pixels per user unit.
	DefaultRasterScale = 1.0
)
