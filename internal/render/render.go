package render

import "image/color"

// Surface is the drawing capability a legend is rendered onto.
// Implementations only ever receive appended nodes; nothing is read back or removed.
type Surface interface {
	// AppendGroup creates a new grouping node tagged with class and returns it.
	AppendGroup(class string) Group
}

// Group collects primitives appended by a renderer.
type Group interface {
	AppendRect(r Rect)
	AppendText(t Text)
}

// Rect is a filled rectangle in user units.
// A nil Fill means the fill value is undefined and is left off the element.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          color.Color
}

type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a TextAnchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// TextStyle describes how to render text.
// Y is the baseline; Anchor controls how X is interpreted.
type TextStyle struct {
	Anchor     TextAnchor
	FontFamily string
	FontSize   float64 // in px
	FontWeight int     // CSS weight; 0 leaves it unset
	Fill       color.Color
}

type Text struct {
	X, Y    float64
	Content string
	Style   TextStyle
}
