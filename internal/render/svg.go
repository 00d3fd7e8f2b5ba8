package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo/float"
	"github.com/lucasb-eyer/go-colorful"
)

// svgDecimals is the precision of every coordinate written to the document.
const svgDecimals = 6

// EncodeSVG writes scene as a standalone SVG document.
func EncodeSVG(w io.Writer, scene *Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Decimals = svgDecimals
	canvas.Start(scene.Width, scene.Height)
	if scene.Background != nil {
		canvas.Rect(0, 0, scene.Width, scene.Height, fillAttrs(scene.Background)...)
	}
	encodeNodes(canvas, scene.Nodes)
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("encode svg: %w", ew.err)
	}
	return nil
}

func encodeNodes(canvas *svg.SVG, nodes []Node) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *GroupNode:
			if node.Class != "" {
				canvas.Group(attr("class", node.Class))
			} else {
				canvas.Group()
			}
			encodeNodes(canvas, node.Children)
			canvas.Gend()
		case RectNode:
			canvas.Rect(node.X, node.Y, node.Width, node.Height, fillAttrs(node.Fill)...)
		case TextNode:
			canvas.Text(node.X, node.Y, node.Content, textAttrs(node.Style)...)
		}
	}
}

func textAttrs(style TextStyle) []string {
	attrs := []string{attr("text-anchor", style.Anchor.String())}
	if style.FontFamily != "" {
		attrs = append(attrs, attr("font-family", style.FontFamily))
	}
	if style.FontSize > 0 {
		attrs = append(attrs, attr("font-size", strconv.FormatFloat(style.FontSize, 'f', -1, 64)+"px"))
	}
	if style.Fill != nil {
		attrs = append(attrs, fillAttrs(style.Fill)...)
	}
	if style.FontWeight > 0 {
		attrs = append(attrs, attr("style", "font-weight: "+strconv.Itoa(style.FontWeight)))
	}
	return attrs
}

// fillAttrs returns the fill attributes for c; nil yields none.
func fillAttrs(c color.Color) []string {
	if c == nil {
		return nil
	}
	hex, opacity := ColorHex(c)
	attrs := []string{attr("fill", hex)}
	if opacity < 1 {
		attrs = append(attrs, attr("fill-opacity", strconv.FormatFloat(opacity, 'f', 3, 64)))
	}
	return attrs
}

// ColorHex returns c as #rrggbb together with its opacity in [0, 1].
func ColorHex(c color.Color) (string, float64) {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return "#000000", 0
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Clamped().Hex(), float64(a) / 0xffff
}

func attr(name, value string) string {
	return name + `="` + escapeAttr(value) + `"`
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
