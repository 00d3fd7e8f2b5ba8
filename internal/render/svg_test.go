package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type svgDoc struct {
	XMLName xml.Name   `xml:"svg"`
	Rects   []svgRect  `xml:"rect"`
	Groups  []svgGroup `xml:"g"`
}

type svgGroup struct {
	Class string    `xml:"class,attr"`
	Rects []svgRect `xml:"rect"`
	Texts []svgText `xml:"text"`
}

type svgRect struct {
	X           string `xml:"x,attr"`
	Y           string `xml:"y,attr"`
	Width       string `xml:"width,attr"`
	Height      string `xml:"height,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr"`
}

type svgText struct {
	X       string `xml:"x,attr"`
	Y       string `xml:"y,attr"`
	Anchor  string `xml:"text-anchor,attr"`
	Family  string `xml:"font-family,attr"`
	Size    string `xml:"font-size,attr"`
	Style   string `xml:"style,attr"`
	Content string `xml:",chardata"`
}

func num(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err, "attribute %q", s)
	return v
}

func decodeSVG(t *testing.T, scene *Scene) svgDoc {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeSVG(&buf, scene))
	var doc svgDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc), buf.String())
	return doc
}

func legendLikeScene() *Scene {
	scene := NewScene(500, 300)
	g := scene.AppendGroup("legend")
	g.AppendRect(Rect{X: 420, Y: 10, Width: 30, Height: 3.8, Fill: color.RGBA{R: 0xff, A: 0xff}})
	g.AppendRect(Rect{X: 420, Y: 12.8, Width: 30, Height: 3.8})
	g.AppendText(Text{
		X: 455, Y: 15, Content: "0 Celsius",
		Style: TextStyle{Anchor: AnchorStart, FontFamily: "Times New Roman", FontSize: 15, FontWeight: 500},
	})
	return scene
}

func TestEncodeSVG(t *testing.T) {
	t.Parallel()

	doc := decodeSVG(t, legendLikeScene())
	require.Len(t, doc.Groups, 1)
	g := doc.Groups[0]
	assert.Equal(t, "legend", g.Class)

	require.Len(t, g.Rects, 2)
	assert.InDelta(t, 420, num(t, g.Rects[0].X), 0.01)
	assert.InDelta(t, 10, num(t, g.Rects[0].Y), 0.01)
	assert.InDelta(t, 30, num(t, g.Rects[0].Width), 0.01)
	assert.InDelta(t, 3.8, num(t, g.Rects[0].Height), 0.01)
	assert.Equal(t, "#ff0000", g.Rects[0].Fill)
	assert.Empty(t, g.Rects[0].FillOpacity)
	assert.InDelta(t, 12.8, num(t, g.Rects[1].Y), 0.01)
	assert.Empty(t, g.Rects[1].Fill, "undefined fill is left off")

	require.Len(t, g.Texts, 1)
	text := g.Texts[0]
	assert.Equal(t, "0 Celsius", text.Content)
	assert.Equal(t, "start", text.Anchor)
	assert.Equal(t, "Times New Roman", text.Family)
	assert.Equal(t, "15px", text.Size)
	assert.Equal(t, "font-weight: 500", text.Style)
	assert.InDelta(t, 455, num(t, text.X), 0.01)
	assert.InDelta(t, 15, num(t, text.Y), 0.01)
}

func TestEncodeSVGBackgroundAndOpacity(t *testing.T) {
	t.Parallel()

	scene := NewScene(10, 10)
	scene.Background = color.White
	g := scene.AppendGroup("")
	g.AppendRect(Rect{X: 0, Y: 0, Width: 1, Height: 1, Fill: color.NRGBA{G: 0xff, A: 0x80}})

	doc := decodeSVG(t, scene)
	require.Len(t, doc.Rects, 1)
	assert.Equal(t, "#ffffff", doc.Rects[0].Fill)

	require.Len(t, doc.Groups, 1)
	assert.Empty(t, doc.Groups[0].Class)
	rect := doc.Groups[0].Rects[0]
	assert.Equal(t, "#00ff00", rect.Fill)
	assert.InDelta(t, 0.502, num(t, rect.FillOpacity), 0.001)
}

func TestEncodeSVGAdditiveGroups(t *testing.T) {
	t.Parallel()

	scene := legendLikeScene()
	g := scene.AppendGroup("legend")
	g.AppendRect(Rect{X: 1, Y: 1, Width: 1, Height: 1})

	doc := decodeSVG(t, scene)
	require.Len(t, doc.Groups, 2)
	assert.Len(t, doc.Groups[0].Rects, 2)
	assert.Len(t, doc.Groups[1].Rects, 1)
}

func TestEncodeSVGEscapesText(t *testing.T) {
	t.Parallel()

	scene := NewScene(10, 10)
	scene.AppendGroup("a&b").AppendText(Text{Content: "<10 & >0"})

	doc := decodeSVG(t, scene)
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, "a&b", doc.Groups[0].Class)
	assert.Equal(t, "<10 & >0", doc.Groups[0].Texts[0].Content)
}

func TestEncodeSVGKeepsFractionalGeometry(t *testing.T) {
	t.Parallel()

	scene := NewScene(100, 100)
	scene.AppendGroup("legend").AppendRect(Rect{X: 0.125, Y: 12.805, Width: 30, Height: 2.345678})

	rect := decodeSVG(t, scene).Groups[0].Rects[0]
	assert.Equal(t, 0.125, num(t, rect.X))
	assert.Equal(t, 12.805, num(t, rect.Y))
	assert.Equal(t, 2.345678, num(t, rect.Height))
}

func TestEncodeSVGEscapesAttributes(t *testing.T) {
	t.Parallel()

	scene := NewScene(10, 10)
	scene.AppendGroup(`say "hi"` + "\n<now>").AppendText(Text{
		Content: "x",
		Style:   TextStyle{FontFamily: `"Times New Roman", serif`},
	})

	doc := decodeSVG(t, scene)
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, `say "hi"`+"\n<now>", doc.Groups[0].Class)
	assert.Equal(t, `"Times New Roman", serif`, doc.Groups[0].Texts[0].Family)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeSVGWriteError(t *testing.T) {
	t.Parallel()

	err := EncodeSVG(failingWriter{}, legendLikeScene())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestColorHex(t *testing.T) {
	t.Parallel()

	hex, opacity := ColorHex(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	assert.Equal(t, "#123456", hex)
	assert.InDelta(t, 1, opacity, 1e-9)

	hex, opacity = ColorHex(color.Transparent)
	assert.Equal(t, "#000000", hex)
	assert.Zero(t, opacity)
}
