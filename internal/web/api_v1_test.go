package web

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/heatlegend/internal/colorscale"
	"github.com/rook-computer/heatlegend/internal/config"
	"github.com/rook-computer/heatlegend/internal/legend"
	"github.com/rook-computer/heatlegend/internal/render"
)

type recordedLegend struct {
	mu    sync.Mutex
	calls []config.Config
}

func (r *recordedLegend) recorded() []config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]config.Config(nil), r.calls...)
}

func (r *recordedLegend) render(ctx context.Context, cfg config.Config) (*render.Scene, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cfg)
	r.mu.Unlock()
	scale, err := colorscale.Lookup(cfg.Scale, cfg.Legend.Min, cfg.Legend.Max)
	if err != nil {
		return nil, err
	}
	scene := render.NewScene(cfg.Chart.Width+200, cfg.Chart.Height)
	opts := legend.DefaultOptions()
	opts.Domain = legend.Domain{Min: cfg.Legend.Min, Max: cfg.Legend.Max, Unit: cfg.Legend.Unit}
	m := cfg.Chart.Margin
	legend.RenderWith(scene, opts, cfg.Chart.Width, cfg.Chart.Height,
		legend.Margin{Top: m.Top, Bottom: m.Bottom, Left: m.Left, Right: m.Right}, scale, cfg.Chart.Adjust)
	return scene, nil
}

func newTestServer(t *testing.T, fn LegendFunc) *httptest.Server {
	t.Helper()
	s := NewHTTPServer(ServerConfig{PublicURL: "http://legend.example/"})
	s.LegendFunc = fn
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeAPIError(t *testing.T, resp *http.Response) apiError {
	t.Helper()
	var body apiError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLegendSVG(t *testing.T) {
	t.Parallel()

	rec := &recordedLegend{}
	ts := newTestServer(t, rec.render)

	resp, err := http.Get(ts.URL + "/api/v1/legend.svg?width=640&height=480&top=20&bottom=20&adjust=40&scale=viridis")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contentTypeSVG, resp.Header.Get("Content-Type"))

	var doc struct {
		Groups []struct {
			Class string     `xml:"class,attr"`
			Rects []struct{} `xml:"rect"`
			Texts []string   `xml:"text"`
		} `xml:"g"`
	}
	require.NoError(t, xml.NewDecoder(resp.Body).Decode(&doc))
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, "legend", doc.Groups[0].Class)
	assert.Len(t, doc.Groups[0].Rects, 100)
	assert.Equal(t, []string{"0 Celsius", "40 Celsius"}, doc.Groups[0].Texts)

	calls := rec.recorded()
	require.Len(t, calls, 1)
	got := calls[0]
	assert.Equal(t, 640.0, got.Chart.Width)
	assert.Equal(t, 480.0, got.Chart.Height)
	assert.Equal(t, 40.0, got.Chart.Adjust)
	assert.Equal(t, "viridis", got.Scale)
	assert.Equal(t, config.FormatSVG, got.Output.Format)
}

func TestLegendPNG(t *testing.T) {
	t.Parallel()

	rec := &recordedLegend{}
	ts := newTestServer(t, rec.render)

	resp, err := http.Get(ts.URL + "/api/v1/legend.png?zoom=2")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contentTypePNG, resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2*600, img.Bounds().Dx())
	assert.Equal(t, 2*300, img.Bounds().Dy())
	assert.Equal(t, config.FormatPNG, rec.recorded()[0].Output.Format)
}

func TestLegendCustomDomain(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, (&recordedLegend{}).render)
	resp, err := http.Get(ts.URL + "/api/v1/legend.svg?min=-20&max=120&unit=F")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "-20 F")
	assert.Contains(t, buf.String(), "120 F")
}

func TestLegendErrors(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, (&recordedLegend{}).render)

	tests := []struct {
		name     string
		method   string
		path     string
		status   int
		wantCode string
	}{
		{name: "bad number", method: http.MethodGet, path: "/api/v1/legend.svg?width=wide", status: http.StatusBadRequest, wantCode: "invalid_parameter"},
		{name: "inverted domain", method: http.MethodGet, path: "/api/v1/legend.svg?min=50&max=10", status: http.StatusBadRequest, wantCode: "invalid_parameter"},
		{name: "huge zoom", method: http.MethodGet, path: "/api/v1/legend.png?zoom=100", status: http.StatusBadRequest, wantCode: "invalid_parameter"},
		{name: "canvas too large", method: http.MethodGet, path: "/api/v1/legend.png?width=1000000&height=1000000&zoom=8", status: http.StatusBadRequest, wantCode: "invalid_parameter"},
		{name: "nan zoom", method: http.MethodGet, path: "/api/v1/legend.png?zoom=NaN", status: http.StatusBadRequest, wantCode: "invalid_parameter"},
		{name: "infinite width", method: http.MethodGet, path: "/api/v1/legend.svg?width=Inf", status: http.StatusBadRequest, wantCode: "invalid_parameter"},
		{name: "unknown scale", method: http.MethodGet, path: "/api/v1/legend.svg?scale=nope", status: http.StatusBadRequest, wantCode: "unknown_scale"},
		{name: "post", method: http.MethodPost, path: "/api/v1/legend.svg", status: http.StatusMethodNotAllowed, wantCode: "method_not_allowed"},
		{name: "post scales", method: http.MethodPost, path: "/api/v1/scales", status: http.StatusMethodNotAllowed, wantCode: "method_not_allowed"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(""))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeAPIError(t, resp).Error)
		})
	}
}

func TestLegendRenderFailure(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, func(context.Context, config.Config) (*render.Scene, error) {
		return nil, errors.New("boom")
	})
	resp, err := http.Get(ts.URL + "/api/v1/legend.svg")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "render_failed", decodeAPIError(t, resp).Error)
}

func TestLegendNotConfigured(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/v1/legend.svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestScales(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/v1/scales")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body scalesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, colorscale.Names(), body.Scales)
	assert.Equal(t, "thermal", body.Default)
}

func TestQRCode(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/qr.png")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, qrSizePx, img.Bounds().Dx())
}

func TestIndexPage(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/api/v1/legend.svg")

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
