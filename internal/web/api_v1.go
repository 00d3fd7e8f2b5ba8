package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rook-computer/heatlegend/internal/colorscale"
	"github.com/rook-computer/heatlegend/internal/config"
	"github.com/rook-computer/heatlegend/internal/render"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type scalesResponse struct {
	Scales  []string `json:"scales"`
	Default string   `json:"default"`
}

const (
	contentTypeSVG = "image/svg+xml"
	contentTypePNG = "image/png"
	qrSizePx       = 256
)

func apiV1Router(cfg APIV1Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/legend.svg", func(w http.ResponseWriter, r *http.Request) {
		handleLegend(w, r, cfg, config.FormatSVG)
	})
	mux.HandleFunc("/legend.png", func(w http.ResponseWriter, r *http.Request) {
		handleLegend(w, r, cfg, config.FormatPNG)
	})
	mux.HandleFunc("/scales", handleScales)
	return mux
}

func handleLegend(w http.ResponseWriter, r *http.Request, cfg APIV1Config, format string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.LegendFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "legend rendering not configured")
		return
	}

	settings, err := legendSettings(r.URL.Query(), cfg.Defaults)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	settings.Output.Format = format

	scene, err := cfg.LegendFunc(r.Context(), settings)
	if err != nil {
		if errors.Is(err, colorscale.ErrUnknownScale) {
			writeAPIError(w, http.StatusBadRequest, "unknown_scale", err.Error())
			return
		}
		cfg.logError("legend render failed: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	if format == config.FormatPNG {
		if err := render.CheckCanvas(scene.Width, scene.Height, settings.Output.Scale); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
	}

	// Encode fully before writing so failures still produce a JSON error.
	var buf bytes.Buffer
	contentType := contentTypeSVG
	if format == config.FormatPNG {
		contentType = contentTypePNG
		err = render.EncodePNG(&buf, scene, render.RasterOptions{Scale: settings.Output.Scale, Logger: cfg.Logger})
	} else {
		err = render.EncodeSVG(&buf, scene)
	}
	if err != nil {
		cfg.logError("legend encode failed: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(buf.Bytes())
	}
}

func handleScales(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, scalesResponse{Scales: colorscale.Names(), Default: colorscale.DefaultName})
}

func handleQRCode(w http.ResponseWriter, r *http.Request, cfg APIV1Config) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	base := "http://127.0.0.1:8080"
	if cfg.PublicURL != nil {
		base = cfg.PublicURL()
	}
	data, err := render.QRCode{Payload: base + "/api/v1/legend.svg", SizePx: qrSizePx}.PNG()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", contentTypePNG)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// legendSettings overlays query parameters onto defaults.
func legendSettings(q url.Values, defaults config.Config) (config.Config, error) {
	cfg := defaults
	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &cfg.Chart.Width},
		{"height", &cfg.Chart.Height},
		{"top", &cfg.Chart.Margin.Top},
		{"bottom", &cfg.Chart.Margin.Bottom},
		{"left", &cfg.Chart.Margin.Left},
		{"right", &cfg.Chart.Margin.Right},
		{"adjust", &cfg.Chart.Adjust},
		{"min", &cfg.Legend.Min},
		{"max", &cfg.Legend.Max},
		{"zoom", &cfg.Output.Scale},
	}
	for _, f := range floats {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a number (got %q)", f.name, raw)
		}
		*f.dst = v
	}
	if v := q.Get("scale"); v != "" {
		cfg.Scale = v
	}
	if q.Has("unit") {
		cfg.Legend.Unit = q.Get("unit")
	}
	if cfg.Output.Scale > 8 {
		return cfg, fmt.Errorf("zoom must be at most 8 (got %g)", cfg.Output.Scale)
	}
	cfg.Output.Format = config.FormatSVG
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
