package web

import (
	"net/http"

	"github.com/rook-computer/heatlegend/internal/assets"
	"github.com/rook-computer/heatlegend/internal/config"
)

type APIV1Config struct {
	Defaults   config.Config
	LegendFunc LegendFunc
	Logger     logger
	// PublicURL returns the base URL encoded into the share QR code.
	PublicURL func() string
}

func (c APIV1Config) logError(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("web", format, args...)
	}
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cfg)))
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQRCode(w, r, cfg) })
}

// RegisterUI serves the embedded index page.
func RegisterUI(mux *http.ServeMux) {
	fileServer := http.FileServer(http.FS(assets.WebUI))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	}))
}

// NewDefaultMux builds the standard mux:
// - /api/v1/* for the API
// - /qr.png for the share code
// - / for the index page
func NewDefaultMux(cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux)
	return mux
}
