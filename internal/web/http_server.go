package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rook-computer/heatlegend/internal/config"
	"github.com/rook-computer/heatlegend/internal/render"
)

// LegendFunc renders a legend document for a resolved configuration.
type LegendFunc func(ctx context.Context, cfg config.Config) (*render.Scene, error)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

type HTTPServer struct {
	Config ServerConfig

	// Defaults are the settings query parameters override.
	Defaults config.Config

	// LegendFunc is called for every legend request with the merged settings.
	LegendFunc LegendFunc

	Logger logger

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

func NewHTTPServer(cfg ServerConfig) *HTTPServer {
	return &HTTPServer{Config: cfg, Defaults: config.Default()}
}

// Addr returns the bound listen address once started, else the configured one.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.Config.ListenAddr
}

// Handler returns the routes served by the server.
func (s *HTTPServer) Handler() http.Handler {
	mux := NewDefaultMux(APIV1Config{
		Defaults:   s.Defaults,
		LegendFunc: s.LegendFunc,
		Logger:     s.Logger,
		PublicURL:  func() string { return s.Config.publicBaseURL(s.Addr()) },
	})
	if s.Config.DevMode {
		return WithDevCORS(mux)
	}
	return mux
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	addr := s.Config.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		if s.Logger != nil {
			s.Logger.Errorf("web", "serve: %v", err)
		}
	}()

	return nil
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if srv == nil {
		if ln != nil {
			_ = ln.Close()
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
