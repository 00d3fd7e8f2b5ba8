package web

import "strings"

// ServerConfig contains settings for running the HTTP server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// PublicURL is the externally reachable base URL, encoded into /qr.png.
	PublicURL string
}

// publicBaseURL returns PublicURL, or an http URL derived from addr.
func (c ServerConfig) publicBaseURL(addr string) string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	return "http://" + displayAddr(addr)
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if addr == "" {
		return "127.0.0.1:8080"
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if strings.HasPrefix(addr, "[::]:") {
		return "127.0.0.1" + strings.TrimPrefix(addr, "[::]")
	}
	return addr
}
