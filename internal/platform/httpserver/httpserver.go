package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// maxHeaderBytes bounds request headers; the API takes small JSON bodies only.
const maxHeaderBytes = 16 << 10

// New builds the HTTP server. Connection-level errors from net/http (TLS
// handshakes, malformed requests) are routed through log at warn level.
func New(addr string, handler http.Handler, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    maxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
}
