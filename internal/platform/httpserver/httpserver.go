package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with timeouts suited to rendering pages that
// proxy uploads of up to a few megabytes.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
