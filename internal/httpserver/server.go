// Package httpserver builds the process's *http.Server with sane timeouts.
package httpserver

import (
	"net/http"
	"time"
)

// Config contains tunables for the HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns server settings suitable for a local single-user
// deployment on addr.
func DefaultConfig(addr string) Config {
	return Config{
		Address:      addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// New creates an *http.Server with the provided handler.
func New(cfg Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
