// Package httpserver constructs the service's http.Server.
package httpserver

import (
	"net/http"
	"time"
)

// Connection-level timeouts. Request work is bounded per handler through
// request contexts, so only header reads and idle keep-alives are capped here.
const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// New returns a server for the given address and root handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}
