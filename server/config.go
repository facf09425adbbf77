package server

import (
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host string
	Port int

	// CardURL is the URL advertised in the agent card. Empty means
	// http://Host:Port/.
	CardURL string

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown. Zero means 30s.
	ShutdownTimeout time.Duration
}

// Address returns the listen address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// PublicURL returns the URL callers should use to reach the agent.
func (c Config) PublicURL() string {
	if c.CardURL != "" {
		return c.CardURL
	}
	return "http://" + c.Address() + "/"
}
