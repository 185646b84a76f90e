package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server serves the /metrics endpoint of a prometheus gatherer.
type Server struct {
	server   *http.Server
	log      zerolog.Logger
	listener net.Listener
}

// NewServer returns a server for port, port 0 picks a free one. Only the
// /metrics endpoint is served.
func NewServer(log zerolog.Logger, port uint, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:              ":" + strconv.FormatUint(uint64(port), 10),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log.With().Str("component", "metrics_server").Logger(),
	}
}

// Handler returns the handler serving the metrics endpoint.
func (m *Server) Handler() http.Handler {
	return m.server.Handler
}

// Ready returns a channel that closes once the server listens, or failed
// to. Addr is valid after that.
func (m *Server) Ready() <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		listener, err := net.Listen("tcp", m.server.Addr)
		if err != nil {
			m.log.Err(err).Str("address", m.server.Addr).Msg("could not start metrics server")
			close(ready)
			return
		}
		m.listener = listener
		m.log.Info().Str("address", listener.Addr().String()).Msg("metrics server started")
		close(ready)

		err = m.server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			m.log.Debug().Err(err).Msg("metrics server shutdown")
		} else if err != nil {
			m.log.Err(err).Msg("metrics server failed")
		}
	}()
	return ready
}

// Addr returns the address the server listens on, or "" if it does not.
func (m *Server) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

// Done returns a channel that will close when shutdown is complete.
func (m *Server) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = m.server.Shutdown(ctx)
		cancel()
		close(done)
	}()
	return done
}
