/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package admin is the supplementary loopback admin surface: a
// Prometheus /metrics endpoint and a JSON /snapshot endpoint mirroring
// the SIGUSR1 top-5 dump, sanctioned as an alternative to signal-based
// admin tooling. It is never the only way to reach that data - C9's
// top5_clients.txt keeps being written regardless of whether this
// listener is enabled.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nabbar/pacmand/certificates"
	"github.com/nabbar/pacmand/internal/queue"
	"github.com/nabbar/pacmand/internal/session"
)

const shutdownGrace = 5 * time.Second

// Metrics groups the counters and gauges exposed on /metrics. Counters are
// incremented by the caller (the host listener and session pool) as the
// corresponding events occur; this package only registers and serves them.
type Metrics struct {
	SessionsActive       prometheus.Gauge
	ConnectTotal         prometheus.Counter
	LevelTransitionsTotal prometheus.Counter
}

// NewMetrics builds a fresh metric set registered against its own
// registry, so one process can run more than one admin listener (e.g. in
// tests) without collector-already-registered panics.
func NewMetrics() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pacman_sessions_active",
			Help: "Number of sessions currently occupying a table slot.",
		}),
		ConnectTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacman_connect_total",
			Help: "Total CONNECT frames accepted on the register pipe.",
		}),
		LevelTransitionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacman_level_transitions_total",
			Help: "Total level transitions completed across all sessions.",
		}),
	}

	reg.MustRegister(m.SessionsActive, m.ConnectTotal, m.LevelTransitionsTotal)
	return m, reg
}

// scoreEntry is one row of the JSON /snapshot response.
type scoreEntry struct {
	ClientID int32 `json:"client_id"`
	Points   int   `json:"points"`
}

// Server is the loopback admin HTTP listener.
type Server struct {
	bindAddr string
	table    *session.Table
	q        queue.Queue
	registry *prometheus.Registry
	queueGauge prometheus.GaugeFunc
	tls      certificates.TLSConfig

	mu   sync.Mutex
	addr net.Addr
	srv  *http.Server
}

// New builds a Server bound to bindAddr (e.g. "127.0.0.1:0" for an
// ephemeral port). table and q back the /snapshot endpoint and the
// pacman_queue_depth gauge respectively.
func New(bindAddr string, table *session.Table, q queue.Queue, registry *prometheus.Registry) *Server {
	s := &Server{bindAddr: bindAddr, table: table, q: q, registry: registry}
	s.queueGauge = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "pacman_queue_depth",
		Help: "Number of connection requests currently buffered in the C1 queue.",
	}, func() float64 { return float64(q.Len()) })
	registry.MustRegister(s.queueGauge)
	return s
}

// WithTLS loads a certificate/key pair and serves the admin listener over
// TLS instead of plaintext. Returns an error if either file cannot be
// read or does not parse as a valid PEM certificate pair. Calling this
// is the `--admin-tls-cert`/`--admin-tls-key` opt-in; a Server that never
// calls WithTLS serves plain HTTP, which remains the loopback default.
func (s *Server) WithTLS(certFile, keyFile string) error {
	cfg := certificates.New()
	if err := cfg.AddCertificatePairFile(keyFile, certFile); err != nil {
		return ErrorTLSConfig.Error(err)
	}
	s.mu.Lock()
	s.tls = cfg
	s.mu.Unlock()
	return nil
}

// Addr returns the actual bound address once Start has run; empty before
// that or after Stop.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}

// Start is a lifecycle.FuncStart: it binds bindAddr, serves /metrics and
// /snapshot, and shuts down gracefully once ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, e := net.Listen("tcp", s.bindAddr)
	if e != nil {
		return ErrorListen.Error(e)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	s.srv = &http.Server{Handler: mux}
	if s.tls != nil {
		s.srv.TLSConfig = s.tls.TlsConfig("")
	}
	srv := s.srv
	useTLS := s.tls != nil
	s.mu.Unlock()

	errCh := make(chan error, 1)
	if useTLS {
		go func() { errCh <- srv.ServeTLS(ln, "", "") }()
	} else {
		go func() { errCh <- srv.Serve(ln) }()
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ErrorServe.Error(err)
	}
}

// Stop is a lifecycle.FuncStop; shutdown happens when Start's context is
// cancelled, so there is nothing further to do here.
func (s *Server) Stop(_ context.Context) error {
	return nil
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	sessions := s.table.Snapshot()

	entries := make([]scoreEntry, 0, len(sessions))
	for _, sess := range sessions {
		entries = append(entries, scoreEntry{ClientID: sess.ClientID, Points: sess.TotalPoints()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}
