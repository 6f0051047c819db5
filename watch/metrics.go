package watch

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/liamg/scandiff/scan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Metrics counts loop activity on a private registry. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	cycles       *prometheus.CounterVec
	analyses     prometheus.Counter
	changes      *prometheus.CounterVec
	scanFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scandiff",
			Name:      "cycles_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"outcome"}),
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scandiff",
			Name:      "analyses_total",
			Help:      "Report pairs compared.",
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scandiff",
			Name:      "changes_total",
			Help:      "Change events logged, by kind.",
		}, []string{"kind"}),
		scanFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scandiff",
			Name:      "scan_failures_total",
			Help:      "Scan command runs that exited with an error.",
		}),
	}
	m.registry.MustRegister(m.cycles, m.analyses, m.changes, m.scanFailures)
	m.initLabels()
	return m
}

func (m *Metrics) observeCycle(result CycleResult) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(result.Outcome.String()).Inc()
	if result.Outcome != CycleAnalyzed {
		return
	}
	m.analyses.Inc()
	for _, change := range result.Changes {
		m.changes.WithLabelValues(change.Kind.String()).Inc()
	}
}

func (m *Metrics) observeScanFailure() {
	if m == nil {
		return
	}
	m.scanFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics in the background. The listener is
// bound before Serve returns.
func (m *Metrics) Serve(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux}

	go serveMetrics(srv, ln)

	return srv, nil
}

func serveMetrics(srv *http.Server, ln net.Listener) {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Errorf("Metrics server on %s stopped", ln.Addr())
	}
}

// keep the kind label set stable from the first scrape
func (m *Metrics) initLabels() {
	for _, kind := range []scan.ChangeKind{scan.NewHost, scan.HostLeft, scan.PortsOpened, scan.PortsClosed} {
		m.changes.WithLabelValues(kind.String())
	}
	for _, outcome := range []CycleOutcome{CycleInsufficient, CycleUnchanged, CycleAnalyzed, CycleSkipped} {
		m.cycles.WithLabelValues(outcome.String())
	}
}
