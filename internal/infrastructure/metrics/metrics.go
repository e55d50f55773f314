package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

var _ output.MetricsPort = (*Metrics)(nil)

// Metrics holds the Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DispatchTotal      *prometheus.CounterVec
	InstructionLength  *prometheus.HistogramVec
	InstructionInvalid *prometheus.CounterVec
	SubmissionsTotal   *prometheus.CounterVec

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "suparaise"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 60, 300},
			},
			[]string{"method", "path"},
		),

		DispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "specialist_dispatch_total",
				Help:      "Specialist selections by form type and resolution source",
			},
			[]string{"form_type", "source"},
		),
		InstructionLength: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "instruction_length_chars",
				Help:      "Length of generated instructions in characters",
				Buckets:   []float64{100, 500, 1000, 1500, 2000, 2500, 3000, 4000, 6000},
			},
			[]string{"form_type"},
		),
		InstructionInvalid: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "instruction_validation_failures_total",
				Help:      "Instructions dispatched with validation issues",
			},
			[]string{"form_type"},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Finished submissions by status and engine",
			},
			[]string{"status", "engine"},
		),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "startup_cache_hits_total",
			Help:      "Startup data cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "startup_cache_misses_total",
			Help:      "Startup data cache misses",
		}),
	}
}

func (m *Metrics) ObserveDispatch(formType entity.FormType, source string) {
	m.DispatchTotal.WithLabelValues(formType.String(), source).Inc()
}

func (m *Metrics) ObserveInstruction(formType entity.FormType, length int, valid bool) {
	m.InstructionLength.WithLabelValues(formType.String()).Observe(float64(length))
	if !valid {
		m.InstructionInvalid.WithLabelValues(formType.String()).Inc()
	}
}

func (m *Metrics) ObserveSubmission(status entity.SubmissionStatus, engine string) {
	m.SubmissionsTotal.WithLabelValues(string(status), engine).Inc()
}

func (m *Metrics) CacheHit()  { m.CacheHits.Inc() }
func (m *Metrics) CacheMiss() { m.CacheMisses.Inc() }

// ObserveHTTP records one finished request. path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
