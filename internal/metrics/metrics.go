package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the process registry. A nil *Recorder records nothing, so
// callers never need to check whether metrics are enabled.
type Recorder struct {
	registry            *prometheus.Registry
	accessDecisions     *prometheus.CounterVec
	mutations           *prometheus.CounterVec
	collaboratorCalls   *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		accessDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelog_access_decisions_total",
				Help: "Project permission evaluations by resulting role.",
			},
			[]string{"role"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelog_mutations_total",
				Help: "Mutations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		collaboratorCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelog_collaborator_calls_total",
				Help: "Calls to external services by outcome.",
			},
			[]string{"collaborator", "outcome"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelog_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitelog_http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	recorder.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		recorder.accessDecisions,
		recorder.mutations,
		recorder.collaboratorCalls,
		recorder.httpRequestsTotal,
		recorder.httpRequestDuration,
	)
	return recorder
}

func (recorder *Recorder) Registry() *prometheus.Registry {
	if recorder == nil {
		return nil
	}
	return recorder.registry
}

// ObserveDecision counts an access decision. An empty role means no access.
func (recorder *Recorder) ObserveDecision(role string) {
	if recorder == nil {
		return
	}
	if role == "" {
		role = "NONE"
	}
	recorder.accessDecisions.WithLabelValues(role).Inc()
}

func (recorder *Recorder) ObserveMutation(operation string, outcome string) {
	if recorder == nil {
		return
	}
	recorder.mutations.WithLabelValues(operation, outcome).Inc()
}

func (recorder *Recorder) ObserveCollaborator(collaborator string, outcome string) {
	if recorder == nil {
		return
	}
	recorder.collaboratorCalls.WithLabelValues(collaborator, outcome).Inc()
}

// Middleware records request count and latency per matched route pattern,
// so path parameters do not explode label cardinality.
func (recorder *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if recorder == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if matched := c.Route(); matched != nil && matched.Path != "" && matched.Path != "/" {
			route = matched.Path
		}

		labels := []string{c.Method(), route, strconv.Itoa(status)}
		recorder.httpRequestsTotal.WithLabelValues(labels...).Inc()
		recorder.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (recorder *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{Registry: recorder.registry}))
}
