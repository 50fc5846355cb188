package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the request counters shared by the Connect and REST surfaces.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grindtracker",
			Name:      "requests_total",
			Help:      "Requests handled, by surface, operation and result code.",
		}, []string{"surface", "operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grindtracker",
			Name:      "request_duration_seconds",
			Help:      "Request latency, by surface and operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"surface", "operation"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(surface, operation, code string, start time.Time) {
	m.requests.WithLabelValues(surface, operation, code).Inc()
	m.duration.WithLabelValues(surface, operation).Observe(time.Since(start).Seconds())
}

// Interceptor records every Connect call.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				} else {
					code = connect.CodeUnknown.String()
				}
			}
			m.observe("connect", req.Spec().Procedure, code, start)
			return resp, err
		}
	}
}

// Handler records every REST request, labelled by its chi route pattern.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		operation := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				operation = r.Method + " " + pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.observe("rest", operation, strconv.Itoa(status), start)
	})
}
