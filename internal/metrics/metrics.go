// Package metrics define los collectors Prometheus del servicio. Paquete
// standalone para evitar ciclos de import entre http y services.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// HashDuration observa cada derivación argon2; el hashing está tuneado
	// cerca de 1s, así que los buckets van más arriba que los HTTP.
	HashDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "password_hash_duration_seconds",
		Help:    "Duración de las derivaciones argon2",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Intentos de login por resultado",
	}, []string{"outcome"}) // outcome: ok|bad_credentials|rate_limited

	AuthRejectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_rejects_total",
		Help: "Rechazos del gate de autorización por motivo",
	}, []string{"reason"}) // reason: not_authenticated|insufficient_permission|not_owner
)

// Register registra todos los collectors en el registry dado (default si es
// nil) y devuelve el handler para /metrics.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HashDuration,
		LoginsTotal,
		AuthRejectsTotal,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return promhttp.Handler(), nil
}
