// Package metrics expone las métricas Prometheus del servicio de valoración.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
)

// Nombres de métricas.
const (
	MetricReportsTotal          = "garage_valuation_reports_total"
	MetricGapFillTotal          = "garage_valuation_gap_fill_total"
	MetricReportDurationSeconds = "garage_valuation_report_duration_seconds"
)

var _ appvaluation.Metrics = (*Prometheus)(nil)

// Prometheus implementa appvaluation.Metrics sobre un registry propio
// (sin colisiones con el registry global de otras librerías).
type Prometheus struct {
	registry       *prometheus.Registry
	reportsTotal   *prometheus.CounterVec
	gapFillTotal   *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
}

// NewPrometheus crea y registra las métricas. withRuntime agrega los collectors de proceso y Go.
func NewPrometheus(withRuntime bool) *Prometheus {
	registry := prometheus.NewRegistry()
	p := &Prometheus{
		registry: registry,
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricReportsTotal,
			Help: "Reportes de valoración solicitados, por resultado.",
		}, []string{"outcome"}),
		gapFillTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricGapFillTotal,
			Help: "Repuestos con stock no respaldado por lotes, por política de relleno.",
		}, []string{"policy"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricReportDurationSeconds,
			Help:    "Duración del cálculo del reporte de valoración.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}
	registry.MustRegister(p.reportsTotal, p.gapFillTotal, p.reportDuration)
	if withRuntime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return p
}

// ObserveReport cuenta un reporte y, si hubo cálculo, registra su duración.
func (p *Prometheus) ObserveReport(outcome string, elapsed time.Duration) {
	p.reportsTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		p.reportDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	}
}

// ObserveGapFill cuenta un repuesto con brecha de lotes.
func (p *Prometheus) ObserveGapFill(policy string) {
	p.gapFillTotal.WithLabelValues(policy).Inc()
}

// Registry devuelve el registry (para pruebas o para montar en otro servidor).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler devuelve el handler HTTP de /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
