package observability

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/odyssey-erp/stackchart/internal/series"
)

// Metrics mengumpulkan metrik Prometheus untuk pipeline grafik bertumpuk.
type Metrics struct {
	registry          *prometheus.Registry
	published         prometheus.Counter
	activeLayers      prometheus.Gauge
	stackedMaxY       prometheus.Gauge
	recomputeDuration prometheus.Histogram
	rowsLoaded        prometheus.Counter
	loadFailures      prometheus.Counter
}

// NewMetrics menginisialisasi registry dan metrik dasar.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stackchart_snapshots_published_total",
		Help: "Jumlah snapshot yang dikirim ke subscriber.",
	})
	layers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stackchart_active_layers",
		Help: "Jumlah kategori aktif pada snapshot terakhir.",
	})
	maxY := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stackchart_stacked_max_y",
		Help: "Nilai tumpukan tertinggi pada snapshot terakhir.",
	})
	recompute := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stackchart_recompute_duration_seconds",
		Help:    "Durasi perhitungan ulang tumpukan dan statistik.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stackchart_rows_loaded_total",
		Help: "Jumlah baris CSV yang berhasil dibaca.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stackchart_load_failures_total",
		Help: "Jumlah kegagalan membaca CSV.",
	})
	registry.MustRegister(published, layers, maxY, recompute, rows, failures)
	return &Metrics{
		registry:          registry,
		published:         published,
		activeLayers:      layers,
		stackedMaxY:       maxY,
		recomputeDuration: recompute,
		rowsLoaded:        rows,
		loadFailures:      failures,
	}
}

// ObserveSnapshot dipasang sebagai subscriber pada series.Bus.
func (m *Metrics) ObserveSnapshot(snapshot series.Snapshot) {
	if m == nil {
		return
	}
	m.published.Inc()
	m.activeLayers.Set(float64(len(snapshot.Data)))
	m.stackedMaxY.Set(float64(snapshot.MaxY))
}

// ObserveRecompute memenuhi series.Observer.
func (m *Metrics) ObserveRecompute(d time.Duration, layers int) {
	if m == nil {
		return
	}
	m.recomputeDuration.Observe(d.Seconds())
}

// ObserveLoad mencatat hasil pembacaan CSV.
func (m *Metrics) ObserveLoad(rows int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.loadFailures.Inc()
		return
	}
	m.rowsLoaded.Add(float64(rows))
}

// Registerer mengekspos registry untuk pendaftaran metrik khusus.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// WriteText menulis seluruh metrik dalam format teks Prometheus.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}
