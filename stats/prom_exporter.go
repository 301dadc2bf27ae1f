package stats

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// PrometheusExporter periodically scrapes a Counters' JSON endpoint and
// republishes the result as Prometheus gauges, reusing the teacher's
// "HTTP JSON as source of truth, Prometheus as a thin mirror" split
// rather than instrumenting two parallel metrics systems.
type PrometheusExporter struct {
	registry   *prometheus.Registry
	listenPort int
	sourceURL  string
	interval   time.Duration
}

// NewPrometheusExporter creates an exporter that scrapes sourceURL (the
// base URL of a Counters.Start HTTP server) every scrapeInterval and
// republishes it on listenPort.
func NewPrometheusExporter(listenPort int, sourceURL string, scrapeInterval time.Duration) *PrometheusExporter {
	return &PrometheusExporter{
		registry:   prometheus.NewRegistry(),
		listenPort: listenPort,
		sourceURL:  sourceURL,
		interval:   scrapeInterval,
	}
}

// Start runs the scrape loop and the Prometheus HTTP endpoint. Blocks
// until the HTTP server exits.
func (e *PrometheusExporter) Start() {
	go func() {
		for {
			e.scrapeMetrics()
			time.Sleep(e.interval)
		}
	}()

	http.Handle("/metrics", promhttp.HandlerFor(
		e.registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	logrus.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", e.listenPort), nil))
}

func (e *PrometheusExporter) scrapeMetrics() {
	counters, err := FetchCounters(e.sourceURL)
	if err != nil {
		logrus.Errorf("failed to fetch counters: %v", err)
		return
	}
	for key, value := range counters {
		collector := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: flattenKey(key),
			Help: key,
		})
		if err := e.registry.Register(collector); err != nil {
			are := &prometheus.AlreadyRegisteredError{}
			if errors.As(err, are) {
				collector = are.ExistingCollector.(prometheus.Gauge)
			} else {
				logrus.Errorf("failed to register metric %s: %v", key, err)
				continue
			}
		}
		collector.Set(float64(value))
	}
}

func flattenKey(key string) string {
	replacer := strings.NewReplacer(" ", "_", ".", "_", "-", "_", "=", "_", "/", "_")
	return replacer.Replace(key)
}
