package stats

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFlattenKeyReplacesSeparators(t *testing.T) {
	require.Equal(t, "state_transitions_fade_in", flattenKey("state_transitions.fade-in"))
	require.Equal(t, "a_b_c_d_e", flattenKey("a b/c.d=e"))
}

func TestScrapeMetricsPublishesGauges(t *testing.T) {
	c := NewCounters()
	c.IncRenderQuantum()
	c.IncRenderQuantum()
	srv := httptest.NewServer(http.HandlerFunc(c.handleRequest))
	defer srv.Close()

	e := NewPrometheusExporter(0, srv.URL, time.Hour)
	e.scrapeMetrics()

	mfs, err := e.registry.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "render_quantums" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			require.EqualValues(t, 2, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}

func TestScrapeMetricsReusesExistingCollectorOnRescrape(t *testing.T) {
	c := NewCounters()
	c.IncRenderQuantum()
	srv := httptest.NewServer(http.HandlerFunc(c.handleRequest))
	defer srv.Close()

	e := NewPrometheusExporter(0, srv.URL, time.Hour)
	e.scrapeMetrics()
	c.IncRenderQuantum()
	e.scrapeMetrics()

	mfs, err := e.registry.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() == "render_quantums" {
			require.Len(t, mf.GetMetric(), 1, "rescraping must update the existing gauge, not register a duplicate")
			require.EqualValues(t, 2, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}
