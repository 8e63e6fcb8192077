package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.Events == nil || m.Rejections == nil || m.AccountsLocked == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.Events.WithLabelValues("deposit", OutcomeAccepted).Inc()
	m.MalformedRows.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.Events.WithLabelValues("deposit", OutcomeAccepted)); got != 1 {
		t.Fatalf("expected 1 accepted deposit, got %v", got)
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}

func TestWriteToTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	m.Rejections.WithLabelValues("insufficient_funds").Add(2)

	path := filepath.Join(t.TempDir(), "txengine.prom")
	if err := WriteToTextfile(path, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read metrics file: %v", err)
	}

	if !strings.Contains(string(data), `txengine_rejections_total{reason="insufficient_funds"} 2`) {
		t.Fatalf("expected rejection counter in output, got:\n%s", data)
	}
}
