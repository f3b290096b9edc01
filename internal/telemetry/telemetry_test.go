package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/heuristic"
	"mad-wfc/pkg/wfc/topology"
)

// alternating returns a row where neighbors must differ; odd periodic rows
// always contradict.
func alternating(t *testing.T, width int, periodic bool) *wfc.Engine {
	t.Helper()
	topo, err := topology.NewCartesian2D(width, 1, 2, periodic)
	require.NoError(t, err)
	prop := [][][]int{{{1}, {0}}, {{1}, {0}}}
	e, err := wfc.New(topo, []float64{1, 1}, prop, heuristic.NewScanline())
	require.NoError(t, err)
	return e
}

func TestMetricsCountEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := alternating(t, 4, false)
	bans := 0
	e.Subscribe(m)
	e.Subscribe(wfc.ObserverFunc(func(ev wfc.Event) {
		if ev.Kind == wfc.EventBan {
			bans++
		}
	}))

	done := m.Track()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveRuns))
	out := e.Run(1, 0, 0)
	done(out)

	require.Equal(t, wfc.OutcomeSolved, out)
	assert.Equal(t, float64(bans), testutil.ToFloat64(m.EventsTotal.WithLabelValues("ban")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("observe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("finish")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("solved")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveRuns))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestMetricsFailedRun(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	e := alternating(t, 3, true)
	e.Subscribe(m)

	done := m.Track()
	done(e.Run(2, 0, 0))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("failed")))
}

func TestNewMetricsRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	l := NewLogObserver(logger)

	e := alternating(t, 3, true)
	e.Subscribe(l)
	e.Run(3, 0, 0)
	first := l.RunID()
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	var records []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 3, "bans and observations stay below info")
	assert.Equal(t, "run started", records[0]["msg"])
	assert.Equal(t, "WARN", records[1]["level"])
	assert.Equal(t, "run finished", records[2]["msg"])
	for _, rec := range records {
		assert.Equal(t, first, rec["run"])
	}

	e.Run(4, 0, 0)
	assert.NotEqual(t, first, l.RunID())
}
