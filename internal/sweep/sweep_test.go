package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-wfc/internal/config"
	"mad-wfc/internal/telemetry"
	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/grid"
	"mad-wfc/pkg/wfc/model"
)

func rulesJob(t *testing.T, width int, periodic bool) Builder {
	t.Helper()
	c := config.DefaultConfig()
	c.Width, c.Height = width, 4
	c.Periodic = periodic
	c.Legend = "ab"
	c.Palette = []string{"#000000", "#ffffff"}
	c.Model = config.Model{Type: config.ModelRules}
	c.Model.Rules = model.Rules{
		Tiles:      []model.Tile{{Name: "a", Weight: 1}, {Name: "b", Pixel: 1, Weight: 2}},
		Horizontal: [][2]string{{"a", "b"}, {"b", "a"}, {"b", "b"}},
		Vertical:   [][2]string{{"a", "a"}, {"a", "b"}, {"b", "a"}, {"b", "b"}},
	}
	require.NoError(t, c.Validate())
	return c.Build
}

func TestRunSolvesEverySeed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(reg)
	results, err := Run(context.Background(), rulesJob(t, 8, false), Options{
		Seeds:   Seeds(100, 12),
		Workers: 3,
		Metrics: m,
	})
	require.NoError(t, err)
	require.Len(t, results, 12)
	for i, r := range results {
		assert.Equal(t, int64(100+i), r.Seed)
		assert.Equal(t, wfc.OutcomeSolved, r.Outcome)
		assert.NoError(t, r.Err)
		assert.Equal(t, 32, r.Collapsed)
		assert.Positive(t, r.Steps)
	}
	assert.Equal(t, 12.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("solved")))

	s := Summarize(results)
	assert.Equal(t, 12, s.Solved)
	assert.Equal(t, 1.0, s.SuccessRate())
	assert.Positive(t, s.MeanSteps)
}

func TestRunMatchesSerial(t *testing.T) {
	build := rulesJob(t, 10, false)
	serial, err := Run(context.Background(), build, Options{Seeds: Seeds(1, 8), Workers: 1})
	require.NoError(t, err)
	parallel, err := Run(context.Background(), build, Options{Seeds: Seeds(1, 8), Workers: 4})
	require.NoError(t, err)
	for i := range serial {
		assert.Equal(t, serial[i].Steps, parallel[i].Steps, "seed %d", serial[i].Seed)
		assert.Equal(t, serial[i].Outcome, parallel[i].Outcome)
	}
}

func TestRunReportsFailures(t *testing.T) {
	// Strictly alternating tiles cannot close an odd ring.
	c := config.DefaultConfig()
	c.Width, c.Height, c.Periodic, c.Degree = 5, 1, true, 2
	c.Legend = "ab"
	c.Palette = []string{"#000000", "#ffffff"}
	c.Model = config.Model{Type: config.ModelRules}
	c.Model.Rules = model.Rules{
		Tiles:      []model.Tile{{Name: "a", Weight: 1}, {Name: "b", Pixel: 1, Weight: 1}},
		Horizontal: [][2]string{{"a", "b"}, {"b", "a"}},
	}
	require.NoError(t, c.Validate())

	results, err := Run(context.Background(), c.Build, Options{Seeds: Seeds(0, 4), Workers: 2})
	require.NoError(t, err)
	s := Summarize(results)
	assert.Equal(t, 4, s.Failed)
	assert.Zero(t, s.SuccessRate())
	for _, r := range results {
		assert.ErrorIs(t, r.Err, wfc.ErrContradiction)
	}
}

func TestRunStepLimit(t *testing.T) {
	results, err := Run(context.Background(), rulesJob(t, 16, false), Options{Seeds: Seeds(0, 2), StepLimit: 1})
	require.NoError(t, err)
	s := Summarize(results)
	assert.Equal(t, 2, s.Incomplete+s.Solved)
	for _, r := range results {
		assert.LessOrEqual(t, r.Steps, 1)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, rulesJob(t, 8, false), Options{Seeds: Seeds(0, 50), Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(results), 50)
}

func TestRunBuilderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), func() (*grid.Algorithm, error) { return nil, boom }, Options{Seeds: Seeds(0, 3)})
	assert.ErrorIs(t, err, boom)

	_, err = Run(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoBuilder)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Runs)
	assert.Zero(t, s.SuccessRate())
}
