package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cvrp/metrics"
	"github.com/katalvlaran/cvrp/plan"
	"github.com/katalvlaran/cvrp/search"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeApplied, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeNoImprovement, metrics.Outcome(plan.ErrNoImprovement))
	assert.Equal(t, metrics.OutcomeCapacity, metrics.Outcome(plan.ErrCapacityExceeded))
	assert.Equal(t, metrics.OutcomeInvalid, metrics.Outcome(plan.ErrInvalidArguments))
	assert.Equal(t, metrics.OutcomeInvalid, metrics.Outcome(plan.ErrInvalidTour))
	assert.Equal(t, metrics.OutcomeOther, metrics.Outcome(errors.New("x")))
}

func TestObserver(t *testing.T) {
	m := metrics.New()
	obs := m.Observer("A-n32-k5")

	obs.Iteration(search.IntraExchange, nil)
	obs.Iteration(search.IntraExchange, nil)
	obs.Iteration(search.InterExchange, plan.ErrInvalidArguments)
	obs.Improvement(812.5)
	obs.Improvement(790.25)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Moves.WithLabelValues("intra_exchange", metrics.OutcomeApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Moves.WithLabelValues("inter_exchange", metrics.OutcomeInvalid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Improvements.WithLabelValues("A-n32-k5")))
	assert.Equal(t, 790.25, testutil.ToFloat64(m.BestCost.WithLabelValues("A-n32-k5")))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveSolve(nil)
	m.ObserveSolve(errors.New("boom"))
	m.ObserveStage("search", 120*time.Millisecond)

	path := filepath.Join(t.TempDir(), "cvrp.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)
	assert.True(t, strings.Contains(text, `cvrp_solves_total{status="ok"} 1`))
	assert.True(t, strings.Contains(text, `cvrp_solves_total{status="error"} 1`))
	assert.True(t, strings.Contains(text, `cvrp_solve_stage_duration_seconds_count{stage="search"} 1`))

	assert.Error(t, m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "cvrp.prom")))
}
