package zerolog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func resolveTwo(t *testing.T, observer domain.Observer) {
	t.Helper()

	factory := domain.NewContextFactory(func() time.Time { return domain.LogicalEpoch })
	resolver := domain.NewResolver(domain.DefaultParams(), domain.WithObserver(observer))
	window := domain.NewWindow()

	_, err := resolver.Resolve(factory.New(1, 0, orb.Point{0, 0}), window)
	require.NoError(t, err)
	res, err := resolver.Resolve(factory.New(2, 100*time.Millisecond, orb.Point{5, 0}), window)
	require.NoError(t, err)
	require.True(t, res.Substituted)
}

func TestTracerWritesRuleAndDecisionEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	resolveTwo(t, NewTracer(&buf, domain.RunKey{Scenario: 1, Seed: 10}))

	lines := traceLines(t, buf.Bytes())
	require.Len(t, lines, 3)

	assert.Equal(t, EventDecision, lines[0]["message"])
	assert.Equal(t, float64(1), lines[0]["owner"])
	assert.Equal(t, false, lines[0]["substituted"])
	assert.NotContains(t, lines[0], "rule")

	assert.Equal(t, EventRule, lines[1]["message"])
	assert.Equal(t, "adjacent-dwell", lines[1]["rule"])
	assert.Equal(t, float64(2), lines[1]["owner"])
	assert.Equal(t, float64(1), lines[1]["entry"])
	assert.Equal(t, float64(100), lines[1]["elapsedMs"])
	assert.Equal(t, float64(5), lines[1]["distance"])
	assert.Equal(t, false, lines[1]["passed"])

	assert.Equal(t, EventDecision, lines[2]["message"])
	assert.Equal(t, true, lines[2]["substituted"])
	assert.Equal(t, float64(1), lines[2]["accepted"])
	assert.Equal(t, float64(1), lines[2]["conflict"])
	assert.Equal(t, "adjacent-dwell", lines[2]["rule"])

	for _, line := range lines {
		assert.Equal(t, float64(1), line["scenario"])
		assert.Equal(t, float64(10), line["seed"])
	}
}

func TestTracerSampling(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tracer := NewTracer(&buf, domain.RunKey{})
	tracer.Sampling = 2
	resolveTwo(t, tracer)

	lines := traceLines(t, buf.Bytes())
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, float64(2), line["owner"])
	}
}

func TestCreateWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trace.jsonl")
	tracer, err := Create(path, domain.RunKey{Seed: 3})
	require.NoError(t, err)

	resolveTwo(t, tracer)
	require.NoError(t, tracer.Close())
	require.NoError(t, tracer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, traceLines(t, data), 3)
}

func TestCreateReportsUnwritablePath(t *testing.T) {
	t.Parallel()

	_, err := Create(filepath.Join(t.TempDir(), "missing", "trace.jsonl"), domain.RunKey{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "create trace file")
}
