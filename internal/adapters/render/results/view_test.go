package results

import (
	"testing"
	"time"

	"github.com/bnema/ctxsim/internal/application"
	"github.com/bnema/ctxsim/internal/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTally() *domain.RuleTally {
	tally := domain.NewRuleTally()
	tally.Rules[domain.RuleAdjacentDwell] = domain.RuleCount{Matched: 12, Failed: 3}
	tally.Rules[domain.RuleSkipWalk] = domain.RuleCount{Matched: 4}
	tally.Accepted = 21
	tally.Rejected = 3
	return tally
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	report := application.SimulationReport{
		Record: domain.RunRecord{
			Key:          domain.RunKey{Scenario: 1, Seed: 10},
			Result:       domain.ApplicationResult{Moved: 4, Reliable: 18, Counter: 3},
			Observations: 24,
		},
		Steps: []application.Step{
			{
				Observation: domain.Observation{Seq: 1, Episode: 0, Position: 2, Estimate: orb.Point{1.234, -0.5}},
				Accepted:    orb.Point{1.234, -0.5},
				Error:       0.2,
				Reliable:    true,
			},
			{
				Observation: domain.Observation{Seq: 2, Episode: 0, Position: 2, Estimate: orb.Point{3, 0}},
				Accepted:    orb.Point{1.234, -0.5},
				Error:       0.9,
				Resolution: domain.Resolution{
					Substituted: true,
					Rule:        domain.RuleAdjacentDwell,
					Conflict:    domain.Context{Owner: 1},
				},
			},
		},
		Coverage: testTally(),
		Retained: 21,
	}

	output, err := RenderReport(report, RenderOptions{Steps: true, Coverage: true})
	require.NoError(t, err)

	assert.Contains(t, output, "scenario: 1  seed: 10  observations: 24")
	assert.Contains(t, output, "moved: 4  reliable: 18  counter: 3")
	assert.Contains(t, output, "reliability:")
	assert.Contains(t, output, "75%")
	assert.Contains(t, output, "[==================------]")
	assert.Contains(t, output, "retained: 21 contexts")
	assert.Contains(t, output, "est (1.23, -0.50)")
	assert.Contains(t, output, "[unreliable]")
	assert.Contains(t, output, "rejected by adjacent-dwell vs #1")
	assert.Contains(t, output, "matched 12  failed 3")
	assert.Contains(t, output, "accepted: 21  rejected: 3")
	assert.Contains(t, output, "[never matched]")
}

func TestRenderReportHidesOptionalSections(t *testing.T) {
	t.Parallel()

	output, err := RenderReport(application.SimulationReport{
		Steps:    []application.Step{{Observation: domain.Observation{Seq: 1}}},
		Coverage: testTally(),
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "  0%")
	assert.NotContains(t, output, "#1")
	assert.NotContains(t, output, "Rule coverage")
}

func TestRenderBatch(t *testing.T) {
	t.Parallel()

	output, err := RenderBatch(application.BatchReport{
		Records: []domain.RunRecord{
			{Key: domain.RunKey{Scenario: 0, Seed: 1}, Result: domain.ApplicationResult{Moved: 2, Reliable: 10, Counter: 1}, Observations: 10},
			{Key: domain.RunKey{Scenario: 0, Seed: 2}, Result: domain.ApplicationResult{Moved: 3, Reliable: 5, Counter: 0}, Observations: 10},
		},
		Totals:   domain.ApplicationResult{Moved: 5, Reliable: 15, Counter: 1},
		Coverage: testTally(),
	}, RenderOptions{Coverage: true})
	require.NoError(t, err)

	assert.Contains(t, output, "runs: 2")
	assert.Contains(t, output, "total moved: 5  reliable: 15  counter: 1")
	assert.Contains(t, output, " 75%")
	assert.Contains(t, output, "scenario 0 seed 2: moved: 3  reliable: 5  counter: 0 (10 obs)")
	assert.Contains(t, output, "Rule coverage")
}

func TestRenderBatchEmpty(t *testing.T) {
	t.Parallel()

	output, err := RenderBatch(application.BatchReport{}, RenderOptions{Coverage: true})
	require.NoError(t, err)
	assert.Contains(t, output, "No runs.")
}

func TestRenderRecords(t *testing.T) {
	t.Parallel()

	output, err := RenderRecords([]domain.RunRecord{
		{
			Key:          domain.RunKey{Scenario: 1, Seed: 10},
			Result:       domain.ApplicationResult{Moved: 4, Reliable: 20, Counter: 3},
			Observations: 24,
			RecordedAt:   time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Saved Runs")
	assert.Contains(t, output, "scenario 1 seed 10:")
	assert.Contains(t, output, "recorded 2026-02-14T11:00:00Z")

	empty, err := RenderRecords(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "No saved runs.")
}

func TestRenderScenarios(t *testing.T) {
	t.Parallel()

	output, err := RenderScenarios([]application.ScenarioSummary{
		{ID: 0, Name: "lab", Positions: 6, Samples: 48},
		{ID: 1, Name: "hall", Positions: 5, Samples: 40},
	}, 1)
	require.NoError(t, err)

	assert.Contains(t, output, "scenarios: 2")
	assert.Contains(t, output, "[0] lab positions: 6  samples: 48")
	assert.Contains(t, output, "[1] hall positions: 5  samples: 40 (default)")
	assert.NotContains(t, output, "samples: 48 (default)")
}

func TestRenderScenario(t *testing.T) {
	t.Parallel()

	output, err := RenderScenario(domain.Scenario{
		ID:   0,
		Name: "lab",
		Positions: []domain.Position{
			{Index: 0, Actual: orb.Point{0, 0}, Samples: []orb.Point{{0.1, 0}}},
			{Index: 1, Actual: orb.Point{1.5, 0}},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Scenario 0: lab")
	assert.Contains(t, output, "#0 (0.00, 0.00) samples: 1")
	assert.Contains(t, output, "#1 (1.50, 0.00) samples: 0")
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "240", string(interpolateColor(-5, 0, 100)))
	assert.Equal(t, "255", string(interpolateColor(100, 0, 100)))
	assert.Equal(t, "255", string(interpolateColor(1, 1, 1)))
}
