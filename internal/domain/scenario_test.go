package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScenarios() []Scenario {
	return []Scenario{
		{
			Name: "corridor",
			Positions: []Position{
				{Actual: orb.Point{0, 0}, Samples: []orb.Point{{0.1, 0}, {-0.1, 0.1}, {0, -0.2}}},
				{Actual: orb.Point{2, 0}, Samples: []orb.Point{{2.1, 0}, {1.9, -0.1}}},
				{Actual: orb.Point{4, 0}, Samples: []orb.Point{{4, 0.2}, {3.8, 0}, {4.1, 0.1}}},
			},
		},
		{
			Name: "square",
			Positions: []Position{
				{Actual: orb.Point{0, 0}, Samples: []orb.Point{{0, 0}}},
				{Actual: orb.Point{0, 3}, Samples: []orb.Point{{0.1, 3}}},
				{Actual: orb.Point{3, 3}, Samples: []orb.Point{{3, 2.9}}},
				{Actual: orb.Point{3, 0}, Samples: []orb.Point{{2.9, 0.1}}},
			},
		},
	}
}

func newTestModel(t *testing.T) *ScenarioModel {
	t.Helper()

	model, err := NewScenarioModel(testScenarios(), DefaultWalkDist)
	require.NoError(t, err)
	return model
}

func TestScenarioModelActualLocation(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)

	got, err := model.ActualLocation(1, 2)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{3, 3}, got)
}

func TestScenarioModelOutOfRange(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)

	tests := []struct {
		name     string
		scenario int
		position int
	}{
		{name: "negative scenario", scenario: -1, position: 0},
		{name: "scenario past end", scenario: 2, position: 0},
		{name: "negative position", scenario: 0, position: -1},
		{name: "position past end", scenario: 0, position: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := model.ActualLocation(tc.scenario, tc.position)
			require.ErrorIs(t, err, ErrOutOfRange)

			_, err = model.EstimatedLocation(tc.scenario, tc.position, NewRandom(1))
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestScenarioModelEstimatedLocationDrawsFromCorpus(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)
	corpus := testScenarios()[0].Positions[2].Samples
	rng := NewRandom(7)

	for i := 0; i < 50; i++ {
		got, err := model.EstimatedLocation(0, 2, rng)
		require.NoError(t, err)
		assert.Contains(t, corpus, got)
	}
}

func TestScenarioModelEstimatedLocationIsSeeded(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)
	draw := func(seed int64) []orb.Point {
		rng := NewRandom(seed)
		out := make([]orb.Point, 0, 20)
		for i := 0; i < 20; i++ {
			p, err := model.EstimatedLocation(0, 0, rng)
			require.NoError(t, err)
			out = append(out, p)
		}
		return out
	}

	assert.Equal(t, draw(10), draw(10))
}

func TestNewScenarioModelValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		scenarios []Scenario
		wantErr   error
		wantMsg   string
	}{
		{name: "no scenarios", wantErr: ErrNoScenarios},
		{
			name: "empty corpus",
			scenarios: []Scenario{{Positions: []Position{
				{Actual: orb.Point{0, 0}},
				{Actual: orb.Point{5, 0}, Samples: []orb.Point{{5, 0}}},
			}}},
			wantErr: ErrEmptyCorpus,
		},
		{
			name: "all positions closer than walk distance",
			scenarios: []Scenario{{Positions: []Position{
				{Actual: orb.Point{0, 0}, Samples: []orb.Point{{0, 0}}},
				{Actual: orb.Point{0.5, 0}, Samples: []orb.Point{{0.5, 0}}},
			}}},
			wantErr: ErrUnreachablePosition,
		},
		{
			name:      "single position",
			scenarios: []Scenario{{Positions: []Position{{Actual: orb.Point{0, 0}, Samples: []orb.Point{{0, 0}}}}}},
			wantMsg:   "need at least 2 positions",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewScenarioModel(tc.scenarios, DefaultWalkDist)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.ErrorContains(t, err, tc.wantMsg)
			}
		})
	}
}

func TestScenarioModelCopiesInput(t *testing.T) {
	t.Parallel()

	scenarios := testScenarios()
	model, err := NewScenarioModel(scenarios, DefaultWalkDist)
	require.NoError(t, err)

	scenarios[0].Positions[0].Actual = orb.Point{99, 99}
	scenarios[0].Positions[0].Samples[0] = orb.Point{99, 99}

	got, err := model.ActualLocation(0, 0)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{0, 0}, got)
	assert.Equal(t, 1, model.Scenarios()[0].Positions[1].Index)
}
