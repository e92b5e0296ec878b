package domain

import (
	"fmt"
	"math/rand/v2"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Random is the seeded generator threaded through a path run. *rand.Rand
// from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}

func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

type Position struct {
	Scenario int
	Index    int
	Actual   orb.Point
	Samples  []orb.Point
}

type Scenario struct {
	ID        int
	Name      string
	Positions []Position
}

// ScenarioModel is the immutable ground-truth table. It is safe for
// concurrent readers.
type ScenarioModel struct {
	scenarios []Scenario
}

func NewScenarioModel(scenarios []Scenario, walkDist float64) (*ScenarioModel, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	copied := make([]Scenario, len(scenarios))
	for i, scenario := range scenarios {
		if len(scenario.Positions) < 2 {
			return nil, fmt.Errorf("scenario %d: need at least 2 positions, got %d", i, len(scenario.Positions))
		}

		positions := make([]Position, len(scenario.Positions))
		for j, position := range scenario.Positions {
			if len(position.Samples) == 0 {
				return nil, fmt.Errorf("scenario %d position %d: %w", i, j, ErrEmptyCorpus)
			}
			samples := make([]orb.Point, len(position.Samples))
			copy(samples, position.Samples)
			positions[j] = Position{Scenario: i, Index: j, Actual: position.Actual, Samples: samples}
		}

		for j := range positions {
			if !hasNeighbourBeyond(positions, j, walkDist) {
				return nil, fmt.Errorf("scenario %d position %d: %w", i, j, ErrUnreachablePosition)
			}
		}

		copied[i] = Scenario{ID: i, Name: scenario.Name, Positions: positions}
	}

	return &ScenarioModel{scenarios: copied}, nil
}

func hasNeighbourBeyond(positions []Position, from int, walkDist float64) bool {
	for k := range positions {
		if k == from {
			continue
		}
		if planar.Distance(positions[from].Actual, positions[k].Actual) >= walkDist {
			return true
		}
	}
	return false
}

func (m *ScenarioModel) Scenarios() []Scenario {
	out := make([]Scenario, len(m.scenarios))
	copy(out, m.scenarios)
	return out
}

func (m *ScenarioModel) ScenarioCount() int {
	return len(m.scenarios)
}

func (m *ScenarioModel) PositionCount(scenario int) (int, error) {
	if scenario < 0 || scenario >= len(m.scenarios) {
		return 0, fmt.Errorf("%w: scenario %d", ErrOutOfRange, scenario)
	}
	return len(m.scenarios[scenario].Positions), nil
}

func (m *ScenarioModel) position(scenario, position int) (Position, error) {
	if scenario < 0 || scenario >= len(m.scenarios) {
		return Position{}, fmt.Errorf("%w: scenario %d", ErrOutOfRange, scenario)
	}
	positions := m.scenarios[scenario].Positions
	if position < 0 || position >= len(positions) {
		return Position{}, fmt.Errorf("%w: scenario %d position %d", ErrOutOfRange, scenario, position)
	}
	return positions[position], nil
}

func (m *ScenarioModel) ActualLocation(scenario, position int) (orb.Point, error) {
	p, err := m.position(scenario, position)
	if err != nil {
		return orb.Point{}, err
	}
	return p.Actual, nil
}

// EstimatedLocation draws one pre-recorded noisy sample for the position.
func (m *ScenarioModel) EstimatedLocation(scenario, position int, rng Random) (orb.Point, error) {
	p, err := m.position(scenario, position)
	if err != nil {
		return orb.Point{}, err
	}
	return p.Samples[rng.IntN(len(p.Samples))], nil
}
