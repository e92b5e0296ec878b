package domain

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Observation is one simulated sensor reading along a path.
type Observation struct {
	Seq        int64
	Episode    int
	Position   int
	Actual     orb.Point
	Estimate   orb.Point
	Transition time.Duration
	Elapsed    time.Duration
}

type PathGenerator struct {
	model  *ScenarioModel
	params Params
}

func NewPathGenerator(model *ScenarioModel, params Params) *PathGenerator {
	return &PathGenerator{model: model, params: params}
}

// Generate produces the observations of one path. Draw order per episode is
// position (redrawn until it is a real move), stay count, then for every
// observation sample index, noise x, noise y.
func (g *PathGenerator) Generate(scenario int, rng Random) ([]Observation, error) {
	count, err := g.model.PositionCount(scenario)
	if err != nil {
		return nil, err
	}
	positions := g.model.scenarios[scenario].Positions

	var (
		out     []Observation
		seq     int64
		elapsed time.Duration
		bPos    = -1
	)

	for episode := 0; episode < g.params.Episodes; episode++ {
		if bPos >= 0 && !hasNeighbourBeyond(positions, bPos, g.params.WalkDist) {
			return nil, fmt.Errorf("scenario %d position %d: %w", scenario, bPos, ErrUnreachablePosition)
		}

		cPos := rng.IntN(count)
		for bPos >= 0 && (cPos == bPos || planar.Distance(positions[bPos].Actual, positions[cPos].Actual) < g.params.WalkDist) {
			cPos = rng.IntN(count)
		}

		stay := 1 + rng.IntN(g.params.MaxStay)
		for k := 0; k < stay; k++ {
			transition := g.transition(positions, bPos, cPos, k)

			estimate, err := g.model.EstimatedLocation(scenario, cPos, rng)
			if err != nil {
				return nil, err
			}
			jittered := orb.Point{
				estimate.X() + g.jitter(rng),
				estimate.Y() + g.jitter(rng),
			}

			elapsed += transition
			seq++
			out = append(out, Observation{
				Seq:        seq,
				Episode:    episode,
				Position:   cPos,
				Actual:     positions[cPos].Actual,
				Estimate:   jittered,
				Transition: transition,
				Elapsed:    elapsed,
			})
		}

		bPos = cPos
	}

	return out, nil
}

func (g *PathGenerator) transition(positions []Position, bPos, cPos, k int) time.Duration {
	switch {
	case k > 0:
		return g.params.StayTime
	case bPos < 0:
		return 0
	default:
		walked := planar.Distance(positions[bPos].Actual, positions[cPos].Actual)
		return time.Duration(walked / g.params.Velocity * float64(time.Second))
	}
}

// jitter draws U(-Noise, +Noise).
func (g *PathGenerator) jitter(rng Random) float64 {
	return (rng.Float64()*2 - 1) * g.params.Noise
}
