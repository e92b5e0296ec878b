package application

import (
	"context"
	"fmt"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/bnema/ctxsim/internal/ports"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Step is the per-observation outcome of a path run.
type Step struct {
	Observation domain.Observation
	Candidate   domain.Context
	Resolution  domain.Resolution
	Accepted    orb.Point
	Error       float64
	Moved       bool
	Reliable    bool
}

type Run struct {
	Key    domain.RunKey
	Result domain.ApplicationResult
	Steps  []Step
	Window *domain.Window
}

// Simulator drives one path from generation through resolution. It holds
// no per-run state, so one Simulator can serve concurrent runs.
type Simulator struct {
	model     *domain.ScenarioModel
	generator *domain.PathGenerator
	params    domain.Params
	clock     ports.Clock
}

func NewSimulator(model *domain.ScenarioModel, params domain.Params, clock ports.Clock) *Simulator {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Simulator{
		model:     model,
		generator: domain.NewPathGenerator(model, params),
		params:    params,
		clock:     clock,
	}
}

// LoadSimulator builds a Simulator over the scenario table source yields.
func LoadSimulator(ctx context.Context, source ports.ScenarioSource, params domain.Params, clock ports.Clock) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	scenarios, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}

	model, err := domain.NewScenarioModel(scenarios, params.WalkDist)
	if err != nil {
		return nil, fmt.Errorf("build scenario model: %w", err)
	}

	return NewSimulator(model, params, clock), nil
}

func (s *Simulator) Model() *domain.ScenarioModel {
	return s.model
}

func (s *Simulator) Params() domain.Params {
	return s.params
}

func (s *Simulator) Run(key domain.RunKey, observer domain.Observer) (Run, error) {
	rng := domain.NewRandom(key.Seed)

	observations, err := s.generator.Generate(key.Scenario, rng)
	if err != nil {
		return Run{}, fmt.Errorf("generate path: %w", err)
	}

	factory := domain.NewContextFactory(s.clock.Now)
	resolver := domain.NewResolver(s.params, domain.WithObserver(observer))
	window := domain.NewWindow()

	run := Run{
		Key:    key,
		Steps:  make([]Step, 0, len(observations)),
		Window: window,
	}

	var previous *orb.Point
	for _, obs := range observations {
		candidate := factory.New(obs.Seq, obs.Elapsed, obs.Estimate)

		res, err := resolver.Resolve(candidate, window)
		if err != nil {
			return Run{}, fmt.Errorf("resolve observation %d: %w", obs.Seq, err)
		}

		accepted, err := res.Context.Coordinate()
		if err != nil {
			return Run{}, fmt.Errorf("accepted context %d: %w", res.Context.Owner, err)
		}

		step := Step{
			Observation: obs,
			Candidate:   candidate,
			Resolution:  res,
			Accepted:    accepted,
			Error:       planar.Distance(obs.Actual, accepted),
		}
		step.Moved = previous != nil && !accepted.Equal(*previous)
		step.Reliable = step.Error <= s.params.AllowedError

		if step.Moved {
			run.Result.Moved++
		}
		if step.Reliable {
			run.Result.Reliable++
		}

		run.Steps = append(run.Steps, step)
		previous = &accepted
	}

	run.Result.Counter = window.Substitutions()
	return run, nil
}
