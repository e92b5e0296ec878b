package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/bnema/ctxsim/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidSeed        = errors.New("invalid testcase seed")
	ErrNoResultRepository = errors.New("result repository not configured")
)

type Service struct {
	simulator       *Simulator
	results         ports.ResultRepository
	clock           ports.Clock
	logger          *zap.Logger
	defaultScenario int
}

func NewService(simulator *Simulator, results ports.ResultRepository, clock ports.Clock, logger *zap.Logger, defaultScenario int) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		simulator:       simulator,
		results:         results,
		clock:           clock,
		logger:          logger,
		defaultScenario: defaultScenario,
	}
}

func (s *Service) DefaultScenario() int {
	return s.defaultScenario
}

func ParseSeed(raw string) (int64, error) {
	seed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidSeed, raw)
	}
	return seed, nil
}

// Application runs one path on the default scenario with the seed parsed
// from testcaseSeed.
func (s *Service) Application(ctx context.Context, testcaseSeed string) (domain.ApplicationResult, error) {
	seed, err := ParseSeed(testcaseSeed)
	if err != nil {
		return domain.ApplicationResult{}, err
	}

	report, err := s.Simulate(ctx, SimulateCommand{Scenario: s.defaultScenario, Seed: seed})
	if err != nil {
		return domain.ApplicationResult{}, err
	}

	return report.Record.Result, nil
}

func (s *Service) Simulate(ctx context.Context, cmd SimulateCommand) (SimulationReport, error) {
	if err := ctx.Err(); err != nil {
		return SimulationReport{}, err
	}

	key := domain.RunKey{Scenario: cmd.Scenario, Seed: cmd.Seed}
	tally := domain.NewRuleTally()

	run, err := s.simulator.Run(key, domain.MultiObserver(tally, cmd.Observer))
	if err != nil {
		return SimulationReport{}, fmt.Errorf("run scenario %d seed %d: %w", key.Scenario, key.Seed, err)
	}

	record := s.record(run)
	s.logger.Debug("path simulated",
		zap.Int("scenario", key.Scenario),
		zap.Int64("seed", key.Seed),
		zap.Int("observations", record.Observations),
		zap.Int("moved", record.Result.Moved),
		zap.Int("reliable", record.Result.Reliable),
		zap.Int("counter", record.Result.Counter),
	)

	if cmd.Save {
		if err := s.save(ctx, []domain.RunRecord{record}); err != nil {
			return SimulationReport{}, err
		}
	}

	return SimulationReport{
		Record:   record,
		Steps:    run.Steps,
		Coverage: tally,
		Retained: run.Window.Len(),
	}, nil
}

// RunBatch runs every seed on one scenario. Runs share no mutable state, so
// they execute concurrently up to cmd.Parallel; records keep seed order.
func (s *Service) RunBatch(ctx context.Context, cmd BatchCommand) (BatchReport, error) {
	if len(cmd.Seeds) > MaxBatchSeeds {
		return BatchReport{}, fmt.Errorf("%w: %d seeds exceeds %d", ErrSeedRangeTooLarge, len(cmd.Seeds), MaxBatchSeeds)
	}

	parallel := cmd.Parallel
	if parallel < 1 {
		parallel = 1
	}

	records := make([]domain.RunRecord, len(cmd.Seeds))
	tallies := make([]*domain.RuleTally, len(cmd.Seeds))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, seed := range cmd.Seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			key := domain.RunKey{Scenario: cmd.Scenario, Seed: seed}
			tally := domain.NewRuleTally()
			run, err := s.simulator.Run(key, tally)
			if err != nil {
				return fmt.Errorf("run scenario %d seed %d: %w", key.Scenario, key.Seed, err)
			}

			records[i] = s.record(run)
			tallies[i] = tally

			if cmd.Progress != nil {
				cmd.Progress(int(done.Add(1)), len(cmd.Seeds))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchReport{}, err
	}

	report := BatchReport{Records: records, Coverage: domain.NewRuleTally()}
	for i, record := range records {
		report.Totals.Moved += record.Result.Moved
		report.Totals.Reliable += record.Result.Reliable
		report.Totals.Counter += record.Result.Counter
		report.Coverage.Merge(tallies[i])
	}

	s.logger.Info("batch finished",
		zap.Int("scenario", cmd.Scenario),
		zap.Int("runs", len(records)),
		zap.Int("parallel", parallel),
		zap.Int("substitutions", report.Totals.Counter),
	)

	if cmd.Save && len(records) > 0 {
		if err := s.save(ctx, records); err != nil {
			return BatchReport{}, err
		}
	}

	return report, nil
}

func (s *Service) ListResults(ctx context.Context) ([]domain.RunRecord, error) {
	if s.results == nil {
		return nil, ErrNoResultRepository
	}

	records, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list run records: %w", err)
	}
	return records, nil
}

func (s *Service) GetResult(ctx context.Context, key domain.RunKey) (domain.RunRecord, error) {
	if s.results == nil {
		return domain.RunRecord{}, ErrNoResultRepository
	}

	record, err := s.results.Get(ctx, key)
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("get run record: %w", err)
	}
	return record, nil
}

func (s *Service) Scenarios() []ScenarioSummary {
	scenarios := s.simulator.Model().Scenarios()
	summaries := make([]ScenarioSummary, 0, len(scenarios))
	for _, scenario := range scenarios {
		samples := 0
		for _, position := range scenario.Positions {
			samples += len(position.Samples)
		}
		summaries = append(summaries, ScenarioSummary{
			ID:        scenario.ID,
			Name:      scenario.Name,
			Positions: len(scenario.Positions),
			Samples:   samples,
		})
	}
	return summaries
}

func (s *Service) Scenario(id int) (domain.Scenario, error) {
	scenarios := s.simulator.Model().Scenarios()
	if id < 0 || id >= len(scenarios) {
		return domain.Scenario{}, fmt.Errorf("%w: scenario %d", domain.ErrOutOfRange, id)
	}
	return scenarios[id], nil
}

func (s *Service) record(run Run) domain.RunRecord {
	return domain.RunRecord{
		Key:          run.Key,
		Result:       run.Result,
		Observations: len(run.Steps),
		RecordedAt:   s.clock.Now(),
	}
}

func (s *Service) save(ctx context.Context, records []domain.RunRecord) error {
	if s.results == nil {
		return ErrNoResultRepository
	}
	if err := s.results.Save(ctx, records); err != nil {
		return fmt.Errorf("save run records: %w", err)
	}

	s.logger.Debug("run records saved", zap.Int("count", len(records)))
	return nil
}
