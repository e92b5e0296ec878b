package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/ctxsim/internal/adapters/config"
	resultsadapter "github.com/bnema/ctxsim/internal/adapters/render/results"
	tomlrepo "github.com/bnema/ctxsim/internal/adapters/repo/toml"
	scenariotoml "github.com/bnema/ctxsim/internal/adapters/scenario/toml"
	"github.com/bnema/ctxsim/internal/application"
	"github.com/bnema/ctxsim/internal/domain"
	"github.com/bnema/ctxsim/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// annotationNoWire marks commands that run without loading config or scenarios.
const annotationNoWire = "ctxsim/no-wire"

type app struct {
	service *application.Service
	logger  *zap.Logger

	reportRenderer    func(application.SimulationReport, resultsadapter.RenderOptions) (string, error)
	batchRenderer     func(application.BatchReport, resultsadapter.RenderOptions) (string, error)
	recordsRenderer   func([]domain.RunRecord) (string, error)
	scenariosRenderer func([]application.ScenarioSummary, int) (string, error)
	scenarioRenderer  func(domain.Scenario) (string, error)
}

func wireApp(ctx context.Context, opts rootOptions, logOutput io.Writer) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	v := viper.New()
	settings, err := config.Load(v, opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := newLogger(opts.verbose, logOutput)

	source, err := scenariotoml.NewSource(settings.ScenariosPath)
	if err != nil {
		return nil, fmt.Errorf("wire scenario source: %w", err)
	}

	clock := ports.SystemClock{}
	simulator, err := application.LoadSimulator(ctx, source, settings.Params, clock)
	if err != nil {
		return nil, err
	}

	model := simulator.Model()
	if settings.DefaultScenario >= model.ScenarioCount() {
		return nil, fmt.Errorf("%w: default scenario %d (have %d)", domain.ErrOutOfRange, settings.DefaultScenario, model.ScenarioCount())
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire result repository: %w", err)
	}

	logger.Debug("application wired",
		zap.Int("scenarios", model.ScenarioCount()),
		zap.Int("default_scenario", settings.DefaultScenario),
		zap.String("results_path", repo.Path()),
	)

	return &app{
		service:           application.NewService(simulator, repo, clock, logger, settings.DefaultScenario),
		logger:            logger,
		reportRenderer:    resultsadapter.RenderReport,
		batchRenderer:     resultsadapter.RenderBatch,
		recordsRenderer:   resultsadapter.RenderRecords,
		scenariosRenderer: resultsadapter.RenderScenarios,
		scenarioRenderer:  resultsadapter.RenderScenario,
	}, nil
}

func newLogger(verbose bool, output io.Writer) *zap.Logger {
	if !verbose || output == nil {
		return zap.NewNop()
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(output),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
