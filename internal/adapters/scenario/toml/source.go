package toml

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/bnema/ctxsim/internal/ports"
	"github.com/paulmach/orb"
	toml "github.com/pelletier/go-toml/v2"
)

const defaultScenariosFile = "default_scenarios.toml"

//go:embed default_scenarios.toml
var defaultScenarios embed.FS

var ErrMalformedSample = errors.New("malformed sample line")

// Source reads a scenario table from a TOML file. Sample file references
// are resolved relative to the table's directory.
type Source struct {
	fsys fs.FS
	name string
}

var _ ports.ScenarioSource = (*Source)(nil)

// NewSource returns a file-backed source, or the embedded default table
// when path is empty.
func NewSource(path string) (*Source, error) {
	if path == "" {
		return NewDefaultSource(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve scenarios path: %w", err)
	}

	return &Source{fsys: os.DirFS(filepath.Dir(absPath)), name: filepath.Base(absPath)}, nil
}

func NewDefaultSource() *Source {
	return &Source{fsys: defaultScenarios, name: defaultScenariosFile}
}

func NewFSSource(fsys fs.FS, name string) *Source {
	return &Source{fsys: fsys, name: name}
}

func (s *Source) Load(ctx context.Context) ([]domain.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode scenarios file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	base := path.Dir(s.name)
	scenarios := make([]domain.Scenario, 0, len(file.Scenarios))
	for i, entry := range file.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scenario, err := s.fromSchema(base, i, entry)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

func (s *Source) fromSchema(base string, id int, entry scenarioSchema) (domain.Scenario, error) {
	name := entry.Name
	if name == "" {
		name = fmt.Sprintf("scenario-%d", id)
	}

	positions := make([]domain.Position, 0, len(entry.Positions))
	for j, p := range entry.Positions {
		samples, err := s.samples(base, entry, j, p)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("scenario %q position %d: %w", name, j, err)
		}
		positions = append(positions, domain.Position{
			Scenario: id,
			Index:    j,
			Actual:   orb.Point{p.X, p.Y},
			Samples:  samples,
		})
	}

	return domain.Scenario{ID: id, Name: name, Positions: positions}, nil
}

func (s *Source) samples(base string, scenario scenarioSchema, index int, p positionSchema) ([]orb.Point, error) {
	samples := make([]orb.Point, 0, len(p.Samples))
	for k, pair := range p.Samples {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: inline sample %d has %d values", ErrMalformedSample, k, len(pair))
		}
		samples = append(samples, orb.Point{pair[0], pair[1]})
	}

	file := p.SampleFile
	if file == "" && len(samples) == 0 && scenario.SampleDir != "" {
		file = path.Join(scenario.SampleDir, strconv.Itoa(index)+".txt")
	}
	if file == "" {
		return samples, nil
	}

	full := path.Join(base, filepath.ToSlash(file))
	if !fs.ValidPath(full) {
		return nil, fmt.Errorf("sample file %q escapes the scenarios directory", file)
	}

	f, err := s.fsys.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}
	defer f.Close()

	fromFile, err := ParseSamples(f)
	if err != nil {
		return nil, fmt.Errorf("sample file %s: %w", file, err)
	}

	return append(samples, fromFile...), nil
}

// ParseSamples reads one "x y" pair per line. Blank lines are skipped.
func ParseSamples(r io.Reader) ([]orb.Point, error) {
	var samples []orb.Point

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedSample, line, text)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedSample, line, text)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedSample, line, text)
		}
		samples = append(samples, orb.Point{x, y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan samples: %w", err)
	}

	return samples, nil
}
