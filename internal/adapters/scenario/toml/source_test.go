package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSourceLoadsTwoScenarios(t *testing.T) {
	t.Parallel()

	scenarios, err := NewDefaultSource().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "lab", scenarios[0].Name)
	assert.Equal(t, "hall", scenarios[1].Name)
	for _, scenario := range scenarios {
		for _, position := range scenario.Positions {
			assert.NotEmpty(t, position.Samples, "%s position %d", scenario.Name, position.Index)
		}
	}

	_, err = domain.NewScenarioModel(scenarios, domain.DefaultWalkDist)
	require.NoError(t, err)
}

func TestSourceLoadsSampleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "office"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "office", "0.txt"), []byte("0.1 0.2\n\n-0.1 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("2.5 0.5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenarios.toml"), []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[scenarios]]",
		"name = \"office\"",
		"sample_dir = \"office\"",
		"",
		"[[scenarios.positions]]",
		"x = 0.0",
		"y = 0.0",
		"",
		"[[scenarios.positions]]",
		"x = 2.0",
		"y = 0.0",
		"samples = [[2.1, 0.0]]",
		"sample_file = \"extra.txt\"",
	}, "\n")), 0o644))

	source, err := NewSource(filepath.Join(dir, "scenarios.toml"))
	require.NoError(t, err)

	scenarios, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	assert.Equal(t, []domain.Position{
		{Scenario: 0, Index: 0, Actual: orb.Point{0, 0}, Samples: []orb.Point{{0.1, 0.2}, {-0.1, 0}}},
		{Scenario: 0, Index: 1, Actual: orb.Point{2, 0}, Samples: []orb.Point{{2.1, 0}, {2.5, 0.5}}},
	}, scenarios[0].Positions)
}

func TestSourceDefaultsScenarioName(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"s.toml": {Data: []byte("[[scenarios]]\n[[scenarios.positions]]\nx = 1.0\ny = 2.0\nsamples = [[1.0, 2.0]]\n")},
	}

	scenarios, err := NewFSSource(fsys, "s.toml").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "scenario-0", scenarios[0].Name)
}

func TestSourceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing file",
			files:   fstest.MapFS{},
			wantMsg: "read scenarios file",
		},
		{
			name:    "invalid toml",
			files:   fstest.MapFS{"s.toml": {Data: []byte("scenarios = [")}},
			wantMsg: "decode scenarios file",
		},
		{
			name:    "future schema",
			files:   fstest.MapFS{"s.toml": {Data: []byte("version = 2\n")}},
			wantMsg: "unsupported scenarios schema version 2",
		},
		{
			name: "malformed sample line",
			files: fstest.MapFS{
				"s.toml":  {Data: []byte("[[scenarios]]\n[[scenarios.positions]]\nsample_file = \"bad.txt\"\n")},
				"bad.txt": {Data: []byte("1.0 2.0\n1.0 two\n")},
			},
			wantErr: ErrMalformedSample,
		},
		{
			name:    "inline sample arity",
			files:   fstest.MapFS{"s.toml": {Data: []byte("[[scenarios]]\n[[scenarios.positions]]\nsamples = [[1.0]]\n")}},
			wantErr: ErrMalformedSample,
		},
		{
			name:    "sample file outside directory",
			files:   fstest.MapFS{"s.toml": {Data: []byte("[[scenarios]]\n[[scenarios.positions]]\nsample_file = \"../x.txt\"\n")}},
			wantMsg: "escapes the scenarios directory",
		},
		{
			name:    "missing sample file",
			files:   fstest.MapFS{"s.toml": {Data: []byte("[[scenarios]]\n[[scenarios.positions]]\nsample_file = \"gone.txt\"\n")}},
			wantMsg: "open sample file",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFSSource(tc.files, "s.toml").Load(context.Background())
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

func TestParseSamples(t *testing.T) {
	t.Parallel()

	got, err := ParseSamples(strings.NewReader("  1 2  \n3.5\t-4\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []orb.Point{{1, 2}, {3.5, -4}}, got)

	_, err = ParseSamples(strings.NewReader("1 2 3\n"))
	require.ErrorIs(t, err, ErrMalformedSample)
	assert.ErrorContains(t, err, "line 1")
}

func TestSourceLoadHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSource().Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
