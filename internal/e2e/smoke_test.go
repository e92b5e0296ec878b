package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeScenarioFixture(home))

	stdout, stderr, err := runCtxsim(t, binaryPath, home, "scenario", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "[0] corridor")

	stdout, stderr, err = runCtxsim(t, binaryPath, home, "eval", "10")
	require.NoError(t, err, "stderr: %s", stderr)
	var result map[string]int
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Contains(t, result, "moved")
	assert.Contains(t, result, "reliable")
	assert.Contains(t, result, "counter")

	_, stderr, err = runCtxsim(t, binaryPath, home, "run", "--seed", "10", "--save")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runCtxsim(t, binaryPath, home, "results", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "scenario 0 seed 10:")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ctxsim-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ctxsim")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ctxsim binary: %s", string(output))
	return binaryPath
}

func runCtxsim(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeScenarioFixture(home string) error {
	configDir := filepath.Join(home, ".ctxsim")
	sampleDir := filepath.Join(configDir, "corridor")
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return err
	}

	samples := []string{
		"0.1 0.0\n-0.2 0.1\n0.0 -0.1\n",
		"2.1 0.1\n1.9 -0.1\n2.3 0.0\n",
		"4.0 0.2\n3.8 0.0\n4.1 -0.2\n",
	}
	for i, data := range samples {
		if err := os.WriteFile(filepath.Join(sampleDir, string(rune('0'+i))+".txt"), []byte(data), 0o644); err != nil {
			return err
		}
	}

	scenarios := `version = 1

[[scenarios]]
name = "corridor"
sample_dir = "corridor"

[[scenarios.positions]]
x = 0.0
y = 0.0

[[scenarios.positions]]
x = 2.0
y = 0.0

[[scenarios.positions]]
x = 4.0
y = 0.0
`
	if err := os.WriteFile(filepath.Join(configDir, "scenarios.toml"), []byte(scenarios), 0o644); err != nil {
		return err
	}

	config := "[scenarios]\npath = \"" + filepath.ToSlash(filepath.Join(configDir, "scenarios.toml")) + "\"\ndefault = 0\n"
	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
