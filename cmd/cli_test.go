package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrikhermansson/vdist/core"
	"github.com/patrikhermansson/vdist/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{core.SeedEnv, core.LogEnv, config.MetricEnv, config.OrderEnv, config.WorkersEnv} {
		t.Setenv(key, "")
	}
}

// run executes the command tree with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDistanceCommand(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"distance", "-m", "manhattan", "1,2,3", "4,6,3"}, "7\n"},
		{[]string{"distance", "-m", "euclidean", "1,2,3", "4,6,3"}, "5\n"},
		{[]string{"distance", "-m", "tchebyshev", "1,2,3", "4,6,3"}, "4\n"},
		{[]string{"distance", "-m", "minkowski", "-p", "1", "1,2,3", "4,6,3"}, "7\n"},
		{[]string{"distance", "-m", "khi2", "1,1", "1,1"}, "0\n"},
		{[]string{"distance", "1,2,3", "4,6,3"}, "5\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestDistanceCommandErrors(t *testing.T) {
	clearEnv(t)

	_, err := run(t, "distance", "-m", "minkowski", "-p", "0", "1,2", "3,4")
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = run(t, "distance", "-m", "euclidean", "1,2", "3,4,5")
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = run(t, "distance", "-m", "cosine", "1,2", "3,4")
	assert.ErrorIs(t, err, core.ErrUnknownMetric)

	_, err = run(t, "distance", "1,x", "3,4")
	assert.Error(t, err)
}

func TestDistanceCommandUsesEnvironmentMetric(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.MetricEnv, "manhattan")

	out, err := run(t, "distance", "1,2,3", "4,6,3")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestCompareCommand(t *testing.T) {
	clearEnv(t)
	out, err := run(t, "compare", "1,2,3", "4,6,3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(core.Names()))
	assert.Contains(t, lines, "euclidean\t5")
	assert.Contains(t, lines, "manhattan\t7")
	assert.Contains(t, lines, "tchebyshev\t4")
	assert.Contains(t, lines, "khi2\t0.61")
	assert.Contains(t, lines, "minkowski\t5.58425")
}

func TestRandomCommand(t *testing.T) {
	clearEnv(t)
	t.Setenv(core.SeedEnv, "99")

	first, err := run(t, "random", "-n", "4", "-d", "3", "--dist", "normal")
	require.NoError(t, err)
	second, err := run(t, "random", "-n", "4", "-d", "3", "--dist", "normal")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must give the same vectors")

	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, ","), 3)
	}

	_, err = run(t, "random", "--dist", "poisson")
	assert.ErrorIs(t, err, core.ErrInvalidDistribution)
}

func TestRandomCommandToFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "random.csv")

	out, err := run(t, "random", "-n", "2", "-d", "5", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)
}

func TestMatrixCommand(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "a,b\n0,0\n3,4\n")

	out, err := run(t, "matrix", "-m", "euclidean", "--header", "-w", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "0,5\n5,0\n", out)
}

func TestNearestCommand(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "5,5\n1,1\n0,0\n")

	out, err := run(t, "nearest", "-m", "manhattan", "-k", "2", path, "0,0")
	require.NoError(t, err)
	assert.Equal(t, "2\t0\n1\t2\n", out)
}

func TestCheckCommand(t *testing.T) {
	clearEnv(t)
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "environment OK")

	t.Setenv(core.SeedEnv, "seed")
	out, err = run(t, "check")
	assert.ErrorIs(t, err, core.ErrEnvironment)
	assert.Contains(t, out, `VDIST_SEED: "seed"`)
	assert.NotContains(t, out, "environment OK")
}

func TestInvalidEnvironmentStopsCommands(t *testing.T) {
	clearEnv(t)
	t.Setenv(core.LogEnv, "loud")

	_, err := run(t, "distance", "1", "2")
	assert.ErrorIs(t, err, core.ErrEnvironment)
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "vdist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metric: minkowski\np: 2\n"), 0o644))

	out, err := run(t, "--config", path, "distance", "0,0", "3,4")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestConfigFileLogLevel(t *testing.T) {
	clearEnv(t)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	path := filepath.Join(t.TempDir(), "vdist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: off\n"), 0o644))

	_, err := run(t, "--config", path, "distance", "0,0", "3,4")
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())

	_, err = run(t, "--config", path, "--debug", "distance", "0,0", "3,4")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel(), "--debug wins over the config file")

	t.Setenv(core.LogEnv, "full")
	_, err = run(t, "--config", path, "distance", "0,0", "3,4")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel(), "VDIST_LOG wins over the config file")
}

func TestMatrixCommandCancelled(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "0,0\n3,4\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "matrix", path})
	err := root.ExecuteContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRootCommandKeepsCobraDefaults(t *testing.T) {
	before := cobra.EnableCommandSorting
	NewRootCommand()
	assert.Equal(t, before, cobra.EnableCommandSorting)
}
