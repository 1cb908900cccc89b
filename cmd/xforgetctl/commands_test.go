package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xforget/internal/bench"
	"github.com/omeyang/xforget/pkg/config/xconf"
	"github.com/omeyang/xforget/pkg/observability/xlog"
)

// runApp 运行 CLI 并返回 stdout、stderr 和错误。
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(xlog.ResetDefault)
	var stdout, stderr bytes.Buffer
	app := createApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(context.Background(), append([]string{"xforgetctl"}, args...))
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "xforgetctl "+Version)
	assert.Contains(t, stdout, GitCommit)
}

func TestDemoCommand(t *testing.T) {
	stdout, _, err := runApp(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, stdout, "over-capacity (capacity=2)")
	assert.Contains(t, stdout, "evicted: 1\n")
	assert.Contains(t, stdout, "kept:    2 3\n")

	assert.Contains(t, stdout, "least-used (capacity=5)")
	assert.Contains(t, stdout, "evicted: k2\n")
	assert.Contains(t, stdout, "kept:    k6 k1 k3 k4 k5\n")

	assert.Contains(t, stdout, "oldest-of-least-used (capacity=5)")
	assert.Contains(t, stdout, "evicted: k1\n")
	assert.Contains(t, stdout, "kept:    k4 k2 k3 k5 k6\n")
}

func TestDemoCommand_DebugLogToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "xforgetctl.log")

	_, stderr, err := runApp(t, "--log-level", "debug", "--log-format", "json", "--log-file", logFile, "demo")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"entry evicted"`)
	assert.Contains(t, string(data), `"xforget":{"key":"1"`)

	// 每条日志只有一个 component 键
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, `"component":`), line)
		assert.Contains(t, line, `"component":"xforgetctl"`)
	}
}

func TestNewLogger_SetsDefault(t *testing.T) {
	t.Cleanup(xlog.ResetDefault)

	var buf bytes.Buffer
	logger, cleanup, err := newLogger(xconf.LogSettings{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	assert.Same(t, logger, xlog.Default())
	xlog.Warn(context.Background(), "via default")
	assert.Contains(t, buf.String(), "via default")
	assert.Contains(t, buf.String(), "component=xforgetctl")
}

func TestDemoCommand_InvalidLogLevel(t *testing.T) {
	_, _, err := runApp(t, "--log-level", "verbose", "demo")
	require.Error(t, err)

	var usageErr *usageError
	require.ErrorAs(t, err, &usageErr)
	assert.ErrorIs(t, err, xlog.ErrUnknownLevel)
	assert.Equal(t, 2, exitCode(err))
}

func TestRunScenario(t *testing.T) {
	res, err := runScenario(demoScenarios[0], xlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, res.evicted)
	assert.Equal(t, []string{"2", "3"}, res.kept)

	_, err = runScenario(demoScenario{name: "empty", capacity: 0}, xlog.Discard())
	require.Error(t, err)
}

func TestBenchCommand_AllPolicies(t *testing.T) {
	stdout, _, err := runApp(t, "bench",
		"--policy", "all",
		"--capacity", "16",
		"--workers", "2",
		"--ops", "2000",
		"--keys", "200",
		"--seed", "7",
		"--metrics",
	)
	require.NoError(t, err)

	for _, policy := range []string{bench.PolicyForget, bench.PolicyLRU, bench.PolicyTinyLFU} {
		assert.Contains(t, stdout, policy)
	}
	assert.Regexp(t, `run=[0-9a-f-]{36}\n`, stdout)
	assert.Contains(t, stdout, "capacity=16 workers=2 ops=2000 keys=200")
	assert.Contains(t, stdout, "metrics (cache="+xconf.DefaultCacheName+")")
	assert.Contains(t, stdout, "xforget.cache.lookups")
	assert.Contains(t, stdout, "xforget.cache.evictions")
}

func TestBenchCommand_ConfigFile(t *testing.T) {
	path := writeConfig(t, "xforget.yaml", `
cache:
  capacity: 8
  name: from-file
bench:
  policy: lru
  workers: 1
  ops: 500
  keys: 50
  hot_keys: ["hot"]
`)

	stdout, _, err := runApp(t, "-c", path, "bench", "--ops", "300")
	require.NoError(t, err)
	assert.Contains(t, stdout, "capacity=8 workers=1 ops=300 keys=50 hot_keys=hot")
	assert.Contains(t, stdout, bench.PolicyLRU)
	assert.NotContains(t, stdout, bench.PolicyTinyLFU)
}

func TestBenchCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"unknown_policy", []string{"bench", "--policy", "arc"}, bench.ErrUnknownPolicy},
		{"zero_capacity", []string{"bench", "--capacity", "0", "--ops", "10"}, xconf.ErrInvalidSettings},
		{"zero_workers", []string{"bench", "--workers", "0", "--ops", "10"}, bench.ErrInvalidWorkload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestBenchCommand_BadConfig(t *testing.T) {
	t.Run("unsupported_format", func(t *testing.T) {
		path := writeConfig(t, "xforget.toml", "cache = 1")
		_, _, err := runApp(t, "-c", path, "bench")
		require.Error(t, err)
		assert.ErrorIs(t, err, xconf.ErrUnsupportedFormat)
		assert.Equal(t, 2, exitCode(err))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, _, err := runApp(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"), "bench")
		require.Error(t, err)
		assert.Equal(t, 2, exitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", newUsageError(errors.New("bad flag")), 2},
		{"cli_usage", errors.New("flag provided but not defined: -x"), 2},
		{"canceled", context.Canceled, 1},
		{"runtime", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestNewUsageError_Nil(t *testing.T) {
	assert.NoError(t, newUsageError(nil))
}

func TestCmdBench_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := xconf.DefaultSettings()
	s.Bench.Ops = 10_000
	var out bytes.Buffer
	err := cmdBench(ctx, &out, &out, s, benchOptions{seed: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, exitCode(err))
}
