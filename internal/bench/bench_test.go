package bench

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xforget/pkg/observability/xlog"
	"github.com/omeyang/xforget/pkg/storage/xforget"
)

func smallWorkload() Workload {
	return Workload{
		Capacity: 5,
		Workers:  4,
		Ops:      5000,
		Keys:     1000,
		HotKeys:  []string{"-1", "-100"},
		HotFinds: 20,
		Seed:     42,
	}
}

func TestPolicies(t *testing.T) {
	got, err := Policies("ALL")
	require.NoError(t, err)
	assert.Equal(t, []string{PolicyForget, PolicyLRU, PolicyTinyLFU}, got)

	got, err = Policies(" lru ")
	require.NoError(t, err)
	assert.Equal(t, []string{PolicyLRU}, got)

	_, err = Policies("random")
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestNewTarget(t *testing.T) {
	for _, policy := range []string{PolicyForget, PolicyLRU, PolicyTinyLFU} {
		t.Run(policy, func(t *testing.T) {
			target, err := NewTarget(policy, 4)
			require.NoError(t, err)
			t.Cleanup(target.Close)

			assert.Equal(t, policy, target.Name())
			target.Add("a", 1)
			assert.LessOrEqual(t, target.Size(), 4)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := NewTarget("mru", 4)
		require.ErrorIs(t, err, ErrUnknownPolicy)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		_, err := NewTarget(PolicyForget, 0)
		require.ErrorIs(t, err, xforget.ErrInvalidCapacity)
		_, err = NewTarget(PolicyTinyLFU, 0)
		require.ErrorIs(t, err, xforget.ErrInvalidCapacity)
		_, err = NewTarget(PolicyLRU, 0)
		require.Error(t, err)
	})
}

func TestWorkload_Validate(t *testing.T) {
	require.NoError(t, smallWorkload().Validate())

	err := Workload{HotFinds: -1}.Validate()
	require.ErrorIs(t, err, ErrInvalidWorkload)
	for _, field := range []string{"capacity", "workers", "ops", "keys", "hot finds"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestRun_ForgetKeepsHotKeys(t *testing.T) {
	var evictions atomic.Int64
	target, err := NewTarget(PolicyForget, 5, xforget.WithOnEvicted(func(string, int) { evictions.Add(1) }))
	require.NoError(t, err)
	t.Cleanup(target.Close)

	w := smallWorkload()
	report, err := Run(context.Background(), target, w, nil)
	require.NoError(t, err)

	assert.Equal(t, PolicyForget, report.Policy)
	assert.Equal(t, int64(2*w.Workers*w.Ops), report.Ops)
	assert.Equal(t, int64(w.Workers*w.Ops), report.Hits+report.Misses)
	assert.Zero(t, report.HotReaderMisses)
	assert.Equal(t, w.HotKeys, report.HotSurvivors)
	assert.Equal(t, w.Capacity, report.FinalSize)
	assert.Positive(t, report.Elapsed)
	assert.Positive(t, report.NsPerOp())
	assert.Positive(t, report.Hits)
	assert.Positive(t, evictions.Load())
}

func TestRun_AllPolicies(t *testing.T) {
	policies, err := Policies(PolicyAll)
	require.NoError(t, err)

	for _, policy := range policies {
		t.Run(policy, func(t *testing.T) {
			target, err := NewTarget(policy, 16)
			require.NoError(t, err)
			t.Cleanup(target.Close)

			w := smallWorkload()
			w.Capacity = 16
			report, err := Run(context.Background(), target, w, nil)
			require.NoError(t, err)
			assert.Equal(t, policy, report.Policy)
			assert.LessOrEqual(t, report.FinalSize, w.Capacity)
		})
	}
}

func TestRun_InvalidWorkload(t *testing.T) {
	target, err := NewTarget(PolicyLRU, 2)
	require.NoError(t, err)

	_, err = Run(context.Background(), target, Workload{}, nil)
	require.ErrorIs(t, err, ErrInvalidWorkload)
}

func TestRun_Canceled(t *testing.T) {
	target, err := NewTarget(PolicyForget, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := smallWorkload()
	w.Capacity = 2
	_, err = Run(ctx, target, w, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_ZeroValues(t *testing.T) {
	var r Report
	assert.Zero(t, r.HitRatio())
	assert.Zero(t, r.NsPerOp())
}

func TestRun_NilLoggerUsesDefault(t *testing.T) {
	t.Cleanup(xlog.ResetDefault)

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	xlog.SetDefault(logger)

	target, err := NewTarget(PolicyLRU, 5)
	require.NoError(t, err)
	t.Cleanup(target.Close)

	w := smallWorkload()
	w.Ops = 100
	_, err = Run(context.Background(), target, w, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bench finished")
	assert.Contains(t, buf.String(), "policy=lru")
}

func TestTinyLFUTarget_ContainsKeepsSize(t *testing.T) {
	target, err := NewTarget(PolicyTinyLFU, 8)
	require.NoError(t, err)
	t.Cleanup(target.Close)

	for _, k := range []string{"a", "b", "c"} {
		target.Add(k, 1)
	}
	before := target.Size()
	require.Positive(t, before)

	for range 10 {
		target.Contains("a")
		target.Contains("missing")
	}
	assert.Equal(t, before, target.Size())
}
