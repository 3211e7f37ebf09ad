package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/pollpulse/internal/adapter/metrics"
)

func runCommand(hook *CircuitBreakerHook, result error) error {
	ctx := context.Background()
	process := hook.ProcessHook(func(context.Context, goredis.Cmder) error {
		return result
	})
	return process(ctx, goredis.NewStringCmd(ctx, "get", "key"))
}

func TestCircuitBreakerHook_NormalOperation(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)
	assert.Equal(t, gobreaker.StateClosed, hook.GetState())

	for range 10 {
		assert.NoError(t, runCommand(hook, nil))
	}

	assert.Equal(t, gobreaker.StateClosed, hook.GetState())
	counts := hook.GetCounts()
	assert.Equal(t, uint32(10), counts.Requests)
	assert.Equal(t, uint32(10), counts.TotalSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)
}

func TestCircuitBreakerHook_NilIsSuccess(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)

	for range 10 {
		err := runCommand(hook, goredis.Nil)
		assert.ErrorIs(t, err, goredis.Nil)
	}

	assert.Equal(t, gobreaker.StateClosed, hook.GetState())
	assert.Equal(t, uint32(0), hook.GetCounts().TotalFailures)
}

func TestCircuitBreakerHook_TransientFailures(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)
	boom := errors.New("connection refused")

	for range 2 {
		err := runCommand(hook, boom)
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateClosed, hook.GetState())
}

func TestCircuitBreakerHook_OpensAndFailsFast(t *testing.T) {
	m := metrics.NewStorageMetrics(prometheus.NewRegistry())
	hook := NewCircuitBreakerHook(m)

	for range breakerMinRequests {
		assert.Error(t, runCommand(hook, errors.New("connection timeout")))
	}
	require.Equal(t, gobreaker.StateOpen, hook.GetState())

	called := false
	ctx := context.Background()
	process := hook.ProcessHook(func(context.Context, goredis.Cmder) error {
		called = true
		return nil
	})
	err := process(ctx, goredis.NewStringCmd(ctx, "get", "key"))

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
	assert.InDelta(t, 2, testutil.ToFloat64(m.BreakerState.WithLabelValues("redis")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BreakerStateChanges.WithLabelValues("redis", "open")), 0)
}

func TestCircuitBreakerHook_RecoversAfterTimeout(t *testing.T) {
	hook := newCircuitBreakerHook(nil, 20*time.Millisecond)

	for range breakerMinRequests {
		assert.Error(t, runCommand(hook, errors.New("down")))
	}
	require.Equal(t, gobreaker.StateOpen, hook.GetState())

	require.Eventually(t, func() bool {
		return hook.GetState() == gobreaker.StateHalfOpen
	}, time.Second, 5*time.Millisecond)

	assert.NoError(t, runCommand(hook, nil))
	assert.Equal(t, gobreaker.StateClosed, hook.GetState())
}

func TestCircuitBreakerHook_Pipeline(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)
	boom := errors.New("pipeline failed")

	pipeline := hook.ProcessPipelineHook(func(context.Context, []goredis.Cmder) error {
		return boom
	})
	err := pipeline(context.Background(), nil)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint32(1), hook.GetCounts().TotalFailures)
}

func TestStateToFloat(t *testing.T) {
	assert.InDelta(t, 0, stateToFloat(gobreaker.StateClosed), 0)
	assert.InDelta(t, 1, stateToFloat(gobreaker.StateHalfOpen), 0)
	assert.InDelta(t, 2, stateToFloat(gobreaker.StateOpen), 0)
}
