package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider down")

func fail(_ context.Context) (string, error) { return "", errProvider }
func ok(_ context.Context) (string, error)   { return "copy", nil }

func TestCall_ClosedPassesThrough(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{})

	got, err := Call(context.Background(), cb, ok)
	require.NoError(t, err)
	assert.Equal(t, "copy", got)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCall_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := Call(context.Background(), cb, fail)
		assert.ErrorIs(t, err, errProvider)
	}
	assert.Equal(t, CircuitOpen, cb.State())

	_, err := Call(context.Background(), cb, func(context.Context) (string, error) {
		t.Error("should not be called when circuit is open")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCall_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailureThreshold: 3})

	_, _ = Call(context.Background(), cb, fail)
	_, _ = Call(context.Background(), cb, fail)
	_, _ = Call(context.Background(), cb, ok)
	_, _ = Call(context.Background(), cb, fail)
	_, _ = Call(context.Background(), cb, fail)

	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCall_HalfOpenProbe(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(BreakerConfig{FailureThreshold: 1, ResetTimeout: 10 * time.Second})
	cb.nowFunc = func() time.Time { return now }

	_, _ = Call(context.Background(), cb, fail)
	require.Equal(t, CircuitOpen, cb.State())

	now = now.Add(11 * time.Second)
	assert.Equal(t, CircuitHalfOpen, cb.State())

	// A failed probe reopens the circuit.
	_, err := Call(context.Background(), cb, fail)
	assert.ErrorIs(t, err, errProvider)
	_, err = Call(context.Background(), cb, ok)
	assert.ErrorIs(t, err, ErrCircuitOpen)

	// A successful probe closes it.
	now = now.Add(11 * time.Second)
	got, err := Call(context.Background(), cb, ok)
	require.NoError(t, err)
	assert.Equal(t, "copy", got)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCall_CancellationDoesNotTrip(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailureThreshold: 1})

	_, err := Call(context.Background(), cb, func(context.Context) (string, error) {
		return "", context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestReset(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(BreakerConfig{
		FailureThreshold: 1,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_, _ = Call(context.Background(), cb, fail)
	cb.Reset()

	assert.Equal(t, CircuitClosed, cb.State())
	assert.Equal(t, []string{"closed->open", "open->closed"}, transitions)
}

func TestNewBreakerConfig(t *testing.T) {
	def := NewBreakerConfig(0, -1)
	assert.Equal(t, 3, def.FailureThreshold)
	assert.Equal(t, 30*time.Second, def.ResetTimeout)

	cfg := NewBreakerConfig(5, 60)
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, time.Minute, cfg.ResetTimeout)
}

func TestProviderBreakers(t *testing.T) {
	pb := NewProviderBreakers(BreakerConfig{FailureThreshold: 1, ResetTimeout: time.Minute})

	gemini := pb.Get("gemini")
	assert.Same(t, gemini, pb.Get("gemini"))
	assert.NotSame(t, gemini, pb.Get("anthropic"))

	_, _ = Call(context.Background(), gemini, fail)

	states := pb.States()
	assert.Equal(t, CircuitOpen, states["gemini"])
	assert.Equal(t, CircuitClosed, states["anthropic"])
}

func TestProviderBreakers_Concurrent(t *testing.T) {
	pb := NewProviderBreakers(BreakerConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Call(context.Background(), pb.Get("gemini"), ok)
		}()
	}
	wg.Wait()

	assert.Len(t, pb.States(), 1)
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}
