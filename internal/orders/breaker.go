package orders

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BreakerState is the state of a CircuitBreaker.
type BreakerState int

const (
	// BreakerClosed lets calls through.
	BreakerClosed BreakerState = iota

	// BreakerOpen rejects calls until the reset timeout elapses.
	BreakerOpen

	// BreakerHalfOpen lets a limited number of trial calls through.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a CircuitBreaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int

	// ResetTimeout is how long the circuit stays open before a trial call.
	ResetTimeout time.Duration

	// HalfOpenMaxCalls is the number of successful trial calls that close the circuit.
	HalfOpenMaxCalls int
}

// DefaultBreakerConfig returns the default breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     30 * time.Second,
		HalfOpenMaxCalls: 3,
	}
}

// CircuitBreaker turns a run of store failures into fast rejections.
type CircuitBreaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int // Counted only while half-open
	inFlight    int // Trial calls admitted while half-open
	lastFailure time.Time
	config      BreakerConfig
	metrics     *MetricsRecorder
	logger      zerolog.Logger
	name        string
	now         func() time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(name string, config BreakerConfig, metrics *MetricsRecorder, logger zerolog.Logger) *CircuitBreaker {
	if config.MaxFailures < 1 {
		config.MaxFailures = 1
	}
	if config.HalfOpenMaxCalls < 1 {
		config.HalfOpenMaxCalls = 1
	}
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	cb := &CircuitBreaker{
		state:   BreakerClosed,
		config:  config,
		metrics: metrics,
		logger:  logger,
		name:    name,
		now:     time.Now,
	}
	cb.metrics.RecordBreakerState(name, BreakerClosed)
	return cb
}

// Allow reports whether a call may proceed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		return true

	case BreakerOpen:
		if cb.now().Sub(cb.lastFailure) < cb.config.ResetTimeout {
			return false
		}
		cb.transitionTo(BreakerHalfOpen)
		cb.logger.Info().
			Str("circuit_breaker", cb.name).
			Msg("Circuit breaker transitioning to half-open")
		cb.inFlight = 1
		return true

	case BreakerHalfOpen:
		if cb.inFlight >= cb.config.HalfOpenMaxCalls {
			return false
		}
		cb.inFlight++
		return true
	}
	return false
}

// RecordSuccess records a successful call.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		cb.failures = 0

	case BreakerHalfOpen:
		cb.successes++
		if successes := cb.successes; successes >= cb.config.HalfOpenMaxCalls {
			cb.transitionTo(BreakerClosed)
			cb.logger.Info().
				Str("circuit_breaker", cb.name).
				Int("success_count", successes).
				Msg("Circuit breaker closing after successful recovery")
		}
	}
}

// RecordFailure records a failed call.
func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	cb.logger.Error().
		Err(err).
		Str("circuit_breaker", cb.name).
		Int("failure_count", cb.failures).
		Msg("Circuit breaker recording failure")

	switch cb.state {
	case BreakerClosed:
		if cb.failures >= cb.config.MaxFailures {
			cb.transitionTo(BreakerOpen)
			cb.logger.Warn().
				Str("circuit_breaker", cb.name).
				Int("failure_count", cb.failures).
				Dur("reset_timeout", cb.config.ResetTimeout).
				Msg("Circuit breaker opening after max failures")
		}

	case BreakerHalfOpen:
		cb.transitionTo(BreakerOpen)
		cb.logger.Warn().
			Str("circuit_breaker", cb.name).
			Msg("Circuit breaker re-opening after failure in half-open state")
	}
}

// transitionTo must be called with mu held.
func (cb *CircuitBreaker) transitionTo(state BreakerState) {
	cb.state = state
	cb.successes = 0
	cb.inFlight = 0
	if state == BreakerClosed {
		cb.failures = 0
	}
	cb.metrics.RecordBreakerState(cb.name, state)
}

// State returns the current state.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset forces the breaker closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.transitionTo(BreakerClosed)
	cb.logger.Info().
		Str("circuit_breaker", cb.name).
		Msg("Circuit breaker manually reset to closed state")
}
