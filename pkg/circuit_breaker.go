// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"fmt"
	"sync"

	"github.com/docstackhq/docstack/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/sony/gobreaker"
)

// CircuitBreakerManager manages circuit breakers for upstream services
type CircuitBreakerManager struct {
	breakers map[string]*gobreaker.CircuitBreaker
	mu       sync.RWMutex
	logger   log.Logger
}

// NewCircuitBreakerManager creates a new circuit breaker manager
func NewCircuitBreakerManager(logger log.Logger) *CircuitBreakerManager {
	return &CircuitBreakerManager{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		logger:   logger,
	}
}

func (cbm *CircuitBreakerManager) newSettings(upstreamName string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        fmt.Sprintf("upstream-%s", upstreamName),
		MaxRequests: constant.CircuitBreakerMaxRequests,
		Interval:    constant.CircuitBreakerInterval,
		Timeout:     constant.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures >= constant.CircuitBreakerThreshold ||
				(counts.Requests >= 10 && failureRatio >= 0.5)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			cbm.logger.Warnf("Circuit Breaker [%s] state changed: %s -> %s", name, from.String(), to.String())

			switch to {
			case gobreaker.StateOpen:
				cbm.logger.Errorf("Circuit Breaker [%s] OPENED - upstream is unhealthy, requests will fast-fail", name)
			case gobreaker.StateHalfOpen:
				cbm.logger.Infof("Circuit Breaker [%s] HALF-OPEN - testing upstream recovery", name)
			case gobreaker.StateClosed:
				cbm.logger.Infof("Circuit Breaker [%s] CLOSED - upstream is healthy", name)
			}
		},
	}
}

// GetOrCreate returns existing circuit breaker or creates a new one
func (cbm *CircuitBreakerManager) GetOrCreate(upstreamName string) *gobreaker.CircuitBreaker {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[upstreamName]
	cbm.mu.RUnlock()

	if exists {
		return breaker
	}

	cbm.mu.Lock()
	defer cbm.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists = cbm.breakers[upstreamName]; exists {
		return breaker
	}

	breaker = gobreaker.NewCircuitBreaker(cbm.newSettings(upstreamName))
	cbm.breakers[upstreamName] = breaker

	cbm.logger.Infof("Created circuit breaker for upstream: %s", upstreamName)

	return breaker
}

// Execute runs a function through the circuit breaker
func (cbm *CircuitBreakerManager) Execute(upstreamName string, fn func() (any, error)) (any, error) {
	breaker := cbm.GetOrCreate(upstreamName)

	result, err := breaker.Execute(fn)
	if err != nil {
		if err == gobreaker.ErrOpenState {
			cbm.logger.Warnf("Circuit breaker [%s] is OPEN - request rejected immediately", upstreamName)
			return nil, fmt.Errorf("upstream %s is currently unavailable (circuit breaker open): %w", upstreamName, err)
		}

		if err == gobreaker.ErrTooManyRequests {
			cbm.logger.Warnf("Circuit breaker [%s] is HALF-OPEN - too many test requests", upstreamName)
			return nil, fmt.Errorf("upstream %s is recovering (too many requests): %w", upstreamName, err)
		}
	}

	return result, err
}

// GetState returns the current state of a circuit breaker
func (cbm *CircuitBreakerManager) GetState(upstreamName string) string {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[upstreamName]
	cbm.mu.RUnlock()

	if !exists {
		return "not_initialized"
	}

	switch breaker.State() {
	case gobreaker.StateClosed:
		return constant.CircuitBreakerStateClosed
	case gobreaker.StateOpen:
		return constant.CircuitBreakerStateOpen
	case gobreaker.StateHalfOpen:
		return constant.CircuitBreakerStateHalfOpen
	default:
		return "unknown"
	}
}

// GetCounts returns the current counts for a circuit breaker
func (cbm *CircuitBreakerManager) GetCounts(upstreamName string) gobreaker.Counts {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[upstreamName]
	cbm.mu.RUnlock()

	if !exists {
		return gobreaker.Counts{}
	}

	return breaker.Counts()
}

// Reset resets a circuit breaker to closed state by creating a new instance
func (cbm *CircuitBreakerManager) Reset(upstreamName string) {
	cbm.mu.Lock()
	defer cbm.mu.Unlock()

	if _, exists := cbm.breakers[upstreamName]; exists {
		cbm.logger.Infof("Manually resetting circuit breaker for upstream: %s", upstreamName)

		cbm.breakers[upstreamName] = gobreaker.NewCircuitBreaker(cbm.newSettings(upstreamName))
	}
}

// IsHealthy returns true if the circuit breaker is in a healthy state (closed or half-open)
// Returns false if the circuit breaker is open (upstream is unhealthy)
func (cbm *CircuitBreakerManager) IsHealthy(upstreamName string) bool {
	return cbm.GetState(upstreamName) != constant.CircuitBreakerStateOpen
}

// ShouldAllowRetry determines if a retry should be attempted based on circuit breaker state
func (cbm *CircuitBreakerManager) ShouldAllowRetry(upstreamName string) bool {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[upstreamName]
	cbm.mu.RUnlock()

	if !exists {
		return true
	}

	state := breaker.State()
	counts := breaker.Counts()

	if state == gobreaker.StateOpen {
		cbm.logger.Warnf("Circuit breaker for '%s' is OPEN - blocking retry attempt", upstreamName)
		return false
	}

	if state == gobreaker.StateHalfOpen && counts.Requests >= constant.CircuitBreakerMaxRequests {
		cbm.logger.Warnf("Circuit breaker for '%s' is HALF-OPEN and at max capacity - blocking retry attempt", upstreamName)
		return false
	}

	return true
}
