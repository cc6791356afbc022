package sweep

import (
	"time"

	"github.com/faresweep/faresweep/offer"
	"github.com/faresweep/faresweep/utils/ratelimit"
)

const (
	_defaultInstruction = "Extract every flight offer visible on the page."
	_defaultLimit       = 10
	_defaultUnitTimeout = 2 * time.Minute
)

type aggregatorOptions struct {
	constraints offer.Constraints
	instruction string
	limit       int
	unitTimeout time.Duration
	policy      FailurePolicy
	limiter     *ratelimit.TokenBucket
}

type AggregatorOption func(*aggregatorOptions)

func defaultAggregatorOptions() *aggregatorOptions {
	return &aggregatorOptions{
		constraints: offer.Constraints{
			MaxStops:          2,
			MaxTotalMinutes:   24 * 60,
			MaxLayoverMinutes: 5 * 60,
		},
		instruction: _defaultInstruction,
		limit:       _defaultLimit,
		unitTimeout: _defaultUnitTimeout,
		policy:      FailSkip,
	}
}

// WithConstraints sets the admission rule set for the run.
func WithConstraints(constraints offer.Constraints) AggregatorOption {
	return func(opts *aggregatorOptions) {
		opts.constraints = constraints
	}
}

// WithInstruction overrides the extraction instruction sent per unit.
func WithInstruction(instruction string) AggregatorOption {
	return func(opts *aggregatorOptions) {
		opts.instruction = instruction
	}
}

// WithLimit caps how many raw records the extractor is asked for per
// unit. The loop works with zero, one, or the full cap coming back.
func WithLimit(limit int) AggregatorOption {
	return func(opts *aggregatorOptions) {
		opts.limit = limit
	}
}

// WithUnitTimeout bounds positioning plus extraction for one unit.
// Exceeding it fails that unit only.
func WithUnitTimeout(timeout time.Duration) AggregatorOption {
	return func(opts *aggregatorOptions) {
		opts.unitTimeout = timeout
	}
}

// WithFailurePolicy selects skip-and-continue or abort-on-failure.
func WithFailurePolicy(policy FailurePolicy) AggregatorOption {
	return func(opts *aggregatorOptions) {
		opts.policy = policy
	}
}

// WithRateLimit paces unit starts at the given requests per second.
func WithRateLimit(perSecond float64) AggregatorOption {
	return func(opts *aggregatorOptions) {
		if perSecond > 0 {
			opts.limiter = ratelimit.NewTokenBucket(perSecond, 1)
		}
	}
}
