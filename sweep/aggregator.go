package sweep

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/faresweep/faresweep/browse"
	"github.com/faresweep/faresweep/offer"
	"github.com/faresweep/faresweep/utils/ratelimit"
)

// FailurePolicy decides what a positioning or extraction failure on one
// query unit does to the rest of the run.
type FailurePolicy int

const (
	// FailSkip records the unit as skipped and continues the sweep.
	FailSkip FailurePolicy = iota
	// FailAbort stops the run at the first failed unit.
	FailAbort
)

// PositioningError is a per-unit failure: the session could not be
// readied, or the extraction call itself failed.
type PositioningError struct {
	Tag string
	Err error
}

func (e *PositioningError) Error() string {
	return fmt.Sprintf("query unit %s: %v", e.Tag, e.Err)
}

func (e *PositioningError) Unwrap() error {
	return e.Err
}

// Result is the accumulated outcome of one run. Offers are in per-unit
// arrival order, in query-unit order, each tagged with its source unit;
// rank them with offer.Rank before presenting.
type Result struct {
	Offers         []offer.Offer
	UnitsTotal     int
	UnitsSucceeded int
	UnitsSkipped   int
}

// Aggregator drives the sequential collection loop over one shared
// browsing session: position, extract, normalize, admit, accumulate.
type Aggregator struct {
	agent       browse.Agent
	extractor   browse.Extractor
	constraints offer.Constraints
	instruction string
	limit       int
	unitTimeout time.Duration
	policy      FailurePolicy
	limiter     *ratelimit.TokenBucket
}

// NewAggregator wires the loop over the given capabilities.
func NewAggregator(agent browse.Agent, extractor browse.Extractor, opts ...AggregatorOption) *Aggregator {
	options := defaultAggregatorOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Aggregator{
		agent:       agent,
		extractor:   extractor,
		constraints: options.constraints,
		instruction: options.instruction,
		limit:       options.limit,
		unitTimeout: options.unitTimeout,
		policy:      options.policy,
		limiter:     options.limiter,
	}
}

// Run processes the units strictly in order. The session is a single
// stateful resource, so units are never run in parallel. Cancellation is
// honored between units: the already-accumulated result comes back intact
// alongside the context error. A failed unit is skipped or aborts the run
// per the configured policy; per-record problems never escape the loop.
func (a *Aggregator) Run(ctx context.Context, units []QueryUnit) (*Result, error) {
	result := &Result{UnitsTotal: len(units)}

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx); err != nil {
				return result, err
			}
		}

		kept, err := a.collect(ctx, unit)
		if err != nil {
			if a.policy == FailAbort {
				return result, err
			}
			log.Printf("skipping query unit %s: %v", unit.Tag, err)
			result.UnitsSkipped++
			continue
		}
		if len(kept) == 0 {
			log.Printf("query unit %s: no admissible offers", unit.Tag)
		}
		result.Offers = append(result.Offers, kept...)
		result.UnitsSucceeded++
	}
	return result, nil
}

func (a *Aggregator) collect(ctx context.Context, unit QueryUnit) ([]offer.Offer, error) {
	unitCtx := ctx
	if a.unitTimeout > 0 {
		var cancel context.CancelFunc
		unitCtx, cancel = context.WithTimeout(ctx, a.unitTimeout)
		defer cancel()
	}

	if err := unit.Positioner.Position(unitCtx, a.agent); err != nil {
		return nil, &PositioningError{Tag: unit.Tag, Err: err}
	}
	raws, err := a.extractor.Extract(unitCtx, a.instruction, a.limit)
	if err != nil {
		return nil, &PositioningError{Tag: unit.Tag, Err: err}
	}

	kept := make([]offer.Offer, 0, len(raws))
	for _, raw := range raws {
		o := offer.Normalize(raw, unit.Tag)
		if a.constraints.Admit(o) {
			kept = append(kept, o)
		}
	}
	return kept, nil
}
