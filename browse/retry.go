package browse

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/faresweep/faresweep/llm"
)

const (
	_maxRetries = 3
	_baseDelay  = 1 * time.Second
)

// generateWithRetry calls the model with exponential backoff. Provider
// hiccups are common enough on long sweeps that one flaky call should not
// cost a whole query unit.
func generateWithRetry(ctx context.Context, model llm.LLM,
	messages []llm.Message, opts ...llm.GenerateOption) (*llm.Generation, error) {
	var generation *llm.Generation
	var err error
	for i := 0; i < _maxRetries; i++ {
		generation, err = model.GenerateContent(ctx, messages, opts...)
		if err == nil {
			return generation, nil
		}
		if i == _maxRetries-1 {
			break
		}
		delay := _baseDelay * time.Duration(math.Pow(2, float64(i)))
		log.Printf("model call failed (attempt %d/%d): %v, retrying in %v", i+1, _maxRetries, err, delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, err
}
