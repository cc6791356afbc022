package browse

import (
	"context"
	"fmt"
	"log"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/faresweep/faresweep/llm"
	"github.com/faresweep/faresweep/offer"
	utilsjson "github.com/faresweep/faresweep/utils/json"
)

// Extractor reads structured offer records off the currently positioned
// view. An empty result is a normal outcome, not an error, and fewer
// records than the suggested limit may come back.
type Extractor interface {
	Extract(ctx context.Context, instruction string, limit int) ([]offer.RawOffer, error)
}

// LLMExtractor asks the model to pull offer records out of the session's
// current page text.
type LLMExtractor struct {
	session     *Session
	llm         llm.LLM
	temperature float32
}

var _ Extractor = (*LLMExtractor)(nil)

// NewExtractor builds an extractor reading from the given session.
func NewExtractor(session *Session, model llm.LLM, opts ...Option) *LLMExtractor {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &LLMExtractor{
		session:     session,
		llm:         model,
		temperature: options.temperature,
	}
}

const _extractPrompt = `Extract flight offers from the page text below.

%s
Return at most %d offers. Reply with a JSON object only, of this exact shape:
{"offers": [{"airline": "<text>", "price": "<price text as shown, e.g. $1,234>",
"total_duration": "<duration text as shown, e.g. 7h 45m>", "stops": <integer>,
"layovers": ["<layover duration text>", ...], "departure_date": "<text if shown>"}]}
The "layovers" and "departure_date" fields may be omitted when the page does
not show them. Copy price and duration text verbatim; do not convert them.
If the page shows no flight offers, reply {"offers": []}.

Page text:
%s`

type extractPayload struct {
	Offers []map[string]interface{} `json:"offers"`
}

// Extract pulls up to limit raw offer records from the current page.
func (e *LLMExtractor) Extract(ctx context.Context, instruction string, limit int) ([]offer.RawOffer, error) {
	prompt := fmt.Sprintf(_extractPrompt, instruction, limit, e.session.Snapshot())

	generation, err := generateWithRetry(ctx, e.llm,
		[]llm.Message{llm.NewUserMessage(prompt)},
		llm.WithJSONMode(), llm.WithTemperature(e.temperature))
	if err != nil {
		return nil, errors.Wrap(err, "extract offers")
	}

	payload := &extractPayload{}
	if err := utilsjson.Unmarshal([]byte(utilsjson.TrimFence(generation.Content)), payload); err != nil {
		return nil, errors.Wrap(err, "parse extracted offers")
	}

	raws := make([]offer.RawOffer, 0, len(payload.Offers))
	for _, record := range payload.Offers {
		raw := offer.RawOffer{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(record); err != nil {
			// One malformed record does not void the rest.
			log.Printf("skipping undecodable offer record: %v", err)
			continue
		}
		raws = append(raws, raw)
		if len(raws) == limit {
			break
		}
	}
	return raws, nil
}
