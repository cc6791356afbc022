package sweep

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/thoas/go-funk"

	"github.com/faresweep/faresweep/offer"
	utilsjson "github.com/faresweep/faresweep/utils/json"
)

// Event is the one structured record a run forwards to observability.
type Event struct {
	Category string
	Message  string
	Payload  interface{}
}

// Sink consumes run events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// LogSink writes events through the standard logger.
type LogSink struct{}

var _ Sink = LogSink{}

func (LogSink) Emit(_ context.Context, event Event) {
	payload, err := utilsjson.Marshal(event.Payload)
	if err != nil {
		log.Printf("[%s] %s (payload unserializable: %v)", event.Category, event.Message, err)
		return
	}
	log.Printf("[%s] %s %s", event.Category, event.Message, payload)
}

const _reportTitle = "Flight offers, cheapest first"

// Present ranks the accumulated offers, renders the titled report block,
// and emits the run summary event. The ranked sequence comes back so the
// caller stays free to present it differently.
func Present(ctx context.Context, sink Sink, result *Result) ([]offer.Offer, string) {
	ranked := offer.Rank(result.Offers)

	tags := funk.UniqString(funk.Map(ranked, func(o offer.Offer) string {
		return o.Tag
	}).([]string))
	message := fmt.Sprintf("%d offers across %d of %d query units (%d skipped)",
		len(ranked), len(tags), result.UnitsTotal, result.UnitsSkipped)

	if sink != nil {
		sink.Emit(ctx, Event{Category: "sweep", Message: message, Payload: ranked})
	}
	return ranked, renderReport(message, ranked)
}

func renderReport(summary string, ranked []offer.Offer) string {
	payload, err := utilsjson.MarshalPretty(ranked)
	if err != nil {
		payload = []byte("[]")
	}
	var b strings.Builder
	b.WriteString(_reportTitle + "\n")
	b.WriteString(summary + "\n")
	b.Write(payload)
	return b.String()
}
