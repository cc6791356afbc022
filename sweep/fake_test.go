package sweep

import (
	"context"

	"github.com/pkg/errors"

	"github.com/faresweep/faresweep/offer"
)

// fakeAgent records positioning calls and can fail or hang selected
// navigations.
type fakeAgent struct {
	navigated     []string
	instructed    []string
	goals         []string
	failNavigate  map[string]error
	blockNavigate map[string]bool
}

func (f *fakeAgent) Navigate(ctx context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	if err, ok := f.failNavigate[url]; ok {
		return err
	}
	if f.blockNavigate[url] {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeAgent) Instruct(_ context.Context, instruction string) error {
	f.instructed = append(f.instructed, instruction)
	return nil
}

func (f *fakeAgent) RunTask(_ context.Context, goal string) error {
	f.goals = append(f.goals, goal)
	return nil
}

// fakeExtractor replays one raw batch per call.
type fakeExtractor struct {
	batches [][]offer.RawOffer
	errs    []error
	limits  []int
	onCall  func(call int)
	call    int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, limit int) ([]offer.RawOffer, error) {
	call := f.call
	f.call++
	f.limits = append(f.limits, limit)
	if f.onCall != nil {
		f.onCall(call)
	}
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call >= len(f.batches) {
		return nil, errors.New("fakeExtractor: no batch left")
	}
	return f.batches[call], nil
}

func rawAt(airline, price, duration string, stops int, layovers ...string) offer.RawOffer {
	return offer.RawOffer{
		Airline:       airline,
		Price:         price,
		TotalDuration: duration,
		Stops:         stops,
		Layovers:      layovers,
	}
}
