package browse

import (
	"context"

	"github.com/pkg/errors"

	"github.com/faresweep/faresweep/llm"
)

// fakeLLM replays canned responses and records the prompts and generate
// options it saw.
type fakeLLM struct {
	responses []string
	prompts   []string
	options   []llm.GenerateOptions
	errs      []error
}

var _ llm.LLM = (*fakeLLM)(nil)

func (f *fakeLLM) GenerateContent(_ context.Context, messages []llm.Message, opts ...llm.GenerateOption) (*llm.Generation, error) {
	if len(messages) > 0 {
		f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	}
	applied := llm.DefaultGenerateOptions()
	for _, opt := range opts {
		opt(applied)
	}
	f.options = append(f.options, *applied)
	call := len(f.prompts) - 1
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call >= len(f.responses) {
		return nil, errors.New("fakeLLM: no response left")
	}
	return &llm.Generation{Content: f.responses[call]}, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (*llm.Generation, error) {
	return f.GenerateContent(ctx, []llm.Message{llm.NewUserMessage(prompt)}, opts...)
}
