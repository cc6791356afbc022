package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/faresweep/faresweep/llm"
	utilsjson "github.com/faresweep/faresweep/utils/json"
)

// Agent positions the browsing session. Calls are long-latency and
// context-bounded; a descriptive error means the target was unreachable
// or the instruction could not be grounded to a page action.
type Agent interface {
	Navigate(ctx context.Context, url string) error
	Instruct(ctx context.Context, instruction string) error
	RunTask(ctx context.Context, goal string) error
}

// LLMAgent grounds natural-language instructions to link selections on
// the session's current page.
type LLMAgent struct {
	session       *Session
	llm           llm.LLM
	maxIterations int
	temperature   float32
}

var _ Agent = (*LLMAgent)(nil)

// NewAgent builds an agent driving the given session.
func NewAgent(session *Session, model llm.LLM, opts ...Option) *LLMAgent {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &LLMAgent{
		session:       session,
		llm:           model,
		maxIterations: options.maxIterations,
		temperature:   options.temperature,
	}
}

// Navigate loads the url directly, no model involved.
func (a *LLMAgent) Navigate(ctx context.Context, url string) error {
	return a.session.Navigate(ctx, url)
}

type groundedAction struct {
	Action string `json:"action"`
	Href   string `json:"href"`
	Reason string `json:"reason"`
}

const _instructPrompt = `You are driving a web browsing session.
Current page: %s

Page text:
%s

Followable links (text -> href):
%s

Instruction: %s

Reply with a JSON object only:
{"action": "follow", "href": "<one href from the list>"} to follow a link,
{"action": "stay"} if the current page already satisfies the instruction,
{"action": "fail", "reason": "<why>"} if the instruction cannot be grounded.`

// Instruct performs one natural-language instruction against the current
// page, following at most one link.
func (a *LLMAgent) Instruct(ctx context.Context, instruction string) error {
	action, err := a.ground(ctx, instruction)
	if err != nil {
		return err
	}
	switch action.Action {
	case "stay":
		return nil
	case "follow":
		if action.Href == "" {
			return errors.Errorf("instruction %q: model chose follow without a href", instruction)
		}
		return a.session.Navigate(ctx, action.Href)
	default:
		return errors.Errorf("instruction %q cannot be grounded: %s", instruction, action.Reason)
	}
}

// RunTask pursues a goal over several instruction steps, re-grounding
// against each new page, until the model reports the goal satisfied or
// the iteration bound is hit.
func (a *LLMAgent) RunTask(ctx context.Context, goal string) error {
	instruction := fmt.Sprintf(
		"Work towards this goal, one link at a time: %s. Choose stay once the goal is satisfied by the current page.", goal)
	for i := 0; i < a.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := a.ground(ctx, instruction)
		if err != nil {
			return err
		}
		switch action.Action {
		case "stay":
			return nil
		case "follow":
			if action.Href == "" {
				return errors.Errorf("goal %q: model chose follow without a href", goal)
			}
			if err := a.session.Navigate(ctx, action.Href); err != nil {
				return err
			}
		default:
			return errors.Errorf("goal %q cannot be grounded: %s", goal, action.Reason)
		}
	}
	return errors.Errorf("goal %q not reached within %d steps", goal, a.maxIterations)
}

func (a *LLMAgent) ground(ctx context.Context, instruction string) (*groundedAction, error) {
	links := a.session.Links()
	listed := make([]string, 0, len(links))
	for _, l := range links {
		listed = append(listed, fmt.Sprintf("- %s -> %s", l.Text, l.Href))
	}
	prompt := fmt.Sprintf(_instructPrompt,
		a.session.URL(), a.session.Snapshot(), strings.Join(listed, "\n"), instruction)

	generation, err := generateWithRetry(ctx, a.llm,
		[]llm.Message{llm.NewUserMessage(prompt)},
		llm.WithJSONMode(), llm.WithTemperature(a.temperature))
	if err != nil {
		return nil, errors.Wrap(err, "ground instruction")
	}

	action := &groundedAction{}
	if err := utilsjson.Unmarshal([]byte(utilsjson.TrimFence(generation.Content)), action); err != nil {
		return nil, errors.Wrap(err, "parse grounded action")
	}
	return action, nil
}
