package llm

import "context"

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Usage is the token accounting reported by the provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Generation is the output of a single model call.
type Generation struct {
	Content    string
	StopReason string
	Usage      *Usage
}

// LLM is the minimal model surface the browsing capabilities need.
type LLM interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (*Generation, error)
	GenerateContent(ctx context.Context, messages []Message, opts ...GenerateOption) (*Generation, error)
}
