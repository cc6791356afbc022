package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faresweep/faresweep/llm"
)

func newStubServer(t *testing.T, content string, requests *[][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if requests != nil {
			*requests = append(*requests, body)
		}
		resp := goopenai.ChatCompletionResponse{
			Model: "stub",
			Choices: []goopenai.ChatCompletionChoice{{
				Message:      goopenai.ChatCompletionMessage{Role: "assistant", Content: content},
				FinishReason: goopenai.FinishReasonStop,
			}},
			Usage: goopenai.Usage{PromptTokens: 12, CompletionTokens: 3, TotalTokens: 15},
		}
		w.Header().Set("Content-Type", "application/json")
		payload, _ := json.Marshal(resp)
		fmt.Fprint(w, string(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewRequiresToken(t *testing.T) {
	t.Parallel()
	_, err := New()
	assert.ErrorContains(t, err, "missing the OpenAI API key")
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	server := newStubServer(t, `{"offers": []}`, nil)

	client, err := New(
		WithToken("test-token"),
		WithModel("gpt-4o-mini"),
		WithBaseURL(server.URL+"/v1"))
	require.NoError(t, err)

	generation, err := client.Generate(context.Background(), "extract the offers")
	require.NoError(t, err)
	assert.Equal(t, `{"offers": []}`, generation.Content)
	assert.Equal(t, "stop", generation.StopReason)
	assert.Equal(t, 15, generation.Usage.TotalTokens)
}

func TestGenerateContentJSONMode(t *testing.T) {
	t.Parallel()
	var requests [][]byte
	server := newStubServer(t, `{}`, &requests)

	client, err := New(
		WithToken("test-token"),
		WithModel("gpt-4o-mini"),
		WithBaseURL(server.URL+"/v1"))
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(),
		[]llm.Message{llm.NewSystemMessage("reply in JSON"), llm.NewUserMessage("hello")},
		llm.WithJSONMode(), llm.WithMaxTokens(256))
	require.NoError(t, err)

	require.Len(t, requests, 1)
	var req goopenai.ChatCompletionRequest
	require.NoError(t, json.Unmarshal(requests[0], &req))
	assert.Equal(t, "gpt-4o-mini", req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.EqualValues(t, "json_object", req.ResponseFormat.Type)
	assert.Equal(t, 256, req.MaxCompletionTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
}
