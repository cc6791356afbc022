package browse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentInstructFollowsLink(t *testing.T) {
	t.Parallel()
	server := newListingServer(t)

	session := NewSession()
	require.NoError(t, session.Open(context.Background()))
	defer session.Close()
	require.NoError(t, session.Navigate(context.Background(), server.URL+"/results?date=2025-06-01"))

	model := &fakeLLM{responses: []string{
		`{"action": "follow", "href": "` + server.URL + `/results?date=2025-06-02"}`,
	}}
	agent := NewAgent(session, model)

	err := agent.Instruct(context.Background(), "go to the next day's results")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/results?date=2025-06-02", session.URL())
	// The model saw the page and its links.
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Flights to Tokyo")
	assert.Contains(t, model.prompts[0], "Next day")
}

func TestAgentForwardsTemperature(t *testing.T) {
	t.Parallel()
	server := newListingServer(t)

	session := NewSession()
	require.NoError(t, session.Open(context.Background()))
	defer session.Close()
	require.NoError(t, session.Navigate(context.Background(), server.URL+"/results"))

	model := &fakeLLM{responses: []string{`{"action": "stay"}`}}
	agent := NewAgent(session, model, WithTemperature(0.2))

	require.NoError(t, agent.Instruct(context.Background(), "show the flight results"))
	require.Len(t, model.options, 1)
	assert.InDelta(t, 0.2, model.options[0].Temperature, 1e-6)
	assert.True(t, model.options[0].JSONMode)
}

func TestAgentInstructStay(t *testing.T) {
	t.Parallel()
	server := newListingServer(t)

	session := NewSession()
	require.NoError(t, session.Open(context.Background()))
	defer session.Close()
	require.NoError(t, session.Navigate(context.Background(), server.URL+"/results"))

	agent := NewAgent(session, &fakeLLM{responses: []string{`{"action": "stay"}`}})
	require.NoError(t, agent.Instruct(context.Background(), "show the flight results"))
	assert.Equal(t, server.URL+"/results", session.URL())
}

func TestAgentInstructUngroundable(t *testing.T) {
	t.Parallel()
	server := newListingServer(t)

	session := NewSession()
	require.NoError(t, session.Open(context.Background()))
	defer session.Close()
	require.NoError(t, session.Navigate(context.Background(), server.URL+"/results"))

	agent := NewAgent(session, &fakeLLM{responses: []string{
		`{"action": "fail", "reason": "no booking form on this page"}`,
	}})
	err := agent.Instruct(context.Background(), "book the first flight")
	assert.ErrorContains(t, err, "cannot be grounded")
	assert.ErrorContains(t, err, "no booking form")
}

func TestAgentRunTaskStopsAtGoal(t *testing.T) {
	t.Parallel()
	server := newListingServer(t)

	session := NewSession()
	require.NoError(t, session.Open(context.Background()))
	defer session.Close()
	require.NoError(t, session.Navigate(context.Background(), server.URL+"/results?date=2025-06-01"))

	model := &fakeLLM{responses: []string{
		`{"action": "follow", "href": "` + server.URL + `/results?date=2025-06-02"}`,
		`{"action": "stay"}`,
	}}
	agent := NewAgent(session, model)

	require.NoError(t, agent.RunTask(context.Background(), "reach the June 2nd results"))
	assert.Equal(t, server.URL+"/results?date=2025-06-02", session.URL())
	assert.Len(t, model.prompts, 2)
}

func TestAgentRunTaskIterationBound(t *testing.T) {
	t.Parallel()
	server := newListingServer(t)

	session := NewSession()
	require.NoError(t, session.Open(context.Background()))
	defer session.Close()
	require.NoError(t, session.Navigate(context.Background(), server.URL+"/results"))

	loop := `{"action": "follow", "href": "` + server.URL + `/results"}`
	model := &fakeLLM{responses: []string{loop, loop, loop}}
	agent := NewAgent(session, model, WithMaxIterations(3))

	err := agent.RunTask(context.Background(), "an unreachable goal")
	assert.ErrorContains(t, err, "not reached within 3 steps")
}
