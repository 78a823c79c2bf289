package ai

import (
	"testing"

	"clinicvoice/models"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: parts},
		}},
	}
}

func TestReplyFromResponseText(t *testing.T) {
	reply, err := replyFromResponse(responseWith(genai.Text("  What is your name?\n")))
	require.NoError(t, err)
	assert.Equal(t, models.TextReply{Text: "What is your name?"}, reply)
}

func TestReplyFromResponseFunctionCall(t *testing.T) {
	args := map[string]any{"patient_name": "Alice", "date": "2025-12-31", "time": "14:30"}
	reply, err := replyFromResponse(responseWith(genai.FunctionCall{Name: BookAppointmentAction, Args: args}))
	require.NoError(t, err)
	assert.Equal(t, models.ActionReply{Name: BookAppointmentAction, Args: args}, reply)
}

func TestReplyFromResponseUsesFirstPartOnly(t *testing.T) {
	reply, err := replyFromResponse(responseWith(
		genai.Text("Sure."),
		genai.FunctionCall{Name: BookAppointmentAction},
	))
	require.NoError(t, err)
	assert.IsType(t, models.TextReply{}, reply)
}

func TestReplyFromResponseEmpty(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
		"no parts":      responseWith(),
		"blank text":    responseWith(genai.Text("   ")),
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := replyFromResponse(resp)
			assert.ErrorIs(t, err, ErrAITransport)
		})
	}
}

func TestHistoryContents(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleUser, Text: "I need an appointment"},
		{Role: models.RoleModel, Text: "May I have your name?"},
	}
	contents := historyContents(history)

	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, []genai.Part{genai.Text("May I have your name?")}, contents[1].Parts)
}
