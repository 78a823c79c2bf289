// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"clinicvoice/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAssistant talks to Gemini with bookAppointment as its only tool.
type GeminiAssistant struct {
	client    *genai.Client
	modelName string
}

func NewGeminiAssistant(ctx context.Context, apiKey, modelName string) (*GeminiAssistant, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiAssistant{client: client, modelName: modelName}, nil
}

// Send replays the call history into a fresh chat and sends the utterance.
func (g *GeminiAssistant) Send(ctx context.Context, session *models.CallSession, utterance string) (models.Reply, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(session.Prompt))
	model.Tools = []*genai.Tool{BookAppointmentTool()}

	cs := model.StartChat()
	cs.History = historyContents(session.History)

	resp, err := cs.SendMessage(ctx, genai.Text(utterance))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini send: %w", ErrAITransport, err)
	}
	return replyFromResponse(resp)
}

func (g *GeminiAssistant) Close() error {
	return g.client.Close()
}

func historyContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return contents
}

// replyFromResponse looks at the first part of the first candidate only.
func replyFromResponse(resp *genai.GenerateContentResponse) (models.Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty gemini response", ErrAITransport)
	}

	switch part := resp.Candidates[0].Content.Parts[0].(type) {
	case genai.FunctionCall:
		return models.ActionReply{Name: part.Name, Args: part.Args}, nil
	case *genai.FunctionCall:
		return models.ActionReply{Name: part.Name, Args: part.Args}, nil
	case genai.Text:
		text := strings.TrimSpace(string(part))
		if text == "" {
			return nil, fmt.Errorf("%w: blank gemini text", ErrAITransport)
		}
		return models.TextReply{Text: text}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected gemini part %T", ErrAITransport, part)
	}
}
