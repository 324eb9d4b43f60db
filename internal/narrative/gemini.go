package narrative

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.5-pro"
	agentName          = "cv analyzer"
	agentUserID        = "cvmatch"
)

// GeminiGenerator runs prompts through a Gemini-backed llm agent. Each call uses its own
// throwaway in-memory session.
type GeminiGenerator struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
}

// NewGeminiGenerator creates the agent and its runner.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	llm, err := gemini.NewModel(ctx, model, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	analyzer, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       llm,
		Description: "Analyze CV against a job description",
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        analyzer.Name(),
		Agent:          analyzer,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &GeminiGenerator{runner: r, sessions: sessions, appName: analyzer.Name()}, nil
}

// Generate runs the agent on prompt and returns its final response.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	created, err := g.sessions.Create(ctx, &session.CreateRequest{
		AppName:   g.appName,
		UserID:    agentUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", Classify("gemini", fmt.Errorf("failed to create session: %w", err))
	}
	sess := created.Session
	defer func() {
		_ = g.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
	}()

	stream := g.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", Classify("gemini", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if err := ctx.Err(); err != nil {
		return "", Classify("gemini", err)
	}
	if output == "" {
		return "", &Error{Kind: ErrServiceUnavailable, Backend: "gemini", Err: fmt.Errorf("empty agent response")}
	}
	return StripFences(output), nil
}
