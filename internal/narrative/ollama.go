package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "mistral"
)

// OllamaGenerator generates text with a model served by a local Ollama instance.
type OllamaGenerator struct {
	model llms.Model
	name  string
}

// NewOllamaGenerator builds a generator for model at serverURL. Empty values use the
// defaults. No request is made until Generate is called.
func NewOllamaGenerator(serverURL, model string) (*OllamaGenerator, error) {
	if serverURL == "" {
		serverURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaGenerator{model: llm, name: "ollama/" + model}, nil
}

// Generate sends prompt as a single completion request.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", Classify(g.name, err)
	}
	if strings.TrimSpace(resp) == "" {
		return "", &Error{Kind: ErrServiceUnavailable, Backend: g.name, Err: fmt.Errorf("empty response")}
	}
	return StripFences(resp), nil
}
