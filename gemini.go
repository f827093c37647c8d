package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ========== Generation Invoker ==========

// errGenerationUnavailable marks every absorbed generator outcome: service
// disabled, call failure, or an empty response. It never reaches the caller
// as an error; the handler routes it to fallback synthesis.
var errGenerationUnavailable = errors.New("generation unavailable")

// GenerationInvoker is the single boundary to the generative service.
// A nil invoker means the service is disabled.
type GenerationInvoker struct {
	apiKey string
	model  string
}

// NewGenerationInvoker returns nil when the service is disabled or no API
// key is configured, which is a normal deployment state.
func NewGenerationInvoker(apiKey, model string, disabled bool) *GenerationInvoker {
	if disabled || apiKey == "" {
		return nil
	}
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	return &GenerationInvoker{apiKey: apiKey, model: model}
}

func (g *GenerationInvoker) Enabled() bool {
	return g != nil && g.apiKey != ""
}

// Generate performs one call to the generative service and returns the raw
// text. Any fault is reported as errGenerationUnavailable; there are no
// retries.
func (g *GenerationInvoker) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Enabled() {
		return "", errGenerationUnavailable
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("%w: client: %v", errGenerationUnavailable, err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(4096)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", errGenerationUnavailable, err)
	}

	var text strings.Builder
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		for _, part := range res.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: empty response", errGenerationUnavailable)
	}
	return text.String(), nil
}
