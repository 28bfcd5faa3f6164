package advice

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for advice requests.
const DefaultModelName = "gemini-2.5-flash"

// samplingTemperature keeps responses deterministic enough for the
// strict-JSON action contract.
const samplingTemperature float32 = 0.2

// GeminiGenerator generates advice text via the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given model. model may
// be empty, in which case DefaultModelName is used.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is not configured")
	}
	if model == "" {
		model = DefaultModelName
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateText sends one non-streaming request and returns the single
// text candidate.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(samplingTemperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from model")
	}
	return text, nil
}

var _ Generator = (*GeminiGenerator)(nil)
