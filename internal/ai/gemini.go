package ai

import (
	"context"
	"fmt"
	"slices"

	"google.golang.org/genai"
)

// generateContentAction marks a model as usable for text and vision
// generation; models without it are filtered out of listings.
const generateContentAction = "generateContent"

// Gemini implements Generator against the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed Generator.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// GenerateText submits a text-only prompt.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig())
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return resp.Text(), nil
}

// GenerateVision submits a prompt alongside raw image bytes.
func (g *Gemini) GenerateVision(ctx context.Context, prompt, mimeType string, image []byte) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genConfig())
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return resp.Text(), nil
}

// ListModels returns every upstream model that supports content
// generation, with its full action list.
func (g *Gemini) ListModels(ctx context.Context) ([]ModelInfo, error) {
	models := make([]ModelInfo, 0)
	for m, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("listing models: %w", err)
		}
		if !slices.Contains(m.SupportedActions, generateContentAction) {
			continue
		}
		models = append(models, ModelInfo{
			Name:             m.Name,
			SupportedMethods: m.SupportedActions,
		})
	}
	return models, nil
}

// genConfig disables the four harm-category blockers. Plant descriptions
// mention medicinal and toxicity topics that otherwise trip the default
// thresholds.
func genConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}
}
