// Package ai proxies chat and plant-identification requests to Gemini.
//
// The proxy is stateless: every call is a single generation request with no
// retry and no persistence. The free-text identification response is parsed
// by ParseIdentification, a pure function kept separate from any network
// access so the scraping logic is testable on its own.
package ai

import "context"

// Generator is the narrow contract the proxy needs from a generative model.
// Production uses Gemini; tests inject fakes.
type Generator interface {
	// GenerateText submits a text prompt and returns the raw model output.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateVision submits a text prompt together with an image and
	// returns the raw model output.
	GenerateVision(ctx context.Context, prompt, mimeType string, image []byte) (string, error)

	// ListModels returns the upstream models capable of content generation.
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ModelInfo describes one generation-capable model offered upstream.
type ModelInfo struct {
	Name             string   `json:"name"`
	SupportedMethods []string `json:"supported_methods"`
}
