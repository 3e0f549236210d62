package ai

import (
	"context"
	"fmt"

	"github.com/herbgarden/herbarium/internal/log"
)

// chatPreamble is prepended to every chat message before forwarding.
const chatPreamble = "You are a helpful assistant for a virtual herbal garden. " +
	"Provide information about plants, their uses, and general herbal remedies " +
	"based on traditional knowledge. Keep responses concise and informative."

// identifyPrompt instructs the model to answer in the three-line format
// ParseIdentification scans for.
const identifyPrompt = "Analyze this image and identify the plant. " +
	"Then, provide a brief description of the plant and its common " +
	"traditional/medicinal usages. Format your response strictly as follows: " +
	"Plant Name: [Name]\nDescription: [Description]\nUsage: [Usage]\n" +
	"If you cannot identify it, state 'Unknown Plant'."

// Service wraps a Generator with the fixed prompts for the two AI
// endpoints. It holds no state between calls.
type Service struct {
	generator Generator
	logger    log.Logger
}

// NewService creates an AI proxy service.
func NewService(generator Generator, logger log.Logger) (*Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Service{generator: generator, logger: logger}, nil
}

// Chat forwards the user's message with the herbal-garden preamble and
// returns the model's raw text.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nUser query: %s", chatPreamble, message)

	response, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat generation: %w", err)
	}

	s.logger.Debug("chat completed", "message_len", len(message), "response_len", len(response))
	return response, nil
}

// ListModels returns the generation-capable models the upstream API
// currently offers.
func (s *Service) ListModels(ctx context.Context) ([]ModelInfo, error) {
	models, err := s.generator.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}

	s.logger.Debug("listed models", "count", len(models))
	return models, nil
}

// Identify submits an image for plant identification and parses the
// model's free-text answer into a structured result.
func (s *Service) Identify(ctx context.Context, mimeType string, image []byte) (Identification, error) {
	response, err := s.generator.GenerateVision(ctx, identifyPrompt, mimeType, image)
	if err != nil {
		return Identification{}, fmt.Errorf("identification generation: %w", err)
	}

	result := ParseIdentification(response)
	s.logger.Debug("identification completed", "plant_name", result.PlantName)
	return result, nil
}
