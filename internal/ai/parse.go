package ai

import "strings"

// Field prefixes the identification prompt instructs the model to emit.
const (
	plantNamePrefix   = "Plant Name:"
	descriptionPrefix = "Description:"
	usagePrefix       = "Usage:"
)

// Defaults used when the model response omits a field entirely.
const (
	defaultPlantName   = "Unknown Plant"
	defaultDescription = "Could not identify the plant or its description."
	defaultUsage       = "No usage information available."
)

// Fallbacks forced when the model explicitly reports an unknown plant,
// regardless of what it put on the other lines.
const (
	unknownDescription = "The AI could not identify this plant from the image."
	unknownUsage       = "No specific usage information available."
)

// Identification is the structured result of a plant-identification call.
type Identification struct {
	PlantName   string   `json:"plant_name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Confidence  *float64 `json:"confidence"`
}

// ParseIdentification extracts the structured identification from the
// model's free-text response.
//
// The response is scanned line by line for the three literal prefixes; a
// field whose prefix never appears keeps its fixed default. When the parsed
// plant name contains "unknown plant" (any case), description and usage are
// overridden with fixed fallback strings. Confidence is never populated.
func ParseIdentification(text string) Identification {
	result := Identification{
		PlantName:   defaultPlantName,
		Description: defaultDescription,
		Usage:       defaultUsage,
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, plantNamePrefix):
			result.PlantName = strings.TrimSpace(strings.TrimPrefix(line, plantNamePrefix))
		case strings.HasPrefix(line, descriptionPrefix):
			result.Description = strings.TrimSpace(strings.TrimPrefix(line, descriptionPrefix))
		case strings.HasPrefix(line, usagePrefix):
			result.Usage = strings.TrimSpace(strings.TrimPrefix(line, usagePrefix))
		}
	}

	if strings.Contains(strings.ToLower(result.PlantName), "unknown plant") {
		result.Description = unknownDescription
		result.Usage = unknownUsage
	}

	return result
}
