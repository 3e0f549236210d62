package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/herbgarden/herbarium/internal/ai"
	"github.com/herbgarden/herbarium/internal/log"
)

// maxImageBytes caps the uploaded image size for plant identification.
const maxImageBytes = 10 << 20 // 10 MiB

// AIService is the generative-AI contract the HTTP layer depends on.
// *ai.Service satisfies it.
type AIService interface {
	Chat(ctx context.Context, message string) (string, error)
	Identify(ctx context.Context, mimeType string, image []byte) (ai.Identification, error)
	ListModels(ctx context.Context) ([]ai.ModelInfo, error)
}

// AIHandler handles the chat and plant-identification endpoints.
type AIHandler struct {
	service AIService
	logger  log.Logger
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(service AIService, logger log.Logger) *AIHandler {
	return &AIHandler{service: service, logger: logger}
}

// RegisterRoutes registers AI routes on the given mux.
func (h *AIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /ai/chat", h.chat)
	mux.HandleFunc("POST /identify-plant/{$}", h.identify)
	mux.HandleFunc("GET /list_gemini_models/{$}", h.listModels)
}

// ChatRequest is the request body for the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the model's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

func (h *AIHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	response, err := h.service.Chat(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("chat generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ai_error", "failed to generate a response")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: response})
}

// identify accepts a multipart upload with an "image" file field and
// returns the structured identification result.
func (h *AIHandler) identify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_request", "image file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "image file is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "file must be an image")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read image file")
		return
	}

	result, err := h.service.Identify(r.Context(), mimeType, image)
	if err != nil {
		h.logger.Error("plant identification failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ai_error", "failed to identify the plant")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ModelListResponse carries the generation-capable upstream models.
type ModelListResponse struct {
	AvailableGeminiModels []ai.ModelInfo `json:"available_gemini_models"`
}

func (h *AIHandler) listModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.service.ListModels(r.Context())
	if err != nil {
		h.logger.Error("model listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ai_error", "failed to list models")
		return
	}

	writeJSON(w, http.StatusOK, ModelListResponse{AvailableGeminiModels: models})
}
