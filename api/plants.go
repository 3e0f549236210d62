package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/herbgarden/herbarium/internal/log"
	"github.com/herbgarden/herbarium/internal/plant"
)

// PlantStore is the plant catalog contract the HTTP layer depends on.
// *plant.Store satisfies it.
type PlantStore interface {
	Create(ctx context.Context, p plant.CreateParams) (*plant.Plant, error)
	Search(ctx context.Context, query string, skip, limit int) ([]*plant.Plant, error)
	Get(ctx context.Context, plantID int64) (*plant.Plant, error)
}

// PlantHandler handles plant catalog endpoints.
type PlantHandler struct {
	store  PlantStore
	logger log.Logger
}

// NewPlantHandler creates a new plant handler.
func NewPlantHandler(store PlantStore, logger log.Logger) *PlantHandler {
	return &PlantHandler{store: store, logger: logger}
}

// RegisterRoutes registers plant routes on the given mux.
func (h *PlantHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /plants/{$}", h.create)
	mux.HandleFunc("GET /plants/{$}", h.search)
	mux.HandleFunc("GET /plants/{plant_id}", h.get)
}

// CreatePlantRequest is the request body for creating a plant.
type CreatePlantRequest struct {
	CommonName     string   `json:"common_name"`
	ScientificName *string  `json:"scientific_name"`
	Description    *string  `json:"description"`
	Uses           []string `json:"uses"`
	Region         *string  `json:"region"`
	PlantType      *string  `json:"plant_type"`
	ImageURL       *string  `json:"image_url"`
	ModelURL       *string  `json:"three_d_model_url"`
}

// create adds a plant to the catalog. Duplicate common or scientific names
// answer 409.
func (h *PlantHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.CommonName == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "common_name is required")
		return
	}

	p, err := h.store.Create(r.Context(), plant.CreateParams{
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Description:    req.Description,
		Uses:           req.Uses,
		Region:         req.Region,
		PlantType:      req.PlantType,
		ImageURL:       req.ImageURL,
		ModelURL:       req.ModelURL,
	})
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// search lists plants, optionally filtered by the q parameter. One query
// fans out as a case-insensitive substring match over common name,
// scientific name, description, and uses.
func (h *PlantHandler) search(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	query := r.URL.Query().Get("q")

	plants, err := h.store.Search(r.Context(), query, skip, limit)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, plants)
}

// get returns a single plant by ID.
func (h *PlantHandler) get(w http.ResponseWriter, r *http.Request) {
	plantID, err := strconv.ParseInt(r.PathValue("plant_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "plant_id must be an integer")
		return
	}

	p, err := h.store.Get(r.Context(), plantID)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}
