package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ModelsHandler serves model metadata.
type ModelsHandler struct {
	deps Dependencies
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(deps Dependencies) *ModelsHandler {
	return &ModelsHandler{deps: deps}
}

type modelsResponse struct {
	Models any `json:"models"`
}

// HandleListModels handles GET /v1/models.
func (h *ModelsHandler) HandleListModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, modelsResponse{Models: h.deps.Models()})
}

type tiersResponse struct {
	Model string `json:"model"`
	Tiers any    `json:"tiers"`
}

// HandleGetTiers handles GET /v1/models/{version}/tiers.
func (h *ModelsHandler) HandleGetTiers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_tiers"

	version := chi.URLParam(r, "version")
	tiers, err := h.deps.Tiers(version)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, tiersResponse{Model: version, Tiers: tiers})
}
