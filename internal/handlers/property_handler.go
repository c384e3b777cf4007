package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/gorilla/mux"
)

type PropertyHandler struct {
	Service *services.PropertyService
	Zones   *services.ZoneService
}

func NewPropertyHandler(service *services.PropertyService, zones *services.ZoneService) *PropertyHandler {
	return &PropertyHandler{Service: service, Zones: zones}
}

// POST /properties
func (h *PropertyHandler) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var in services.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	property, err := h.Service.CreateProperty(r.Context(), claims.UserID, in)
	if err != nil {
		writeServiceError(w, err, "Failed to create property")
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

// GET /properties?mine=true
func (h *PropertyHandler) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var (
		properties []models.Property
		err        error
	)
	if r.URL.Query().Get("mine") == "true" {
		properties, err = h.Zones.PropertiesForUser(r.Context(), claims.UserID)
	} else {
		properties, err = h.Service.ListProperties(r.Context())
	}
	if err != nil {
		writeServiceError(w, err, "Failed to get properties")
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// PATCH /properties/{id}/located
func (h *PropertyHandler) SetLocatedHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var body struct {
		IsLocated *bool `json:"is_located"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsLocated == nil {
		http.Error(w, "is_located is required", http.StatusBadRequest)
		return
	}

	property, err := h.Service.SetLocated(r.Context(), claims.UserID, mux.Vars(r)["id"], *body.IsLocated)
	if err != nil {
		writeServiceError(w, err, "Failed to update property")
		return
	}
	writeJSON(w, http.StatusOK, property)
}
