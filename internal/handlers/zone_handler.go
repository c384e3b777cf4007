package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/gorilla/mux"
)

type ZoneHandler struct {
	Service *services.ZoneService
}

func NewZoneHandler(service *services.ZoneService) *ZoneHandler {
	return &ZoneHandler{Service: service}
}

func (h *ZoneHandler) ListZonesHandler(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Service.ListZones(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to get zones")
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *ZoneHandler) GetZoneHandler(w http.ResponseWriter, r *http.Request) {
	zone, err := h.Service.GetZone(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Failed to get zone")
		return
	}
	writeJSON(w, http.StatusOK, zone)
}

func (h *ZoneHandler) CreateZoneHandler(w http.ResponseWriter, r *http.Request) {
	var in services.ZoneInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	zone, err := h.Service.CreateZone(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, "Failed to create zone")
		return
	}
	writeJSON(w, http.StatusCreated, zone)
}

func (h *ZoneHandler) UpdateZoneHandler(w http.ResponseWriter, r *http.Request) {
	var in services.ZoneInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	zone, err := h.Service.UpdateZone(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, err, "Failed to update zone")
		return
	}
	writeJSON(w, http.StatusOK, zone)
}

func (h *ZoneHandler) DeleteZoneHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteZone(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, "Failed to delete zone")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /zones/locate?lat=&lng=
func (h *ZoneHandler) LocateHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "lat and lng must be numbers", http.StatusBadRequest)
		return
	}

	zone, err := h.Service.Locate(r.Context(), models.LatLng{Lat: lat, Lng: lng})
	if err != nil {
		writeServiceError(w, err, "Failed to locate point")
		return
	}
	if zone == nil {
		http.Error(w, "No zone contains this point", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, zone)
}

// POST /admin/zones/reassign
func (h *ZoneHandler) ReassignHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.ReassignAll(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to reassign zones")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
