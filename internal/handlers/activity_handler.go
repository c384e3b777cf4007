package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	Logger *services.ActivityLogger
}

func NewActivityHandler(logger *services.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{Logger: logger}
}

type logActivityRequest struct {
	Type        models.ActivityType    `json:"type"`
	Description string                 `json:"description"`
	RelatedID   *string                `json:"related_id,omitempty"`
	RelatedType *string                `json:"related_type,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Points      int                    `json:"points,omitempty"`
	GoalID      *string                `json:"goal_id,omitempty"`
}

// POST /activities
func (h *ActivityHandler) LogActivityHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	activity, err := h.Logger.LogActivity(r.Context(), claims.UserID, services.LogActivityInput{
		Type:        req.Type,
		Description: req.Description,
		RelatedID:   req.RelatedID,
		RelatedType: req.RelatedType,
		Metadata:    models.ParseMetadata(req.Type, req.Metadata),
		Points:      req.Points,
		GoalID:      req.GoalID,
	})
	if err != nil {
		writeServiceError(w, err, "Failed to log activity")
		return
	}
	if activity == nil {
		writeJSON(w, http.StatusAccepted, map[string]bool{"recorded": false})
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// GET /activities?limit=
func (h *ActivityHandler) ListActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	activities, err := h.Logger.ListRecent(r.Context(), claims.UserID, limit)
	if err != nil {
		writeServiceError(w, err, "Failed to get activities")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// DELETE /admin/activities/{id}
func (h *ActivityHandler) DeleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Logger.DeleteActivity(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, "Failed to delete activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
