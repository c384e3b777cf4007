package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/gorilla/mux"
)

// GoalHandler handles HTTP requests for goals.
type GoalHandler struct {
	Service *services.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service *services.GoalService) *GoalHandler {
	return &GoalHandler{Service: service}
}

// GetGoalsHandler lists the caller's goals.
func (h *GoalHandler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	goals, err := h.Service.ListUserGoals(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err, "Failed to get goals")
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// CreateGoalHandler creates a custom goal for the caller.
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var in services.CreateGoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	goal, err := h.Service.CreateGoal(r.Context(), claims.UserID, in)
	if err != nil {
		writeServiceError(w, err, "Failed to create goal")
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// GetGoalHandler returns one of the caller's goals.
func (h *GoalHandler) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	goal, err := h.Service.GetUserGoal(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Failed to get goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// RecomputeGoalHandler recounts progress for one of the caller's goals.
func (h *GoalHandler) RecomputeGoalHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := h.Service.GetUserGoal(r.Context(), claims.UserID, id); err != nil {
		writeServiceError(w, err, "Failed to get goal")
		return
	}

	goal, err := h.Service.RecomputeGoalProgress(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to recompute goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
