package performance

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/edusmart/backend/internal/models"
)

// GoalCounter supplies the completed-goal count the dashboard and badge
// computation need, without a direct dependency on the goals package.
type GoalCounter interface {
	CompletedCount(ctx context.Context, userID int64) (int, error)
}

type Handler struct {
	service *Service
	goals   GoalCounter
}

func NewHandler(service *Service, goals GoalCounter) *Handler {
	return &Handler{service: service, goals: goals}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	completedGoals := 0
	if h.goals != nil {
		n, err := h.goals.CompletedCount(r.Context(), userID)
		if err != nil {
			log.Printf("WARN: [performance] completed goal count failed for user %d: %v", userID, err)
		} else {
			completedGoals = n
		}
	}

	dashboard, err := h.service.Dashboard(r.Context(), userID, completedGoals)
	if err != nil {
		log.Printf("WARN: [performance] dashboard failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	points, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) GetAge(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	age, err := h.service.GetAge(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load age"})
		return
	}
	writeJSON(w, http.StatusOK, models.AgeResponse{Age: age})
}

func (h *Handler) SetAge(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.AgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Age < 1 || req.Age > 120 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Age must be between 1 and 120"})
		return
	}

	if err := h.service.SetAge(r.Context(), userID, req.Age); err != nil {
		log.Printf("WARN: [performance] set age failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save age"})
		return
	}

	age := req.Age
	writeJSON(w, http.StatusOK, models.AgeResponse{Age: &age})
}

func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.service.ResetData(r.Context(), userID); err != nil {
		log.Printf("WARN: [performance] data reset failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to reset data"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
