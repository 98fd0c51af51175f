package goals

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/edusmart/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Printf("WARN: [goals] list failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load goals"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	goal, err := h.service.Add(r.Context(), userID, req.Text, req.Deadline)
	if err != nil {
		if errors.Is(err, ErrEmptyText) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Goal text is required"})
			return
		}
		log.Printf("WARN: [goals] create failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create goal"})
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ImportGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	imported, err := h.service.ImportGoals(r.Context(), userID, req.Texts)
	if err != nil {
		log.Printf("WARN: [goals] import failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to import goals"})
		return
	}
	writeJSON(w, http.StatusCreated, imported)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	goalID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid goal id"})
		return
	}

	if err := h.service.ToggleComplete(r.Context(), userID, goalID); err != nil {
		log.Printf("WARN: [goals] toggle failed for user %d goal %d: %v", userID, goalID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update goal"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	goalID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid goal id"})
		return
	}

	if err := h.service.Delete(r.Context(), userID, goalID); err != nil {
		log.Printf("WARN: [goals] delete failed for user %d goal %d: %v", userID, goalID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete goal"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
