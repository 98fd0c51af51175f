package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/edusmart/backend/internal/flows"
	"github.com/edusmart/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	manager *Manager
	engine  *Engine
}

func NewHandler(manager *Manager, engine *Engine) *Handler {
	return &Handler{manager: manager, engine: engine}
}

// Start creates a session and fetches its first question. If the fetch
// fails the session is still created; the client retries via the
// question endpoint.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		req.Subject = "General"
	}

	s := h.manager.Create(userID, req.Subject)

	resp := models.StartSessionResponse{
		SessionID:      s.ID,
		Subject:        s.Subject,
		Difficulty:     StartDifficulty,
		TotalQuestions: QuestionsPerSession,
	}

	question, err := h.engine.FetchQuestion(r.Context(), s)
	if err != nil {
		log.Printf("WARN: [session] first question fetch failed for session %s: %v", s.ID, err)
		resp.Warning = "The first question could not be fetched. Retry via the question endpoint."
	} else {
		resp.Question = question
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Question fetches the pending question for a session that is awaiting one.
func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	question, err := h.engine.FetchQuestion(r.Context(), s)
	if err != nil {
		h.writeSessionError(w, s.ID, err)
		return
	}

	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, models.NextQuestionResponse{
		Difficulty: snap.Difficulty,
		Question:   question,
	})
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SubmitSessionAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "At least one answer is required"})
		return
	}

	resp, err := h.engine.SubmitAnswer(r.Context(), s, req.Answers)
	if err != nil {
		h.writeSessionError(w, s.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if s.Snapshot().State == models.StateComplete {
		result, err := h.engine.Result(r.Context(), s)
		if err != nil {
			h.writeSessionError(w, s.ID, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	resp, err := h.engine.NextQuestion(r.Context(), s)
	if err != nil {
		h.writeSessionError(w, s.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns the session snapshot, or the final result once complete.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.Snapshot()
	if snap.State == models.StateComplete {
		result, err := h.engine.Result(r.Context(), s)
		if err != nil {
			h.writeSessionError(w, s.ID, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Abandon ends the session. Nothing from an abandoned session is saved.
func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.engine.Abandon(s); err != nil {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Completed sessions cannot be abandoned"})
		return
	}
	h.manager.Remove(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}

	s, err := h.manager.Get(mux.Vars(r)["id"], userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
		return nil, false
	}
	return s, true
}

func (h *Handler) writeSessionError(w http.ResponseWriter, sessionID string, err error) {
	var inputErr *flows.InputError
	switch {
	case errors.Is(err, ErrBusy):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Another request for this session is in progress"})
	case errors.Is(err, ErrInvalidState):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "That action is not available right now"})
	case errors.Is(err, ErrAbandoned), errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: inputErr.Msg})
	default:
		log.Printf("WARN: [session] request failed for session %s: %v", sessionID, err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "The tutor is unavailable right now. Please try again."})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
