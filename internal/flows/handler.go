package flows

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/edusmart/backend/internal/models"
)

// GoalImporter lets the career roadmap handler push generated skills into
// the user's goal list without importing the goals package directly.
type GoalImporter interface {
	ImportGoals(ctx context.Context, userID int64, texts []string) ([]models.Goal, error)
}

type Handler struct {
	service *Service
	goals   GoalImporter
}

func NewHandler(service *Service, goals GoalImporter) *Handler {
	return &Handler{service: service, goals: goals}
}

func (h *Handler) LessonPlan(w http.ResponseWriter, r *http.Request) {
	var req models.LessonPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	plan, err := h.service.GenerateLessonPlan(r.Context(), req)
	if err != nil {
		h.writeFlowError(w, "lesson-plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) GradeEssay(w http.ResponseWriter, r *http.Request) {
	var req models.GradeEssayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	feedback, err := h.service.GradeEssay(r.Context(), req)
	if err != nil {
		h.writeFlowError(w, "grade-essay", err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

type careerRoadmapRequest struct {
	JobRole       string `json:"jobRole"`
	ImportAsGoals bool   `json:"importAsGoals"`
}

type careerRoadmapResponse struct {
	*models.CareerRoadmap
	ImportedGoals []models.Goal `json:"imported_goals,omitempty"`
}

// CareerRoadmap generates a skill roadmap and, when importAsGoals is set,
// adds each skill to the user's goal list in roadmap order.
func (h *Handler) CareerRoadmap(w http.ResponseWriter, r *http.Request) {
	var req careerRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	roadmap, err := h.service.GenerateCareerRoadmap(r.Context(), models.CareerRoadmapRequest{JobRole: req.JobRole})
	if err != nil {
		h.writeFlowError(w, "career-roadmap", err)
		return
	}

	resp := careerRoadmapResponse{CareerRoadmap: roadmap}

	if req.ImportAsGoals && h.goals != nil {
		userID, ok := r.Context().Value("user_id").(int64)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
			return
		}
		texts := make([]string, 0, len(roadmap.Roadmap))
		for _, step := range roadmap.Roadmap {
			texts = append(texts, "Learn "+step.Skill)
		}
		imported, err := h.goals.ImportGoals(r.Context(), userID, texts)
		if err != nil {
			log.Printf("WARN: [flows] failed to import roadmap goals for user %d: %v", userID, err)
		} else {
			resp.ImportedGoals = imported
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	recs, err := h.service.GenerateRecommendations(r.Context(), req)
	if err != nil {
		h.writeFlowError(w, "recommendations", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) LanguageTutor(w http.ResponseWriter, r *http.Request) {
	var req models.LanguageTutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.LanguageTutor(r.Context(), req)
	if err != nil {
		h.writeFlowError(w, "language-tutor", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) SolveProblem(w http.ResponseWriter, r *http.Request) {
	var req models.SolveProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	solution, err := h.service.SolveProblem(r.Context(), req)
	if err != nil {
		h.writeFlowError(w, "solve", err)
		return
	}
	writeJSON(w, http.StatusOK, solution)
}

func (h *Handler) RecommendCourses(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendCoursesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	courses, err := h.service.RecommendCourses(r.Context(), req)
	if err != nil {
		h.writeFlowError(w, "recommend-courses", err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) writeFlowError(w http.ResponseWriter, flow string, err error) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: inputErr.Msg})
		return
	}
	log.Printf("WARN: [flows] %s failed: %v", flow, err)
	writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "The tutor is unavailable right now. Please try again."})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
