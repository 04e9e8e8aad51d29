package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"riskscope/internal/model"
	"riskscope/internal/service"

	"github.com/gorilla/mux"
)

// AssessmentHandler handles questionnaire session endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// StartAssessmentRequest is the request body for starting a session
type StartAssessmentRequest struct {
	ProfileID     string `json:"profileId"`
	QuestionCount int    `json:"questionCount,omitempty"`
}

// SubmitAnswerRequest is the request body for answering a question
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SaveDraftRequest is the request body for saving a draft answer
type SaveDraftRequest struct {
	Draft string `json:"draft"`
}

// Start handles POST /v1/assessments
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProfileID == "" {
		writeError(w, http.StatusBadRequest, "profileId is required")
		return
	}

	session, err := h.assessmentSvc.Start(r.Context(), req.ProfileID, req.QuestionCount)
	if err != nil {
		if errors.Is(err, service.ErrProfileUnavailable) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.assessmentSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SubmitAnswer handles POST /v1/assessments/{id}/answers
func (h *AssessmentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.assessmentSvc.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		writeSessionError(w, session, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// RetrySynthesis handles POST /v1/assessments/{id}/report
func (h *AssessmentHandler) RetrySynthesis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.assessmentSvc.RetrySynthesis(r.Context(), id)
	if err != nil {
		writeSessionError(w, session, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SaveDraft handles PUT /v1/assessments/{id}/draft
func (h *AssessmentHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.assessmentSvc.SaveDraft(r.Context(), id, req.Draft)
	if err != nil {
		writeSessionError(w, session, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"draft": session.DraftAnswer})
}

// Abandon handles DELETE /v1/assessments/{id}
func (h *AssessmentHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.assessmentSvc.Abandon(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "session abandoned"})
}

// writeSessionError maps the engine's error taxonomy onto HTTP statuses.
// A failed synthesis returns the session alongside the error so the
// client can offer its single retry affordance.
func writeSessionError(w http.ResponseWriter, session *model.Session, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInputRejected):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSessionComplete):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReportGenerationFailed):
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":     err.Error(),
			"retryable": true,
			"session":   session,
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
