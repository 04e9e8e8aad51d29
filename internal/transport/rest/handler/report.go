package handler

import (
	"encoding/json"
	"net/http"

	"riskscope/internal/service"

	"github.com/gorilla/mux"
)

// ReportHandler handles finished-assessment endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// DecisionRequest is the request body for recording an underwriter verdict
type DecisionRequest struct {
	Decision string `json:"decision"`
}

// GetReport handles GET /v1/assessments/{id}/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := h.reportSvc.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetBundle handles GET /v1/assessments/{id}/bundle
func (h *ReportHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	bundle, err := h.reportSvc.GetBundle(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bundle == nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// GetProfileRef handles GET /v1/assessments/{id}/profile
func (h *ReportHandler) GetProfileRef(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profileID, err := h.reportSvc.GetProfileRef(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profileID == "" {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profileId": profileID})
}

// RecordDecision handles POST /v1/assessments/{id}/decision
func (h *ReportHandler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := h.reportSvc.RecordDecision(r.Context(), id, req.Decision)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, decision)
}

// GetDecision handles GET /v1/assessments/{id}/decision
func (h *ReportHandler) GetDecision(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	decision, err := h.reportSvc.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if decision == nil {
		writeError(w, http.StatusNotFound, "decision not recorded")
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
