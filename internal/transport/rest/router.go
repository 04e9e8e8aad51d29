package rest

import (
	"net/http"
	"os"

	"riskscope/internal/repository"
	"riskscope/internal/service"
	"riskscope/internal/transport/rest/handler"
	"riskscope/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	ProfileRepo       repository.ProfileRepo
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	DictationHandler  *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	profileHandler := handler.NewProfileHandler(c.ProfileRepo)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	reportHandler := handler.NewReportHandler(c.ReportService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Subject profile store (medical record CRUD)
	v1.HandleFunc("/profiles", profileHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/profiles", profileHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/profiles/{id}", profileHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/profiles/{id}", profileHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/profiles/{id}", profileHandler.Delete).Methods("DELETE", "OPTIONS")

	// Questionnaire sessions
	v1.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{id}", assessmentHandler.Abandon).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/answers", assessmentHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/draft", assessmentHandler.SaveDraft).Methods("PUT", "OPTIONS")

	// Reports and underwriter decisions
	v1.HandleFunc("/assessments/{id}/report", assessmentHandler.RetrySynthesis).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/report", reportHandler.GetReport).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/bundle", reportHandler.GetBundle).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/profile", reportHandler.GetProfileRef).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/decision", reportHandler.RecordDecision).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/decision", reportHandler.GetDecision).Methods("GET", "OPTIONS")

	// Dictation WebSocket (partial transcripts into the draft buffer)
	v1.HandleFunc("/ws/assessments/{id}/dictation", c.DictationHandler.DictationWS).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
