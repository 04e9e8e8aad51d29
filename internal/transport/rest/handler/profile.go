package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"riskscope/internal/model"
	"riskscope/internal/repository"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileHandler handles subject profile CRUD endpoints
type ProfileHandler struct {
	profileRepo repository.ProfileRepo
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileRepo repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

// Create handles POST /v1/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile model.SubjectProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProfile(&profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.profileRepo.Create(r.Context(), &profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Medical record created successfully",
		"id":      id,
		"record":  profile,
	})
}

// List handles GET /v1/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Get handles GET /v1/profiles/{id}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, err := h.profileRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "medical record not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /v1/profiles/{id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var profile model.SubjectProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProfile(&profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.profileRepo.Update(r.Context(), id, &profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "medical record not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Medical record updated successfully",
		"record":  updated,
	})
}

// Delete handles DELETE /v1/profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.profileRepo.Delete(r.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "medical record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Medical record deleted successfully",
	})
}

func validateProfile(p *model.SubjectProfile) error {
	switch p.PersonalInfo.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return errInvalidField("personalInfo.gender")
	}
	if p.PersonalInfo.FullName == "" {
		return errInvalidField("personalInfo.fullName")
	}
	if p.PersonalInfo.Email == "" {
		return errInvalidField("personalInfo.email")
	}
	if p.PersonalInfo.Age <= 0 {
		return errInvalidField("personalInfo.age")
	}
	if p.PersonalInfo.Height <= 0 || p.PersonalInfo.Weight <= 0 {
		return errInvalidField("personalInfo.height/weight")
	}
	if p.MedicalHistory.Exercise == "" {
		return errInvalidField("medicalHistory.exercise")
	}
	return nil
}

func errInvalidField(field string) error {
	return fmt.Errorf("missing or invalid field: %s", field)
}
