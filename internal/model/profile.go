package model

import "time"

// Gender values accepted in a subject profile
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PersonalInfo holds the subject's identifying and physical attributes
type PersonalInfo struct {
	FullName string  `json:"fullName" bson:"fullName"`
	Email    string  `json:"email" bson:"email"`
	Age      int     `json:"age" bson:"age"`
	Gender   Gender  `json:"gender" bson:"gender"`
	Height   float64 `json:"height" bson:"height"` // cm
	Weight   float64 `json:"weight" bson:"weight"` // kg
}

// Lifestyle holds the subject's lifestyle flags
type Lifestyle struct {
	Smoking bool `json:"smoking" bson:"smoking"`
	Alcohol bool `json:"alcohol" bson:"alcohol"`
}

// Medications captures current medication usage
type Medications struct {
	Taking bool   `json:"taking" bson:"taking"`
	List   string `json:"list,omitempty" bson:"list,omitempty"`
}

// FamilyHistory captures hereditary conditions
type FamilyHistory struct {
	Has        bool     `json:"has" bson:"has"`
	Conditions []string `json:"conditions,omitempty" bson:"conditions,omitempty"`
}

// MedicalHistory holds the subject's medical background
type MedicalHistory struct {
	Conditions    []string      `json:"conditions" bson:"conditions"`
	Medications   Medications   `json:"medications" bson:"medications"`
	FamilyHistory FamilyHistory `json:"familyHistory" bson:"familyHistory"`
	Exercise      string        `json:"exercise" bson:"exercise"` // frequency descriptor
}

// SubjectProfile is the medical/lifestyle intake record for one assessment
// subject. It is created via the profile store and read-only to the
// questionnaire engine for the duration of a session.
type SubjectProfile struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	PersonalInfo   PersonalInfo   `json:"personalInfo" bson:"personalInfo"`
	Lifestyle      Lifestyle      `json:"lifestyle" bson:"lifestyle"`
	MedicalHistory MedicalHistory `json:"medicalHistory" bson:"medicalHistory"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}
