package model

import "time"

// Probability tiers for potential conditions
const (
	ProbabilityLow    = "Low"
	ProbabilityMedium = "Medium"
	ProbabilityHigh   = "High"
)

// PotentialCondition is one condition the report flags for the subject
type PotentialCondition struct {
	Condition          string   `json:"condition" bson:"condition"`
	Probability        string   `json:"probability" bson:"probability"` // Low/Medium/High
	Summary            string   `json:"summary" bson:"summary"`
	RiskFactors        []string `json:"riskFactors" bson:"riskFactors"`
	PreventiveMeasures []string `json:"preventiveMeasures" bson:"preventiveMeasures"`
}

// ImmediateAction is an ordered recommendation with urgency metadata
type ImmediateAction struct {
	Action    string `json:"action" bson:"action"`
	Priority  string `json:"priority" bson:"priority"` // High/Medium/Low
	Timeframe string `json:"timeframe" bson:"timeframe"`
}

// Recommendations groups immediate actions and per-category lifestyle advice
type Recommendations struct {
	Immediate []ImmediateAction   `json:"immediate" bson:"immediate"`
	Lifestyle map[string][]string `json:"lifestyle" bson:"lifestyle"` // diet/exercise/sleep/stress
}

// RiskReport is the final structured output of an assessment session.
// RiskScore is the merged score: max(heuristic floor, model score).
type RiskReport struct {
	RiskScore           float64              `json:"riskScore" bson:"riskScore"` // 0-100
	Summary             string               `json:"summary" bson:"summary"`
	HealthMetrics       map[string]int       `json:"healthMetrics" bson:"healthMetrics"` // metric name -> 1-10
	PotentialConditions []PotentialCondition `json:"potentialConditions" bson:"potentialConditions"`
	Recommendations     Recommendations      `json:"recommendations" bson:"recommendations"`
}

// BundleMetadata describes one archived assessment
type BundleMetadata struct {
	GeneratedAt   time.Time `json:"generatedAt" bson:"generatedAt"`
	Version       string    `json:"version" bson:"version"`
	AssessmentID  string    `json:"assessmentId" bson:"assessmentId"` // "HA-" prefixed
	QuestionCount int       `json:"questionCount" bson:"questionCount"`
}

// AssessmentBundle is the complete persisted record of one finished
// assessment: profile snapshot, transcript, report and metadata. Emergency
// sharing is unlocked for scores above 70.
type AssessmentBundle struct {
	SessionID         string         `json:"sessionId" bson:"_id,omitempty"`
	Profile           SubjectProfile `json:"profile" bson:"profile"`
	Transcript        []Turn         `json:"transcript" bson:"transcript"`
	Report            RiskReport     `json:"report" bson:"report"`
	Metadata          BundleMetadata `json:"metadata" bson:"metadata"`
	EmergencyUnlocked bool           `json:"emergencyUnlocked" bson:"emergencyUnlocked"`
}

// UnderwriterDecision records the reviewer's verdict on a finished assessment
type UnderwriterDecision struct {
	Decision     string    `json:"decision" bson:"decision"` // pass/review/cancel
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	AssessmentID string    `json:"assessmentId" bson:"assessmentId"`
}

// Valid underwriter decisions
const (
	DecisionPass   = "pass"
	DecisionReview = "review"
	DecisionCancel = "cancel"
)
