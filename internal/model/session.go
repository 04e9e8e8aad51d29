package model

import "time"

// SessionStatus tracks where a session is in the questionnaire flow
type SessionStatus string

const (
	SessionAwaitingAnswer SessionStatus = "awaiting_answer" // question displayed, waiting for the subject
	SessionGenerating     SessionStatus = "generating"      // a question generation call is in flight
	SessionSynthesizing   SessionStatus = "synthesizing"    // report generation in flight or retryable
	SessionComplete       SessionStatus = "complete"
	SessionFailed         SessionStatus = "failed"
)

// Session is one assessment session: the state machine's persistent state.
// Each session owns its state exclusively; there is no shared state across
// sessions.
type Session struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	ProfileID       string        `json:"profileId" bson:"profileId"`
	QuestionCount   int           `json:"questionCount" bson:"questionCount"` // N
	CurrentIndex    int           `json:"currentIndex" bson:"currentIndex"`   // 1..N
	Status          SessionStatus `json:"status" bson:"status"`
	CurrentQuestion *Question     `json:"currentQuestion,omitempty" bson:"currentQuestion,omitempty"`
	DraftAnswer     string        `json:"draftAnswer,omitempty" bson:"draftAnswer,omitempty"`
	Turns           []Turn        `json:"turns" bson:"turns"`
	FailReason      string        `json:"failReason,omitempty" bson:"failReason,omitempty"`
	Report          *RiskReport   `json:"report,omitempty" bson:"report,omitempty"`
	StartedAt       time.Time     `json:"startedAt" bson:"startedAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Terminal reports whether the session can no longer accept answers.
func (s *Session) Terminal() bool {
	return s.Status == SessionComplete || s.Status == SessionFailed
}
