package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"riskscope/internal/cache"
	"riskscope/internal/config"
	"riskscope/internal/model"
	"riskscope/internal/repository"

	"github.com/google/uuid"
)

// AssessmentService is the questionnaire state machine. It tracks progress
// through N question turns, persists each answer, and hands the finished
// transcript to the report service. Each session's state lives in the
// session cache; the service itself is stateless and safe to share.
type AssessmentService struct {
	profileRepo  repository.ProfileRepo
	sessionCache cache.SessionCache
	generator    Generator // nil when no generation API is configured
	aiConfig     *config.AIConfig
	reportSvc    *ReportService
	defaultN     int
}

// NewAssessmentService creates a new assessment service. generator may be
// nil, in which case every question comes from the static bank.
func NewAssessmentService(
	profileRepo repository.ProfileRepo,
	sessionCache cache.SessionCache,
	generator Generator,
	aiConfig *config.AIConfig,
	reportSvc *ReportService,
	defaultQuestionCount int,
) *AssessmentService {
	return &AssessmentService{
		profileRepo:  profileRepo,
		sessionCache: sessionCache,
		generator:    generator,
		aiConfig:     aiConfig,
		reportSvc:    reportSvc,
		defaultN:     defaultQuestionCount,
	}
}

// Start begins a new session for a stored profile. A missing or
// unfetchable profile is fatal: the session is never created and
// ErrProfileUnavailable is returned. The first question is generated
// immediately, falling back to the static bank on any generation failure.
func (s *AssessmentService) Start(ctx context.Context, profileID string, questionCount int) (*model.Session, error) {
	if questionCount <= 0 {
		questionCount = s.defaultN
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
	}
	if profile == nil {
		return nil, ErrProfileUnavailable
	}

	now := time.Now()
	session := &model.Session{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		QuestionCount: questionCount,
		CurrentIndex:  1,
		Status:        model.SessionAwaitingAnswer,
		Turns:         []model.Turn{},
		StartedAt:     now,
		UpdatedAt:     now,
	}

	question := s.generateQuestion(ctx, profile, session.Turns, 1, questionCount)
	session.CurrentQuestion = &question

	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// Get returns the current session state.
func (s *AssessmentService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SubmitAnswer records the answer for the currently displayed question and
// advances the state machine: next question while turns remain, report
// synthesis once the final turn is answered. N is a hard cap, not a hint.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, sessionID, answer string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return session, ErrSessionComplete
	}
	if session.Status == model.SessionGenerating || session.Status == model.SessionSynthesizing {
		return session, ErrSessionBusy
	}
	if strings.TrimSpace(answer) == "" {
		return session, ErrInputRejected
	}

	session.Turns = append(session.Turns, model.Turn{
		Index:    session.CurrentIndex,
		Question: *session.CurrentQuestion,
		Answer:   answer,
	})
	session.DraftAnswer = ""
	session.UpdatedAt = time.Now()

	if session.CurrentIndex < session.QuestionCount {
		return s.advance(ctx, session)
	}
	return s.synthesize(ctx, session)
}

// RetrySynthesis re-runs report generation for a session whose synthesis
// attempt failed. This is the single user-facing recovery action for
// ErrReportGenerationFailed. A session whose synthesis is still in flight
// is rejected; recovery starts from the failed status only.
func (s *AssessmentService) RetrySynthesis(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionComplete {
		return session, ErrSessionComplete
	}
	if session.Status == model.SessionSynthesizing {
		return session, ErrSessionBusy
	}
	if len(session.Turns) < session.QuestionCount {
		return session, fmt.Errorf("transcript incomplete: %d of %d turns answered", len(session.Turns), session.QuestionCount)
	}
	return s.synthesize(ctx, session)
}

// SaveDraft stores a draft answer for the current question.
func (s *AssessmentService) SaveDraft(ctx context.Context, sessionID, draft string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return session, ErrSessionComplete
	}
	session.DraftAnswer = draft
	session.UpdatedAt = time.Now()
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AppendTranscript appends a dictated partial transcript to the draft
// answer buffer. Last write wins; the merged draft is returned.
func (s *AssessmentService) AppendTranscript(ctx context.Context, sessionID, transcript string) (string, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Terminal() {
		return session.DraftAnswer, ErrSessionComplete
	}

	merged := strings.TrimSpace(session.DraftAnswer + " " + strings.TrimSpace(transcript))
	session.DraftAnswer = merged
	session.UpdatedAt = time.Now()
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return "", err
	}
	return merged, nil
}

// Abandon discards an in-progress session. No cleanup beyond dropping the
// snapshot; an in-flight generation call is simply ignored on return.
func (s *AssessmentService) Abandon(ctx context.Context, sessionID string) error {
	return s.sessionCache.Delete(ctx, sessionID)
}

// advance moves to the next question turn. The generating status is
// persisted first so a second submission for the same session is rejected
// while the call is outstanding.
func (s *AssessmentService) advance(ctx context.Context, session *model.Session) (*model.Session, error) {
	session.Status = model.SessionGenerating
	session.CurrentQuestion = nil
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil || profile == nil {
		// Degraded turn: the profile was present at session start, so a
		// transient fetch failure only costs prompt personalization.
		log.Printf("profile fetch failed mid-session %s, using fallback question: %v", session.ID, err)
		profile = nil
	}

	session.CurrentIndex++
	question := s.generateQuestion(ctx, profile, session.Turns, session.CurrentIndex, session.QuestionCount)
	session.CurrentQuestion = &question
	session.Status = model.SessionAwaitingAnswer
	session.UpdatedAt = time.Now()

	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// synthesize runs report generation for a complete transcript. Failure is
// surfaced, never papered over with a fabricated report.
func (s *AssessmentService) synthesize(ctx context.Context, session *model.Session) (*model.Session, error) {
	session.Status = model.SessionSynthesizing
	session.CurrentQuestion = nil
	session.UpdatedAt = time.Now()
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}

	report, err := s.reportSvc.Synthesize(ctx, session)
	if err != nil {
		session.Status = model.SessionFailed
		session.FailReason = "report generation failed"
		session.UpdatedAt = time.Now()
		if cacheErr := s.sessionCache.Set(ctx, session); cacheErr != nil {
			log.Printf("failed to persist failed session %s: %v", session.ID, cacheErr)
		}
		return session, err
	}

	now := time.Now()
	session.Report = report
	session.Status = model.SessionComplete
	session.CompletedAt = &now
	session.UpdatedAt = now
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// generateQuestion asks the model for the next question and substitutes
// the static bank on any failure. The fallback is the designed degradation
// path: logged, never surfaced as an error.
func (s *AssessmentService) generateQuestion(ctx context.Context, profile *model.SubjectProfile, turns []model.Turn, index, n int) model.Question {
	if s.generator == nil || profile == nil {
		return FallbackQuestion(index)
	}

	prompt := BuildQuestionPrompt(profile, turns, index, n)
	raw, err := s.generator.Generate(ctx, s.aiConfig.Models.Question, prompt)
	if err != nil {
		log.Printf("question generation failed for turn %d, using fallback: %v", index, err)
		return FallbackQuestion(index)
	}

	question, err := ParseQuestion(raw)
	if err != nil {
		log.Printf("question parse failed for turn %d, using fallback: %v", index, err)
		return FallbackQuestion(index)
	}
	return *question
}
