package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"riskscope/internal/cache"
	"riskscope/internal/config"
	"riskscope/internal/model"
	"riskscope/internal/repository"

	"github.com/google/uuid"
)

// emergencyThreshold is the final score above which emergency sharing is
// unlocked for the subject.
const emergencyThreshold = 70.0

// bundleVersion is the schema version stamped into archived bundles.
const bundleVersion = "1.0"

// ReportService builds the final risk report from a completed transcript
// and persists the finished assessment under well-known keys.
type ReportService struct {
	profileRepo     repository.ProfileRepo
	assessmentRepo  repository.AssessmentRepo
	assessmentCache cache.AssessmentCache
	generator       Generator // nil when no generation API is configured
	aiConfig        *config.AIConfig
}

// NewReportService creates a new report service
func NewReportService(
	profileRepo repository.ProfileRepo,
	assessmentRepo repository.AssessmentRepo,
	assessmentCache cache.AssessmentCache,
	generator Generator,
	aiConfig *config.AIConfig,
) *ReportService {
	return &ReportService{
		profileRepo:     profileRepo,
		assessmentRepo:  assessmentRepo,
		assessmentCache: assessmentCache,
		generator:       generator,
		aiConfig:        aiConfig,
	}
}

// Synthesize submits the full transcript to the generation client, parses
// the structured risk report, and applies the heuristic score as a floor:
// the final score is max(heuristic, model), erring toward flagging risk.
// Any failure returns ErrReportGenerationFailed; a risk report is never
// fabricated without model input.
func (s *ReportService) Synthesize(ctx context.Context, session *model.Session) (*model.RiskReport, error) {
	answers := make([]string, 0, len(session.Turns))
	for _, turn := range session.Turns {
		answers = append(answers, turn.Answer)
	}
	heuristic := HeuristicRiskScore(answers)

	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generation client configured", ErrReportGenerationFailed)
	}

	profile, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("%w: profile fetch: %v", ErrReportGenerationFailed, err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile missing", ErrReportGenerationFailed)
	}

	prompt := BuildReportPrompt(profile, session.Turns)
	raw, err := s.generator.Generate(ctx, s.aiConfig.Models.Report, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportGenerationFailed, err)
	}

	report, err := ParseReport(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportGenerationFailed, err)
	}

	if heuristic > report.RiskScore {
		report.RiskScore = heuristic
	}

	s.persist(ctx, session, profile, report)
	return report, nil
}

// persist writes the report, the complete assessment bundle and the
// profile reference under their well-known keys, and archives the bundle.
// Persistence problems are logged, not fatal: the report itself is already
// sound and must reach the caller.
func (s *ReportService) persist(ctx context.Context, session *model.Session, profile *model.SubjectProfile, report *model.RiskReport) {
	bundle := &model.AssessmentBundle{
		SessionID:  session.ID,
		Profile:    *profile,
		Transcript: session.Turns,
		Report:     *report,
		Metadata: model.BundleMetadata{
			GeneratedAt:   time.Now(),
			Version:       bundleVersion,
			AssessmentID:  "HA-" + uuid.NewString(),
			QuestionCount: session.QuestionCount,
		},
		EmergencyUnlocked: report.RiskScore > emergencyThreshold,
	}

	if err := s.assessmentCache.SetReport(ctx, session.ID, report); err != nil {
		log.Printf("failed to cache report for session %s: %v", session.ID, err)
	}
	if err := s.assessmentCache.SetBundle(ctx, bundle); err != nil {
		log.Printf("failed to cache bundle for session %s: %v", session.ID, err)
	}
	if err := s.assessmentCache.SetProfileRef(ctx, session.ID, session.ProfileID); err != nil {
		log.Printf("failed to cache profile ref for session %s: %v", session.ID, err)
	}
	if err := s.assessmentRepo.SaveBundle(ctx, bundle); err != nil {
		log.Printf("failed to archive bundle for session %s: %v", session.ID, err)
	}
}

// GetReport retrieves a finished report, preferring the cache.
func (s *ReportService) GetReport(ctx context.Context, sessionID string) (*model.RiskReport, error) {
	report, err := s.assessmentCache.GetReport(ctx, sessionID)
	if err == nil && report != nil {
		return report, nil
	}
	if err != nil {
		log.Printf("report cache read failed for session %s: %v", sessionID, err)
	}

	bundle, err := s.assessmentRepo.GetBundle(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, nil
	}
	return &bundle.Report, nil
}

// GetBundle retrieves the complete assessment bundle.
func (s *ReportService) GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error) {
	bundle, err := s.assessmentCache.GetBundle(ctx, sessionID)
	if err == nil && bundle != nil {
		return bundle, nil
	}
	if err != nil {
		log.Printf("bundle cache read failed for session %s: %v", sessionID, err)
	}
	return s.assessmentRepo.GetBundle(ctx, sessionID)
}

// GetProfileRef resolves the profile ID a finished assessment was run
// against, preferring the well-known cache key and falling back to the
// archived bundle's profile snapshot.
func (s *ReportService) GetProfileRef(ctx context.Context, sessionID string) (string, error) {
	profileID, err := s.assessmentCache.GetProfileRef(ctx, sessionID)
	if err == nil && profileID != "" {
		return profileID, nil
	}
	if err != nil {
		log.Printf("profile ref cache read failed for session %s: %v", sessionID, err)
	}

	bundle, err := s.assessmentRepo.GetBundle(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if bundle == nil {
		return "", nil
	}
	return bundle.Profile.ID, nil
}

// RecordDecision stores the underwriter's verdict for a finished
// assessment.
func (s *ReportService) RecordDecision(ctx context.Context, sessionID, decision string) (*model.UnderwriterDecision, error) {
	switch decision {
	case model.DecisionPass, model.DecisionReview, model.DecisionCancel:
	default:
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	bundle, err := s.GetBundle(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, fmt.Errorf("no completed assessment for session %s", sessionID)
	}

	record := &model.UnderwriterDecision{
		Decision:     decision,
		Timestamp:    time.Now(),
		AssessmentID: bundle.Metadata.AssessmentID,
	}
	if err := s.assessmentCache.SetDecision(ctx, sessionID, record); err != nil {
		log.Printf("failed to cache decision for session %s: %v", sessionID, err)
	}
	if err := s.assessmentRepo.SaveDecision(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetDecision retrieves a stored underwriter decision.
func (s *ReportService) GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error) {
	decision, err := s.assessmentCache.GetDecision(ctx, sessionID)
	if err == nil && decision != nil {
		return decision, nil
	}
	if err != nil {
		log.Printf("decision cache read failed for session %s: %v", sessionID, err)
	}
	return s.assessmentRepo.GetDecision(ctx, sessionID)
}
