package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"riskscope/internal/config"
	"riskscope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type reportHarness struct {
	svc         *ReportService
	profiles    *MockProfileRepo
	generator   *MockGenerator
	archive     *MockAssessmentRepo
	assessments *fakeAssessmentCache
}

func newReportHarness(generator Generator) *reportHarness {
	h := &reportHarness{
		profiles:    new(MockProfileRepo),
		archive:     new(MockAssessmentRepo),
		assessments: newFakeAssessmentCache(),
	}
	if g, ok := generator.(*MockGenerator); ok {
		h.generator = g
	}
	aiCfg := &config.AIConfig{
		Models: config.GeminiModels{Question: "q-model", Report: "r-model"},
	}
	h.svc = NewReportService(h.profiles, h.archive, h.assessments, generator, aiCfg)
	return h
}

// finishedSession returns a session whose transcript is complete and ready
// for synthesis.
func finishedSession(answers ...string) *model.Session {
	session := &model.Session{
		ID:            "sess-1",
		ProfileID:     "p1",
		QuestionCount: len(answers),
		Status:        model.SessionSynthesizing,
		StartedAt:     time.Now(),
	}
	for i, answer := range answers {
		session.Turns = append(session.Turns, model.Turn{
			Index:    i + 1,
			Question: FallbackQuestion(i + 1),
			Answer:   answer,
		})
	}
	return session
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()

	t.Run("model score wins when above the heuristic", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return(validReportJSON(), nil)
		h.archive.On("SaveBundle", mock.Anything, mock.Anything).Return(nil)

		report, err := h.svc.Synthesize(ctx, finishedSession("Good", "Usually sleep well"))
		assert.NoError(t, err)
		assert.Equal(t, 35.0, report.RiskScore)
	})

	t.Run("heuristic score floors a low model score", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return(validReportJSON(), nil)
		h.archive.On("SaveBundle", mock.Anything, mock.Anything).Return(nil)

		report, err := h.svc.Synthesize(ctx, finishedSession("severe chest pain"))
		assert.NoError(t, err)
		assert.InDelta(t, 49.4, report.RiskScore, 0.01)
	})

	t.Run("no generator configured", func(t *testing.T) {
		h := newReportHarness(nil)

		report, err := h.svc.Synthesize(ctx, finishedSession("fine"))
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrReportGenerationFailed)
	})

	t.Run("profile fetch failure", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(nil, errors.New("connection reset"))

		_, err := h.svc.Synthesize(ctx, finishedSession("fine"))
		assert.ErrorIs(t, err, ErrReportGenerationFailed)
	})

	t.Run("profile missing", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(nil, nil)

		_, err := h.svc.Synthesize(ctx, finishedSession("fine"))
		assert.ErrorIs(t, err, ErrReportGenerationFailed)
	})

	t.Run("generation failure persists nothing", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return("", errors.New("api overloaded"))

		report, err := h.svc.Synthesize(ctx, finishedSession("fine"))
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrReportGenerationFailed)
		assert.Empty(t, h.assessments.reports)
		assert.Empty(t, h.assessments.bundles)
		h.archive.AssertNotCalled(t, "SaveBundle", mock.Anything, mock.Anything)
	})

	t.Run("unparseable model output persists nothing", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return("Sorry, I can't help with that.", nil)

		report, err := h.svc.Synthesize(ctx, finishedSession("fine"))
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrReportGenerationFailed)
		assert.Empty(t, h.assessments.bundles)
	})

	t.Run("persists report, bundle and profile ref under the session key", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return(validReportJSON(), nil)
		h.archive.On("SaveBundle", mock.Anything, mock.Anything).Return(nil)

		session := finishedSession("Good", "Usually sleep well")
		report, err := h.svc.Synthesize(ctx, session)
		assert.NoError(t, err)

		assert.Equal(t, report, h.assessments.reports[session.ID])
		assert.Equal(t, "p1", h.assessments.profileRefs[session.ID])

		bundle := h.assessments.bundles[session.ID]
		assert.NotNil(t, bundle)
		assert.Equal(t, session.Turns, bundle.Transcript)
		assert.Equal(t, "1.0", bundle.Metadata.Version)
		assert.Equal(t, len(session.Turns), bundle.Metadata.QuestionCount)
		assert.True(t, strings.HasPrefix(bundle.Metadata.AssessmentID, "HA-"))
		assert.False(t, bundle.EmergencyUnlocked)
	})

	t.Run("archive failure does not lose the report", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return(validReportJSON(), nil)
		h.archive.On("SaveBundle", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

		report, err := h.svc.Synthesize(ctx, finishedSession("fine"))
		assert.NoError(t, err)
		assert.NotNil(t, report)
	})

	t.Run("scores above 70 unlock emergency sharing", func(t *testing.T) {
		h := newReportHarness(new(MockGenerator))
		h.profiles.On("GetByID", mock.Anything, "p1").Return(testProfile("p1"), nil)
		high := strings.Replace(validReportJSON(), `"riskScore": 35`, `"riskScore": 85`, 1)
		h.generator.On("Generate", mock.Anything, "r-model", mock.Anything).Return(high, nil)
		h.archive.On("SaveBundle", mock.Anything, mock.Anything).Return(nil)

		session := finishedSession("fine")
		report, err := h.svc.Synthesize(ctx, session)
		assert.NoError(t, err)
		assert.Equal(t, 85.0, report.RiskScore)
		assert.True(t, h.assessments.bundles[session.ID].EmergencyUnlocked)
	})
}

func TestGetReport(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the archive", func(t *testing.T) {
		h := newReportHarness(nil)
		cached := &model.RiskReport{RiskScore: 40, Summary: "cached"}
		h.assessments.reports["sess-1"] = cached

		report, err := h.svc.GetReport(ctx, "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, cached, report)
		h.archive.AssertNotCalled(t, "GetBundle", mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls back to the archived bundle", func(t *testing.T) {
		h := newReportHarness(nil)
		h.archive.On("GetBundle", mock.Anything, "sess-1").Return(&model.AssessmentBundle{
			SessionID: "sess-1",
			Report:    model.RiskReport{RiskScore: 55, Summary: "archived"},
		}, nil)

		report, err := h.svc.GetReport(ctx, "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, "archived", report.Summary)
	})

	t.Run("unknown session returns nothing", func(t *testing.T) {
		h := newReportHarness(nil)
		h.archive.On("GetBundle", mock.Anything, "nope").Return(nil, nil)

		report, err := h.svc.GetReport(ctx, "nope")
		assert.NoError(t, err)
		assert.Nil(t, report)
	})
}

func TestGetProfileRef(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the archive", func(t *testing.T) {
		h := newReportHarness(nil)
		h.assessments.profileRefs["sess-1"] = "p1"

		profileID, err := h.svc.GetProfileRef(ctx, "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, "p1", profileID)
		h.archive.AssertNotCalled(t, "GetBundle", mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls back to the bundle snapshot", func(t *testing.T) {
		h := newReportHarness(nil)
		h.archive.On("GetBundle", mock.Anything, "sess-1").Return(&model.AssessmentBundle{
			SessionID: "sess-1",
			Profile:   *testProfile("p9"),
		}, nil)

		profileID, err := h.svc.GetProfileRef(ctx, "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, "p9", profileID)
	})

	t.Run("unknown session returns nothing", func(t *testing.T) {
		h := newReportHarness(nil)
		h.archive.On("GetBundle", mock.Anything, "nope").Return(nil, nil)

		profileID, err := h.svc.GetProfileRef(ctx, "nope")
		assert.NoError(t, err)
		assert.Empty(t, profileID)
	})
}

func TestRecordDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("records a valid decision against the assessment", func(t *testing.T) {
		h := newReportHarness(nil)
		h.assessments.bundles["sess-1"] = &model.AssessmentBundle{
			SessionID: "sess-1",
			Metadata:  model.BundleMetadata{AssessmentID: "HA-abc"},
		}
		h.archive.On("SaveDecision", mock.Anything, "sess-1", mock.Anything).Return(nil)

		record, err := h.svc.RecordDecision(ctx, "sess-1", model.DecisionReview)
		assert.NoError(t, err)
		assert.Equal(t, model.DecisionReview, record.Decision)
		assert.Equal(t, "HA-abc", record.AssessmentID)
		assert.False(t, record.Timestamp.IsZero())
		assert.Equal(t, record, h.assessments.decisions["sess-1"])
	})

	t.Run("rejects an unknown verdict", func(t *testing.T) {
		h := newReportHarness(nil)
		_, err := h.svc.RecordDecision(ctx, "sess-1", "approve")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid decision")
	})

	t.Run("requires a completed assessment", func(t *testing.T) {
		h := newReportHarness(nil)
		h.archive.On("GetBundle", mock.Anything, "sess-1").Return(nil, nil)

		_, err := h.svc.RecordDecision(ctx, "sess-1", model.DecisionPass)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no completed assessment")
	})
}

func TestGetDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		h := newReportHarness(nil)
		h.assessments.decisions["sess-1"] = &model.UnderwriterDecision{Decision: model.DecisionPass}

		decision, err := h.svc.GetDecision(ctx, "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, model.DecisionPass, decision.Decision)
	})

	t.Run("falls back to the archive", func(t *testing.T) {
		h := newReportHarness(nil)
		h.archive.On("GetDecision", mock.Anything, "sess-1").Return(&model.UnderwriterDecision{Decision: model.DecisionCancel}, nil)

		decision, err := h.svc.GetDecision(ctx, "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, model.DecisionCancel, decision.Decision)
	})
}
