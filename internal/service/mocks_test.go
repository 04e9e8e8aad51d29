package service

import (
	"context"
	"encoding/json"

	"riskscope/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepo is a mock type for the repository.ProfileRepo interface
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *model.SubjectProfile) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*model.SubjectProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubjectProfile), args.Error(1)
}

func (m *MockProfileRepo) List(ctx context.Context) ([]*model.SubjectProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SubjectProfile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, id string, update *model.SubjectProfile) (*model.SubjectProfile, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubjectProfile), args.Error(1)
}

func (m *MockProfileRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGenerator is a mock type for the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	args := m.Called(ctx, modelName, prompt)
	return args.String(0), args.Error(1)
}

// MockAssessmentRepo is a mock type for the repository.AssessmentRepo interface
type MockAssessmentRepo struct {
	mock.Mock
}

func (m *MockAssessmentRepo) SaveBundle(ctx context.Context, bundle *model.AssessmentBundle) error {
	args := m.Called(ctx, bundle)
	return args.Error(0)
}

func (m *MockAssessmentRepo) GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssessmentBundle), args.Error(1)
}

func (m *MockAssessmentRepo) SaveDecision(ctx context.Context, sessionID string, decision *model.UnderwriterDecision) error {
	args := m.Called(ctx, sessionID, decision)
	return args.Error(0)
}

func (m *MockAssessmentRepo) GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnderwriterDecision), args.Error(1)
}

// fakeSessionCache is an in-memory cache.SessionCache. Snapshots are
// serialized on write so later mutation of the caller's pointer does not
// leak into the stored state, matching Redis behavior.
type fakeSessionCache struct {
	sessions map[string][]byte
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: make(map[string][]byte)}
}

func (c *fakeSessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	c.sessions[session.ID] = data
	return nil
}

func (c *fakeSessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *fakeSessionCache) Delete(ctx context.Context, id string) error {
	delete(c.sessions, id)
	return nil
}

// fakeAssessmentCache is an in-memory cache.AssessmentCache
type fakeAssessmentCache struct {
	reports     map[string]*model.RiskReport
	bundles     map[string]*model.AssessmentBundle
	decisions   map[string]*model.UnderwriterDecision
	profileRefs map[string]string
}

func newFakeAssessmentCache() *fakeAssessmentCache {
	return &fakeAssessmentCache{
		reports:     make(map[string]*model.RiskReport),
		bundles:     make(map[string]*model.AssessmentBundle),
		decisions:   make(map[string]*model.UnderwriterDecision),
		profileRefs: make(map[string]string),
	}
}

func (c *fakeAssessmentCache) SetReport(ctx context.Context, sessionID string, report *model.RiskReport) error {
	c.reports[sessionID] = report
	return nil
}

func (c *fakeAssessmentCache) GetReport(ctx context.Context, sessionID string) (*model.RiskReport, error) {
	return c.reports[sessionID], nil
}

func (c *fakeAssessmentCache) SetBundle(ctx context.Context, bundle *model.AssessmentBundle) error {
	c.bundles[bundle.SessionID] = bundle
	return nil
}

func (c *fakeAssessmentCache) GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error) {
	return c.bundles[sessionID], nil
}

func (c *fakeAssessmentCache) SetDecision(ctx context.Context, sessionID string, decision *model.UnderwriterDecision) error {
	c.decisions[sessionID] = decision
	return nil
}

func (c *fakeAssessmentCache) GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error) {
	return c.decisions[sessionID], nil
}

func (c *fakeAssessmentCache) SetProfileRef(ctx context.Context, sessionID, profileID string) error {
	c.profileRefs[sessionID] = profileID
	return nil
}

func (c *fakeAssessmentCache) GetProfileRef(ctx context.Context, sessionID string) (string, error) {
	return c.profileRefs[sessionID], nil
}

// testProfile returns a fully populated subject profile
func testProfile(id string) *model.SubjectProfile {
	return &model.SubjectProfile{
		ID: id,
		PersonalInfo: model.PersonalInfo{
			FullName: "Test Subject",
			Email:    "subject@example.com",
			Age:      42,
			Gender:   model.GenderFemale,
			Height:   170,
			Weight:   68,
		},
		Lifestyle: model.Lifestyle{Smoking: false, Alcohol: true},
		MedicalHistory: model.MedicalHistory{
			Conditions:  []string{"hypertension"},
			Medications: model.Medications{Taking: true, List: "lisinopril"},
			Exercise:    "1-2 times per week",
		},
	}
}
