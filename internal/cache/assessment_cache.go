package cache

import (
	"context"
	"encoding/json"

	"riskscope/internal/model"

	"github.com/redis/go-redis/v9"
)

// Well-known key prefixes for finished-assessment artifacts. Values are
// JSON-serialized text so they can be handed to clients verbatim.
const (
	keyReport     = "assessment:report:"
	keyBundle     = "assessment:bundle:"
	keyDecision   = "assessment:decision:"
	keyProfileRef = "assessment:profile:"
)

// AssessmentCache persists finished reports, complete assessment bundles
// and underwriter decisions under well-known keys, for retrieval without
// re-running the assessment. Entries have no TTL.
type AssessmentCache interface {
	SetReport(ctx context.Context, sessionID string, report *model.RiskReport) error
	GetReport(ctx context.Context, sessionID string) (*model.RiskReport, error)
	SetBundle(ctx context.Context, bundle *model.AssessmentBundle) error
	GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error)
	SetDecision(ctx context.Context, sessionID string, decision *model.UnderwriterDecision) error
	GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error)
	SetProfileRef(ctx context.Context, sessionID, profileID string) error
	GetProfileRef(ctx context.Context, sessionID string) (string, error)
}

type assessmentCache struct {
	client *redis.Client
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{
		client: client,
	}
}

func (c *assessmentCache) SetReport(ctx context.Context, sessionID string, report *model.RiskReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyReport+sessionID, data, 0).Err()
}

func (c *assessmentCache) GetReport(ctx context.Context, sessionID string) (*model.RiskReport, error) {
	data, err := c.client.Get(ctx, keyReport+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.RiskReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *assessmentCache) SetBundle(ctx context.Context, bundle *model.AssessmentBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyBundle+bundle.SessionID, data, 0).Err()
}

func (c *assessmentCache) GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error) {
	data, err := c.client.Get(ctx, keyBundle+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bundle model.AssessmentBundle
	if err := json.Unmarshal([]byte(data), &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *assessmentCache) SetDecision(ctx context.Context, sessionID string, decision *model.UnderwriterDecision) error {
	data, err := json.Marshal(decision)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyDecision+sessionID, data, 0).Err()
}

func (c *assessmentCache) GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error) {
	data, err := c.client.Get(ctx, keyDecision+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var decision model.UnderwriterDecision
	if err := json.Unmarshal([]byte(data), &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}

func (c *assessmentCache) SetProfileRef(ctx context.Context, sessionID, profileID string) error {
	return c.client.Set(ctx, keyProfileRef+sessionID, profileID, 0).Err()
}

func (c *assessmentCache) GetProfileRef(ctx context.Context, sessionID string) (string, error) {
	val, err := c.client.Get(ctx, keyProfileRef+sessionID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}
