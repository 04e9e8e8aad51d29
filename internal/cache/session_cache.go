package cache

import (
	"context"
	"encoding/json"
	"time"

	"riskscope/internal/model"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// SessionCache stores in-progress session snapshots in Redis
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "session:"+session.ID, data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, "session:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "session:"+id).Err()
}
