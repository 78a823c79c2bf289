// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"clinicvoice/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore holds call conversation contexts keyed by call identifier.
// Get and Update return ErrNoActiveSession for an unknown call.
type SessionStore interface {
	Get(ctx context.Context, callSID string) (*models.CallSession, error)
	Set(ctx context.Context, callSID string, session *models.CallSession) error
	// Update replaces an existing session and never creates one.
	Update(ctx context.Context, callSID string, session *models.CallSession) error
	Clear(ctx context.Context, callSID string) error
}

// MemoryContextStore keeps sessions in process memory. Sessions never expire.
type MemoryContextStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.CallSession
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{sessions: make(map[string]*models.CallSession)}
}

func (s *MemoryContextStore) Get(_ context.Context, callSID string) (*models.CallSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[callSID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (s *MemoryContextStore) Set(_ context.Context, callSID string, session *models.CallSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[callSID] = session
	return nil
}

func (s *MemoryContextStore) Update(_ context.Context, callSID string, session *models.CallSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[callSID]; !ok {
		return ErrNoActiveSession
	}
	s.sessions[callSID] = session
	return nil
}

func (s *MemoryContextStore) Clear(_ context.Context, callSID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, callSID)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

const callContextPrefix = "call:ctx:"

// RedisContextStore keeps sessions in Redis; every Set refreshes the TTL.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, callSID string) (*models.CallSession, error) {
	key := callContextPrefix + callSID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("load call context: %w", err)
	}
	var session models.CallSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode call context: %w", err)
	}
	return &session, nil
}

func (s *RedisContextStore) Set(ctx context.Context, callSID string, session *models.CallSession) error {
	key := callContextPrefix + callSID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

// Update writes with SET XX so a session cleared mid-turn stays cleared.
func (s *RedisContextStore) Update(ctx context.Context, callSID string, session *models.CallSession) error {
	key := callContextPrefix + callSID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	updated, err := s.client.SetXX(ctx, key, b, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save call context: %w", err)
	}
	if !updated {
		return ErrNoActiveSession
	}
	return nil
}

func (s *RedisContextStore) Clear(ctx context.Context, callSID string) error {
	key := callContextPrefix + callSID
	return s.client.Del(ctx, key).Err()
}
